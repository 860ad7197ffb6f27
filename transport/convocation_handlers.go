package transport

import (
	"encoding/json"
	"net/http"

	"github.com/jfcarod/convocations-api/constant"
	"github.com/jfcarod/convocations-api/model"
	"github.com/jfcarod/convocations-api/utils/errors"
	validatorx "github.com/jfcarod/convocations-api/utils/validator"
)

// CreateConvocation handler
// @Summary Create convocation
// @Description Create a new convocation
// @Tags Convocations
// @Accept json
// @Produce json
// @Param request body model.CreateConvocationRequest true "Create Convocation Request"
// @Success 200 {object} model.ConvocationEntity
// @Failure 422 {object} errors.CustomError
// @Router /convocations/ [post]
func (s *RestHandler) CreateConvocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateConvocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ConvocationApp.Create(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListConvocations handler
// @Summary List convocations
// @Description Retrieve a page of convocations
// @Tags Convocations
// @Produce json
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} model.ConvocationEntity
// @Router /convocations/ [get]
func (s *RestHandler) ListConvocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	skip, limit := parsePagination(r)

	res, err := s.ConvocationApp.List(ctx, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetConvocation handler
// @Summary Get convocation
// @Description Retrieve one convocation by id
// @Tags Convocations
// @Produce json
// @Param id path int true "Convocation ID"
// @Success 200 {object} model.ConvocationEntity
// @Failure 404 {object} errors.CustomError
// @Router /convocations/{id} [get]
func (s *RestHandler) GetConvocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ConvocationApp.GetByID(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateConvocation handler
// @Summary Update convocation
// @Description Merge-patch one convocation; only supplied fields change
// @Tags Convocations
// @Accept json
// @Produce json
// @Param id path int true "Convocation ID"
// @Param request body model.UpdateConvocationRequest true "Update Convocation Request"
// @Success 200 {object} model.ConvocationEntity
// @Failure 404 {object} errors.CustomError
// @Router /convocations/{id} [put]
func (s *RestHandler) UpdateConvocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UpdateConvocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ConvocationApp.Update(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteConvocation handler
// @Summary Delete convocation
// @Description Delete one convocation and return its last state
// @Tags Convocations
// @Produce json
// @Param id path int true "Convocation ID"
// @Success 200 {object} model.ConvocationEntity
// @Failure 404 {object} errors.CustomError
// @Router /convocations/{id} [delete]
func (s *RestHandler) DeleteConvocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ConvocationApp.Delete(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

package transport

import (
	"encoding/json"
	"net/http"

	"github.com/jfcarod/convocations-api/constant"
	"github.com/jfcarod/convocations-api/model"
	"github.com/jfcarod/convocations-api/utils/errors"
	validatorx "github.com/jfcarod/convocations-api/utils/validator"
)

// CreateCall handler
// @Summary Log call
// @Description Log a new call between two users
// @Tags Calls
// @Accept json
// @Produce json
// @Param request body model.CreateCallRequest true "Create Call Request"
// @Success 200 {object} model.CallEntity
// @Failure 422 {object} errors.CustomError
// @Router /calls/ [post]
func (s *RestHandler) CreateCall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CallApp.Create(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListCalls handler
// @Summary List calls
// @Tags Calls
// @Produce json
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} model.CallEntity
// @Router /calls/ [get]
func (s *RestHandler) ListCalls(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	skip, limit := parsePagination(r)

	res, err := s.CallApp.List(ctx, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetCall handler
// @Summary Get call
// @Tags Calls
// @Produce json
// @Param id path int true "Call ID"
// @Success 200 {object} model.CallEntity
// @Failure 404 {object} errors.CustomError
// @Router /calls/{id} [get]
func (s *RestHandler) GetCall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CallApp.GetByID(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateCall handler
// @Summary Close call
// @Description Set the end time of a logged call
// @Tags Calls
// @Accept json
// @Produce json
// @Param id path int true "Call ID"
// @Param request body model.UpdateCallRequest true "Update Call Request"
// @Success 200 {object} model.CallEntity
// @Failure 404 {object} errors.CustomError
// @Router /calls/{id} [put]
func (s *RestHandler) UpdateCall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UpdateCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CallApp.Update(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteCall handler
// @Summary Delete call
// @Tags Calls
// @Produce json
// @Param id path int true "Call ID"
// @Success 200 {object} model.CallEntity
// @Failure 404 {object} errors.CustomError
// @Router /calls/{id} [delete]
func (s *RestHandler) DeleteCall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CallApp.Delete(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

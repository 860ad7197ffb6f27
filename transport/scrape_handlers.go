package transport

import (
	"encoding/json"
	"net/http"

	"github.com/jfcarod/convocations-api/constant"
	"github.com/jfcarod/convocations-api/model"
	"github.com/jfcarod/convocations-api/utils/errors"
	validatorx "github.com/jfcarod/convocations-api/utils/validator"
)

// Scrape handler
// @Summary Scrape a page
// @Description Fetch one URL and return the title/link pairs found in div.item blocks
// @Tags Scraper
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ScrapeRequest true "Scrape Request"
// @Success 200 {array} model.ScrapedItem
// @Failure 422 {object} errors.CustomError
// @Failure 502 {object} errors.CustomError
// @Router /scrape [post]
func (s *RestHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ScraperApp.Scrape(ctx, req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

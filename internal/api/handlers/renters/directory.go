package renters

import (
	"net/http"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

// CreateCompany POST /api/v1/companies
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CompanyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companies - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCompany(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /companies", err)
		return
	}

	h.logger.Info("POST /companies - Company created: company_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// CreateOfficer POST /api/v1/officers
func (h *Handler) CreateOfficer(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.OfficerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /officers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateOfficer(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /officers", err)
		return
	}

	h.logger.Info("POST /officers - Officer created: officer_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

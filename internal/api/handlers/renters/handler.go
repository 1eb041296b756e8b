package renters

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgRenterNotFound     = "арендатор не найден"
	msgCompanyNotFound    = "компания не найдена"
	msgOfficerNotFound    = "сотрудник не найден"
	msgSlotNotFound       = "место в гараже не найдено"
	msgPaymentNotFound    = "платеж не найден"
	msgCompanyClaimed     = "у компании уже есть арендатор"
	msgDuplicateEmail     = "сотрудник с таким email уже существует"
	msgDuplicateSlot      = "у арендатора уже есть место с таким номером"
	msgRenterInUse        = "у арендатора есть бронирования или приглашения"
)

type Handler struct {
	service RentersService
	logger  Logger
}

func NewHandler(service RentersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/renters
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /renters", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/renters/{renterId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "renterId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "GET /renters/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/renters
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.RenterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /renters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /renters", err)
		return
	}

	h.logger.Info("POST /renters - Renter created: renter_id=%d, company_id=%d", result.ID, result.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/renters/{renterId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "renterId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.RenterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /renters/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /renters/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/renters/{renterId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "renterId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /renters/{id}", err)
		return
	}

	h.logger.Info("DELETE /renters/{id} - Renter deleted: renter_id=%d", id)
	handlers.RespondNoContent(w)
}

// ListInvitations GET /api/v1/renters/{renterId}/invitations
func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "renterId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.ListInvitations(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "GET /renters/{id}/invitations", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, renters.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, renters.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, renters.ErrRenterNotFound):
		handlers.RespondNotFound(w, msgRenterNotFound)

	case errors.Is(err, renters.ErrCompanyNotFound):
		handlers.RespondNotFound(w, msgCompanyNotFound)

	case errors.Is(err, renters.ErrOfficerNotFound):
		handlers.RespondNotFound(w, msgOfficerNotFound)

	case errors.Is(err, renters.ErrGarageSlotNotFound):
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, renters.ErrPaymentNotFound):
		handlers.RespondNotFound(w, msgPaymentNotFound)

	case errors.Is(err, renters.ErrCompanyAlreadyClaimed):
		h.logger.Warn("%s - Company already claimed: %v", route, err)
		handlers.RespondConflict(w, msgCompanyClaimed)

	case errors.Is(err, renters.ErrDuplicateEmail):
		handlers.RespondConflict(w, msgDuplicateEmail)

	case errors.Is(err, renters.ErrDuplicateSlotNumber):
		handlers.RespondConflict(w, msgDuplicateSlot)

	case errors.Is(err, renters.ErrRenterInUse):
		handlers.RespondConflict(w, msgRenterInUse)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

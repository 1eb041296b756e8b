package catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/service/catalog"
	"github.com/m04kA/SMC-ReceptionService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgDurationNotFound   = "длительность не найдена"
	msgFacilityNotFound   = "объект не найден"
	msgInUse              = "запись используется в бронированиях"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListDurations GET /api/v1/durations
func (h *Handler) ListDurations(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListDurations(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /durations", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateDuration POST /api/v1/durations
func (h *Handler) CreateDuration(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.DurationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /durations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateDuration(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /durations", err)
		return
	}

	h.logger.Info("POST /durations - Duration created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateDuration PUT /api/v1/durations/{durationId}
func (h *Handler) UpdateDuration(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "durationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.DurationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /durations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateDuration(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /durations/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteDuration DELETE /api/v1/durations/{durationId}
func (h *Handler) DeleteDuration(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "durationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteDuration(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /durations/{id}", err)
		return
	}

	h.logger.Info("DELETE /durations/{id} - Duration deleted: id=%d", id)
	handlers.RespondNoContent(w)
}

// ListFacilities GET /api/v1/facilities
func (h *Handler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListFacilities(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /facilities", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateFacility POST /api/v1/facilities
func (h *Handler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.FacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateFacility(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /facilities", err)
		return
	}

	h.logger.Info("POST /facilities - Facility created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateFacility PUT /api/v1/facilities/{facilityId}
func (h *Handler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "facilityId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.FacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facilities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateFacility(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /facilities/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteFacility DELETE /api/v1/facilities/{facilityId}
func (h *Handler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "facilityId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteFacility(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /facilities/{id}", err)
		return
	}

	h.logger.Info("DELETE /facilities/{id} - Facility deleted: id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, catalog.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, catalog.ErrDurationNotFound):
		handlers.RespondNotFound(w, msgDurationNotFound)

	case errors.Is(err, catalog.ErrFacilityNotFound):
		handlers.RespondNotFound(w, msgFacilityNotFound)

	case errors.Is(err, catalog.ErrInUse):
		handlers.RespondConflict(w, msgInUse)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

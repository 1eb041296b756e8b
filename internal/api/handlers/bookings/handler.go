package bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	bookingsService "github.com/m04kA/SMC-ReceptionService/internal/service/bookings"
	"github.com/m04kA/SMC-ReceptionService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/save_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgInvalidStartAt     = "некорректный формат начала бронирования, ожидается RFC3339 или YYYY-MM-DD HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgBookingNotFound    = "бронирование не найдено"
	msgFacilityNotFound   = "объект не найден"
	msgDurationNotFound   = "длительность не найдена"
	msgRenterRequired     = "сотрудник не является ответственным ни за одного арендатора"
	msgNotInFuture        = "бронирование должно начинаться в будущем"
	msgConflict           = "объект уже забронирован на это время"
	msgQuotaExceeded      = "превышен дневной лимит бронирований арендатора"
)

type Handler struct {
	service BookingsService
	useCase SaveBookingUseCase
	logger  Logger
}

func NewHandler(service BookingsService, useCase SaveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		service: service,
		useCase: useCase,
		logger:  logger,
	}
}

// List GET /api/v1/bookings?facilityId=&renterId=&from=&to=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := listRequest(r, actor.Location)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, "GET /bookings", actor, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/bookings/{bookingId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "GET /bookings/{id}", actor, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.Location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Create(r.Context(), actor, useCaseReq)
	if err != nil {
		h.respondError(w, "POST /bookings", actor, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, officer_id=%d, renter_id=%d",
		result.ID, result.OfficerID, result.RenterID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/bookings/{bookingId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.Location)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Update(r.Context(), actor, id, useCaseReq)
	if err != nil {
		h.respondError(w, "PUT /bookings/{id}", actor, err)
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated: booking_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /bookings/{id}", actor, err)
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted: booking_id=%d", id)
	handlers.RespondNoContent(w)
}

func listRequest(r *http.Request, loc *time.Location) (*models.ListBookingsRequest, error) {
	facilityID, err := handlers.QueryInt64(r, "facilityId")
	if err != nil {
		return nil, err
	}
	renterID, err := handlers.QueryInt64(r, "renterId")
	if err != nil {
		return nil, err
	}
	from, err := handlers.QueryDateTime(r, "from", loc)
	if err != nil {
		return nil, err
	}
	to, err := handlers.QueryDateTime(r, "to", loc)
	if err != nil {
		return nil, err
	}
	return &models.ListBookingsRequest{FacilityID: facilityID, RenterID: renterID, From: from, To: to}, nil
}

func (h *Handler) respondError(w http.ResponseWriter, route string, actor domain.Actor, err error) {
	var conflict *save_booking.ConflictError
	var quota *save_booking.QuotaError

	switch {
	case errors.As(err, &conflict):
		h.logger.Warn("%s - Conflict: officer_id=%d, %v", route, actor.OfficerID, err)
		loc := actor.Location
		if loc == nil {
			loc = time.UTC
		}
		handlers.RespondErrorDetails(w, http.StatusConflict, msgConflict, ConflictDetails{
			Facility: conflict.Facility,
			Start:    conflict.Start.In(loc).Format(domain.DateTimeFormat),
			End:      conflict.End.In(loc).Format(domain.DateTimeFormat),
		})

	case errors.As(err, &quota):
		h.logger.Warn("%s - Quota exceeded: officer_id=%d, %v", route, actor.OfficerID, err)
		handlers.RespondErrorDetails(w, http.StatusUnprocessableEntity, msgQuotaExceeded, QuotaDetails{
			LimitMinutes:     quota.Limit,
			BookedMinutes:    quota.Booked,
			RequestedMinutes: quota.Requested,
		})

	case errors.Is(err, save_booking.ErrNotInFuture):
		handlers.RespondUnprocessable(w, msgNotInFuture)

	case errors.Is(err, save_booking.ErrInvalidInput), errors.Is(err, bookingsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, save_booking.ErrAccessDenied), errors.Is(err, bookingsService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: officer_id=%d", route, actor.OfficerID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, save_booking.ErrBookingNotFound), errors.Is(err, bookingsService.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, save_booking.ErrFacilityNotFound):
		handlers.RespondNotFound(w, msgFacilityNotFound)

	case errors.Is(err, save_booking.ErrDurationNotFound):
		handlers.RespondNotFound(w, msgDurationNotFound)

	case errors.Is(err, save_booking.ErrRenterRequired):
		h.logger.Warn("%s - Officer without renter: officer_id=%d", route, actor.OfficerID)
		handlers.RespondUnprocessable(w, msgRenterRequired)

	default:
		h.logger.Error("%s - Failed: officer_id=%d, error=%v", route, actor.OfficerID, err)
		handlers.RespondInternalError(w)
	}
}

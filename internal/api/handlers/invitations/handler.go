package invitations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	invitationsService "github.com/m04kA/SMC-ReceptionService/internal/service/invitations"
	"github.com/m04kA/SMC-ReceptionService/internal/service/invitations/models"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/invitation_workflow"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgInvalidDateTime    = "некорректный формат даты приглашения, ожидается RFC3339 или YYYY-MM-DD HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvitationNotFound = "приглашение не найдено"
	msgRenterNotFound     = "арендатор не найден"
	msgRenterRequired     = "сотрудник не является ответственным ни за одного арендатора"
	msgInvalidEmail       = "некорректный email гостя"
	msgNotInFuture        = "дата и время приглашения должны быть в будущем"
	msgInvalidTransition  = "недопустимая смена состояния приглашения"
)

type transitionFunc func(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error)

type Handler struct {
	service InvitationsService
	useCase WorkflowUseCase
	logger  Logger
}

func NewHandler(service InvitationsService, useCase WorkflowUseCase, logger Logger) *Handler {
	return &Handler{
		service: service,
		useCase: useCase,
		logger:  logger,
	}
}

// List GET /api/v1/invitations?renterId=&state=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	renterID, err := handlers.QueryInt64(r, "renterId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	filter := domain.InvitationsFilter{RenterID: renterID}
	if raw := strings.TrimSpace(r.URL.Query().Get("state")); raw != "" {
		state := domain.InvitationState(raw)
		if !domain.IsValidInvitationState(state) {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		filter.State = &state
	}

	result, err := h.service.List(r.Context(), actor, filter)
	if err != nil {
		h.respondError(w, "GET /invitations", actor, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/invitations/{invitationId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "invitationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "GET /invitations/{id}", actor, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/invitations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateInvitationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invitations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.Location)
	if err != nil {
		h.logger.Warn("POST /invitations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Create(r.Context(), actor, useCaseReq)
	if err != nil {
		h.respondError(w, "POST /invitations", actor, err)
		return
	}

	h.logger.Info("POST /invitations - Invitation created: invitation_id=%d, sequence=%s, state=%s",
		result.ID, result.Sequence, result.State)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/invitations/{invitationId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "invitationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateInvitationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /invitations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.Location)
	if err != nil {
		h.logger.Warn("PUT /invitations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Update(r.Context(), actor, id, useCaseReq)
	if err != nil {
		h.respondError(w, "PUT /invitations/{id}", actor, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Confirm POST /api/v1/invitations/{invitationId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "POST /invitations/{id}/confirm", h.useCase.Confirm)
}

// Attend POST /api/v1/invitations/{invitationId}/attend
func (h *Handler) Attend(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "POST /invitations/{id}/attend", h.useCase.MarkAttended)
}

// Cancel POST /api/v1/invitations/{invitationId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "POST /invitations/{id}/cancel", h.useCase.MarkCancelled)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, route string, fn transitionFunc) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "invitationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := fn(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, route, actor, err)
		return
	}

	h.logger.Info("%s - Invitation moved: invitation_id=%d, state=%s", route, id, result.State)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, actor domain.Actor, err error) {
	switch {
	case errors.Is(err, invitation_workflow.ErrInvalidEmail):
		handlers.RespondBadRequest(w, msgInvalidEmail)

	case errors.Is(err, invitation_workflow.ErrInvalidInput), errors.Is(err, invitationsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, invitation_workflow.ErrNotInFuture):
		handlers.RespondUnprocessable(w, msgNotInFuture)

	case errors.Is(err, invitation_workflow.ErrAccessDenied), errors.Is(err, invitationsService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: officer_id=%d", route, actor.OfficerID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, invitation_workflow.ErrInvitationNotFound), errors.Is(err, invitationsService.ErrInvitationNotFound):
		handlers.RespondNotFound(w, msgInvitationNotFound)

	case errors.Is(err, invitation_workflow.ErrRenterNotFound):
		handlers.RespondNotFound(w, msgRenterNotFound)

	case errors.Is(err, invitation_workflow.ErrRenterRequired):
		h.logger.Warn("%s - Officer without renter: officer_id=%d", route, actor.OfficerID)
		handlers.RespondUnprocessable(w, msgRenterRequired)

	case errors.Is(err, invitation_workflow.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	default:
		h.logger.Error("%s - Failed: officer_id=%d, error=%v", route, actor.OfficerID, err)
		handlers.RespondInternalError(w)
	}
}

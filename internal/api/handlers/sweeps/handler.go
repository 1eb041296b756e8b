package sweeps

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/scheduler"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/check_due_payments"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/check_overdue_invitations"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "запускать проверки может только администратор"
	msgAlreadyRunning = "проверка уже выполняется"
)

type Handler struct {
	runner  JobRunner
	overdue OverdueInvitationsUseCase
	due     DuePaymentsUseCase
	logger  Logger
}

func NewHandler(runner JobRunner, overdue OverdueInvitationsUseCase, due DuePaymentsUseCase, logger Logger) *Handler {
	return &Handler{
		runner:  runner,
		overdue: overdue,
		due:     due,
		logger:  logger,
	}
}

// OverdueInvitations POST /api/v1/sweeps/overdue-invitations
func (h *Handler) OverdueInvitations(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var resp *check_overdue_invitations.Response
	err := h.runner.RunExclusive(r.Context(), check_overdue_invitations.Name, func(ctx context.Context) error {
		var err error
		resp, err = h.overdue.Execute(ctx)
		return err
	})
	if err != nil {
		h.respondError(w, "POST /sweeps/overdue-invitations", err)
		return
	}

	h.logger.Info("POST /sweeps/overdue-invitations - Marked overdue: count=%d", len(resp.Overdue))
	handlers.RespondJSON(w, http.StatusOK, OverdueResponse{Overdue: orEmpty(resp.Overdue)})
}

// DuePayments POST /api/v1/sweeps/due-payments
func (h *Handler) DuePayments(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var resp *check_due_payments.Response
	err := h.runner.RunExclusive(r.Context(), check_due_payments.Name, func(ctx context.Context) error {
		var err error
		resp, err = h.due.Execute(ctx)
		return err
	})
	if err != nil {
		h.respondError(w, "POST /sweeps/due-payments", err)
		return
	}

	h.logger.Info("POST /sweeps/due-payments - Reminders sent: notified=%d, failed=%d", len(resp.Notified), len(resp.Failed))
	handlers.RespondJSON(w, http.StatusOK, DuePaymentsResponse{
		Notified: orEmpty(resp.Notified),
		Failed:   orEmpty(resp.Failed),
	})
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) bool {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return false
	}
	if !actor.IsAdmin() {
		h.logger.Warn("%s %s - Access denied: officer_id=%d", r.Method, r.URL.Path, actor.OfficerID)
		handlers.RespondForbidden(w, msgForbidden)
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if errors.Is(err, scheduler.ErrAlreadyRunning) {
		h.logger.Warn("%s - Already running", route)
		handlers.RespondConflict(w, msgAlreadyRunning)
		return
	}
	h.logger.Error("%s - Failed: %v", route, err)
	handlers.RespondInternalError(w)
}

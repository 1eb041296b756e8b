package sweeps

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/scheduler"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/check_due_payments"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/check_overdue_invitations"
)

type JobRunner interface {
	RunExclusive(ctx context.Context, name string, fn scheduler.Job) error
}

type OverdueInvitationsUseCase interface {
	Execute(ctx context.Context) (*check_overdue_invitations.Response, error)
}

type DuePaymentsUseCase interface {
	Execute(ctx context.Context) (*check_due_payments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

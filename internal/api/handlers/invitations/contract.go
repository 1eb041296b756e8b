package invitations

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/invitations/models"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/invitation_workflow"
)

type InvitationsService interface {
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error)
	List(ctx context.Context, actor domain.Actor, filter domain.InvitationsFilter) ([]*models.InvitationResponse, error)
}

type WorkflowUseCase interface {
	Create(ctx context.Context, actor domain.Actor, req *invitation_workflow.CreateRequest) (*models.InvitationResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *invitation_workflow.UpdateRequest) (*models.InvitationResponse, error)
	Confirm(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error)
	MarkAttended(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error)
	MarkCancelled(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package renters

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	invitationModels "github.com/m04kA/SMC-ReceptionService/internal/service/invitations/models"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

type RentersService interface {
	CreateCompany(ctx context.Context, actor domain.Actor, req *models.CompanyRequest) (*models.CompanyResponse, error)
	CreateOfficer(ctx context.Context, actor domain.Actor, req *models.OfficerRequest) (*models.OfficerResponse, error)

	List(ctx context.Context, actor domain.Actor) ([]*models.RenterResponse, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*models.RenterResponse, error)
	Create(ctx context.Context, actor domain.Actor, req *models.RenterRequest) (*models.RenterResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.RenterRequest) (*models.RenterResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	ListInvitations(ctx context.Context, actor domain.Actor, renterID int64) ([]*invitationModels.InvitationResponse, error)

	AddGarageSlot(ctx context.Context, actor domain.Actor, renterID int64, req *models.GarageSlotRequest) (*models.GarageSlotResponse, error)
	UpdateGarageSlot(ctx context.Context, actor domain.Actor, id int64, req *models.GarageSlotRequest) (*models.GarageSlotResponse, error)
	DeleteGarageSlot(ctx context.Context, actor domain.Actor, id int64) error

	AddPayment(ctx context.Context, actor domain.Actor, renterID int64, req *models.PaymentRequest) (*models.PaymentResponse, error)
	UpdatePayment(ctx context.Context, actor domain.Actor, id int64, req *models.PaymentRequest) (*models.PaymentResponse, error)
	DeletePayment(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

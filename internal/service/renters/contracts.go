package renters

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// RenterRepository интерфейс репозитория арендаторов
type RenterRepository interface {
	Create(ctx context.Context, rt *domain.Renter) (*domain.Renter, error)
	GetByID(ctx context.Context, id int64) (*domain.Renter, error)
	ExistsByCompany(ctx context.Context, companyID int64, excludeID *int64) (bool, error)
	List(ctx context.Context, officerID *int64) ([]*domain.Renter, error)
	Update(ctx context.Context, rt *domain.Renter) error
	Delete(ctx context.Context, id int64) error
}

// DirectoryRepository интерфейс справочника компаний и сотрудников
type DirectoryRepository interface {
	CreateCompany(ctx context.Context, c *domain.Company) (*domain.Company, error)
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	CreateOfficer(ctx context.Context, o *domain.Officer) (*domain.Officer, error)
	GetOfficer(ctx context.Context, id int64) (*domain.Officer, error)
}

// GarageSlotRepository интерфейс репозитория мест в гараже
type GarageSlotRepository interface {
	Create(ctx context.Context, s *domain.GarageSlot) (*domain.GarageSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.GarageSlot, error)
	ListByRenter(ctx context.Context, renterID int64) ([]*domain.GarageSlot, error)
	ExistsNumber(ctx context.Context, renterID int64, number string, excludeID *int64) (bool, error)
	Update(ctx context.Context, s *domain.GarageSlot) (*domain.GarageSlot, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс репозитория запланированных платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduledPayment, error)
	ListByRenter(ctx context.Context, renterID int64) ([]*domain.ScheduledPayment, error)
	Update(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error)
	Delete(ctx context.Context, id int64) error
}

// InvitationRepository чтение приглашений арендатора
type InvitationRepository interface {
	List(ctx context.Context, filter domain.InvitationsFilter) ([]*domain.Invitation, error)
	CountByRenter(ctx context.Context, renterID int64) (int, error)
}

// ChangeRecorder пишет журнал изменений
type ChangeRecorder interface {
	Record(ctx context.Context, actor domain.Actor, model string, recordID int64, action domain.ChangeAction, changes map[string]interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

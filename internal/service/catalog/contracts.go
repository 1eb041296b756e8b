package catalog

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// DurationRepository интерфейс репозитория длительностей
type DurationRepository interface {
	Create(ctx context.Context, d *domain.Duration) (*domain.Duration, error)
	GetByID(ctx context.Context, id int64) (*domain.Duration, error)
	List(ctx context.Context) ([]*domain.Duration, error)
	Update(ctx context.Context, d *domain.Duration) (*domain.Duration, error)
	Delete(ctx context.Context, id int64) error
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	List(ctx context.Context) ([]*domain.Facility, error)
	Update(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	Delete(ctx context.Context, id int64) error
}

// ChangeRecorder пишет журнал изменений
type ChangeRecorder interface {
	Record(ctx context.Context, actor domain.Actor, model string, recordID int64, action domain.ChangeAction, changes map[string]interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

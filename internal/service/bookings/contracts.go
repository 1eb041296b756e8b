package bookings

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// RenterRepository интерфейс репозитория арендаторов (для проверки владельца)
type RenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Renter, error)
	List(ctx context.Context, officerID *int64) ([]*domain.Renter, error)
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

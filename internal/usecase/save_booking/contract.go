package save_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// DurationRepository интерфейс справочника длительностей
type DurationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Duration, error)
	MaxMinutes(ctx context.Context) (int, error)
}

// FacilityRepository интерфейс справочника объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// RenterRepository интерфейс репозитория арендаторов
type RenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Renter, error)
	GetFirstByOfficerID(ctx context.Context, officerID int64) (*domain.Renter, error)
}

// SettingsProvider источник текущих настроек ресепшена
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.Settings, error)
}

// ChangeRecorder пишет журнал изменений
type ChangeRecorder interface {
	Record(ctx context.Context, actor domain.Actor, model string, recordID int64, action domain.ChangeAction, changes map[string]interface{}) error
}

// MetricsRecorder счетчик отклоненных бронирований
type MetricsRecorder interface {
	BookingRejected(reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

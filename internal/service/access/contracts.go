package access

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// RenterRepository поиск арендатора
type RenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Renter, error)
}

// BookingRepository поиск бронирования
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// InvitationRepository поиск приглашения
type InvitationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Invitation, error)
}

// GarageSlotRepository поиск места в гараже
type GarageSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.GarageSlot, error)
}

// PaymentRepository поиск платежа
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduledPayment, error)
}

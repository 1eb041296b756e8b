package bookings

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/save_booking"
)

type BookingsService interface {
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error)
	List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) ([]*models.BookingResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type SaveBookingUseCase interface {
	Create(ctx context.Context, actor domain.Actor, req *save_booking.CreateRequest) (*models.BookingResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *save_booking.UpdateRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/booking"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
	"github.com/m04kA/SMC-ReceptionService/internal/service/bookings/models"
)

// Service сервис чтения и удаления бронирований
// Создание и перенос выполняет usecase save_booking
type Service struct {
	bookingRepo BookingRepository
	renterRepo  RenterRepository
	changes     ChangeRecorder
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	renterRepo RenterRepository,
	changes ChangeRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		renterRepo:  renterRepo,
		changes:     changes,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Арендатор видит только бронирования своих арендаторов, администратор - все
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for officer=%d", id, actor.OfficerID)

	booking, err := s.getAuthorized(ctx, actor, domain.ActionRead, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, actor.Loc()), nil
}

// List получает бронирования по фильтру, сначала новые
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) ([]*models.BookingResponse, error) {
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter := req.ToDomainFilter()

	if !actor.IsAdmin() {
		ids, err := s.ownRenterIDs(ctx, actor)
		if err != nil {
			return nil, err
		}
		filter.RenterIDs = ids
	}

	list, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for officer=%d: %v", actor.OfficerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for officer=%d", len(list), actor.OfficerID)
	return models.FromDomainBookings(list, actor.Loc()), nil
}

// Delete удаляет бронирование
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: officer=%d booking id=%d", actor.OfficerID, id)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getAuthorized(txCtx, actor, domain.ActionDelete, id)
		if err != nil {
			return err
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return s.changes.Record(txCtx, actor, domain.ModelBooking, id, domain.ChangeDeleted, map[string]interface{}{
			"name": booking.DisplayName(nil),
		})
	})
}

func (s *Service) getAuthorized(ctx context.Context, actor domain.Actor, action domain.Action, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getAuthorized: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getAuthorized: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if actor.IsAdmin() {
		return booking, nil
	}

	renter, err := s.renterRepo.GetByID(ctx, booking.RenterID)
	if err != nil && !errors.Is(err, renterRepo.ErrRenterNotFound) {
		return nil, fmt.Errorf("%w: GetByID - renter lookup: %v", ErrInternal, err)
	}

	var owner int64
	if renter != nil {
		owner = renter.OfficerID
	}
	if !domain.Can(actor, action, domain.Record{Model: domain.ModelBooking, OwnerOfficerID: owner}) {
		s.logger.Warn("getAuthorized: officer=%d cannot %s booking id=%d", actor.OfficerID, action, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// ownRenterIDs возвращает ID арендаторов, за которых отвечает сотрудник
func (s *Service) ownRenterIDs(ctx context.Context, actor domain.Actor) ([]int64, error) {
	officerID := actor.OfficerID
	renters, err := s.renterRepo.List(ctx, &officerID)
	if err != nil {
		s.logger.Error("ownRenterIDs: repository error for officer=%d: %v", officerID, err)
		return nil, fmt.Errorf("%w: renter lookup: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(renters))
	for _, r := range renters {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

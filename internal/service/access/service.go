package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/garageslot"
	invitationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/invitation"
	paymentRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/payment"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
)

// Service отвечает на вопрос "что actor может сделать с записью"
type Service struct {
	renters     RenterRepository
	bookings    BookingRepository
	invitations InvitationRepository
	slots       GarageSlotRepository
	payments    PaymentRepository
}

// NewService создает новый экземпляр сервиса прав
func NewService(
	renters RenterRepository,
	bookings BookingRepository,
	invitations InvitationRepository,
	slots GarageSlotRepository,
	payments PaymentRepository,
) *Service {
	return &Service{
		renters:     renters,
		bookings:    bookings,
		invitations: invitations,
		slots:       slots,
		payments:    payments,
	}
}

// Capabilities возвращает разрешенность каждого действия над записью model/id
func (s *Service) Capabilities(ctx context.Context, actor domain.Actor, model string, id int64) (map[domain.Action]bool, error) {
	rec, err := s.record(ctx, model, id)
	if err != nil {
		return nil, err
	}

	result := make(map[domain.Action]bool, len(domain.AllActions))
	for _, action := range domain.AllActions {
		result[action] = domain.Can(actor, action, rec)
	}
	return result, nil
}

func (s *Service) record(ctx context.Context, model string, id int64) (domain.Record, error) {
	rec := domain.Record{Model: model}

	var (
		renterID int64
		err      error
	)

	switch model {
	case domain.ModelDuration, domain.ModelFacility, domain.ModelSettings:
		return rec, nil
	case domain.ModelRenter:
		renterID = id
	case domain.ModelBooking:
		var b *domain.Booking
		if b, err = s.bookings.GetByID(ctx, id); err == nil {
			renterID = b.RenterID
		}
	case domain.ModelInvitation:
		var inv *domain.Invitation
		if inv, err = s.invitations.GetByID(ctx, id); err == nil {
			renterID = inv.RenterID
		}
	case domain.ModelGarageSlot:
		var slot *domain.GarageSlot
		if slot, err = s.slots.GetByID(ctx, id); err == nil {
			renterID = slot.RenterID
		}
	case domain.ModelPayment:
		var p *domain.ScheduledPayment
		if p, err = s.payments.GetByID(ctx, id); err == nil {
			renterID = p.RenterID
		}
	default:
		return rec, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	if err != nil {
		return rec, mapLookupError(err)
	}

	renter, err := s.renters.GetByID(ctx, renterID)
	if err != nil {
		return rec, mapLookupError(err)
	}
	rec.OwnerOfficerID = renter.OfficerID

	return rec, nil
}

func mapLookupError(err error) error {
	switch {
	case errors.Is(err, renterRepo.ErrRenterNotFound),
		errors.Is(err, bookingRepo.ErrBookingNotFound),
		errors.Is(err, invitationRepo.ErrInvitationNotFound),
		errors.Is(err, slotRepo.ErrGarageSlotNotFound),
		errors.Is(err, paymentRepo.ErrPaymentNotFound):
		return ErrRecordNotFound
	}
	return fmt.Errorf("%w: record lookup: %v", ErrInternal, err)
}

package save_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// Причины отказа для метрик
const (
	reasonNotFuture = "not_future"
	reasonConflict  = "conflict"
	reasonQuota     = "quota"
)

func validateCreateRequest(req *CreateRequest) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityId is required", ErrInvalidInput)
	}
	if req.DurationID <= 0 {
		return fmt.Errorf("%w: durationId is required", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}
	if req.OfficerID != nil && *req.OfficerID <= 0 {
		return fmt.Errorf("%w: officerId must be positive", ErrInvalidInput)
	}
	return nil
}

func validateUpdateRequest(req *UpdateRequest) error {
	if req.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.FacilityID != nil && *req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityId must be positive", ErrInvalidInput)
	}
	if req.DurationID != nil && *req.DurationID <= 0 {
		return fmt.Errorf("%w: durationId must be positive", ErrInvalidInput)
	}
	if req.StartAt != nil && req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt must be set", ErrInvalidInput)
	}
	if req.OfficerID != nil && *req.OfficerID <= 0 {
		return fmt.Errorf("%w: officerId must be positive", ErrInvalidInput)
	}
	return nil
}

// validateFuture отклоняет бронирование, начинающееся не позже now
func validateFuture(start, now time.Time) error {
	if !start.After(now) {
		return fmt.Errorf("%w: start %s is not after %s", ErrNotInFuture,
			start.UTC().Format(domain.DateTimeFormat), now.UTC().Format(domain.DateTimeFormat))
	}
	return nil
}

// checkOverlap ищет бронирование того же объекта, пересекающееся с b
// Соседи, начавшиеся раньше start минус самая длинная сохраненная длительность, закончиться позже start не могут
func (uc *UseCase) checkOverlap(ctx context.Context, actor domain.Actor, b *domain.Booking) error {
	longest, err := uc.durationRepo.MaxMinutes(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to get longest duration: %v", ErrInternal, err)
	}
	if longest < b.DurationMinutes {
		longest = b.DurationMinutes
	}

	from := b.StartAt.Add(-time.Duration(longest) * time.Minute)
	end := b.End()

	filter := domain.BookingsFilter{
		FacilityID: &b.FacilityID,
		From:       &from,
		To:         &end,
	}
	if b.ID != 0 {
		filter.ExcludeID = &b.ID
	}

	siblings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("%w: failed to get facility bookings: %v", ErrInternal, err)
	}

	for _, other := range siblings {
		if other.ID == b.ID {
			continue
		}
		if other.Overlaps(b.StartAt, end) {
			return &ConflictError{
				Facility: b.FacilityLabel,
				Start:    other.StartAt,
				End:      other.End(),
				Location: actor.Loc(),
			}
		}
	}

	return nil
}

// checkDailyQuota суммирует минуты арендатора за календарный день начала бронирования
func (uc *UseCase) checkDailyQuota(ctx context.Context, b *domain.Booking, settings *domain.Settings) error {
	if !settings.HasDailyLimit() {
		return nil
	}

	dayStart, dayEnd := domain.DayWindow(b.StartAt, uc.location)

	filter := domain.BookingsFilter{
		RenterID: &b.RenterID,
		From:     &dayStart,
		To:       &dayEnd,
	}
	if b.ID != 0 {
		filter.ExcludeID = &b.ID
	}

	sameDay, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("%w: failed to get renter bookings: %v", ErrInternal, err)
	}

	others := make([]*domain.Booking, 0, len(sameDay))
	for _, other := range sameDay {
		if other.ID != b.ID {
			others = append(others, other)
		}
	}

	booked := domain.BookedMinutes(others, dayStart, dayEnd)
	if booked+b.DurationMinutes > settings.DailyBookingLimit {
		return &QuotaError{
			Limit:     settings.DailyBookingLimit,
			Booked:    booked,
			Requested: b.DurationMinutes,
		}
	}

	return nil
}

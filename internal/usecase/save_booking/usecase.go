package save_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/booking"
	durationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/duration"
	facilityRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/facility"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
	"github.com/m04kA/SMC-ReceptionService/internal/service/bookings/models"
)

// UseCase use case для создания и изменения бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	durationRepo DurationRepository
	facilityRepo FacilityRepository
	renterRepo   RenterRepository
	settings     SettingsProvider
	changes      ChangeRecorder
	metrics      MetricsRecorder
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location задает границы суток для дневного лимита
func NewUseCase(
	bookingRepo BookingRepository,
	durationRepo DurationRepository,
	facilityRepo FacilityRepository,
	renterRepo RenterRepository,
	settings SettingsProvider,
	changes ChangeRecorder,
	metrics MetricsRecorder,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		durationRepo: durationRepo,
		facilityRepo: facilityRepo,
		renterRepo:   renterRepo,
		settings:     settings,
		changes:      changes,
		metrics:      metrics,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает бронирование
// Все проверки и запись выполняются в сериализуемой транзакции
func (uc *UseCase) Create(ctx context.Context, actor domain.Actor, req *CreateRequest) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: officer=%d facility=%d duration=%d start=%s",
		actor.OfficerID, req.FacilityID, req.DurationID, req.StartAt.UTC().Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateCreateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Ответственный сотрудник: по умолчанию текущий, чужого может указать только администратор
	officerID := actor.OfficerID
	if req.OfficerID != nil {
		if *req.OfficerID != actor.OfficerID && !actor.IsAdmin() {
			uc.logger.Warn("CreateBooking: officer=%d cannot book for officer=%d", actor.OfficerID, *req.OfficerID)
			return nil, ErrAccessDenied
		}
		officerID = *req.OfficerID
	}

	// 3. Проверка, что начало в будущем
	if err := validateFuture(req.StartAt, uc.timeProvider.Now()); err != nil {
		uc.reject(reasonNotFuture, "CreateBooking", err)
		return nil, err
	}

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 4. Проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking := &domain.Booking{
			FacilityID: req.FacilityID,
			DurationID: req.DurationID,
			StartAt:    req.StartAt.UTC(),
			OfficerID:  officerID,
		}

		if err := uc.resolveCatalog(txCtx, booking); err != nil {
			return err
		}
		if err := uc.resolveRenter(txCtx, actor, domain.ActionCreate, booking); err != nil {
			return err
		}
		if err := uc.checkRules(txCtx, actor, booking, settings, true, true); err != nil {
			return err
		}

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrReferenceNotFound) {
				return fmt.Errorf("%w: facility, duration or renter does not exist", ErrInvalidInput)
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		created, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}
		result = created

		return uc.changes.Record(txCtx, actor, domain.ModelBooking, created.ID, domain.ChangeCreated, map[string]interface{}{
			"facility_id": created.FacilityID,
			"duration_id": created.DurationID,
			"start_at":    created.StartAt,
			"officer_id":  created.OfficerID,
			"renter_id":   created.RenterID,
		})
	})
	if err != nil {
		uc.logFailure("CreateBooking", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return models.FromDomainBooking(result, actor.Loc()), nil
}

// Update меняет объект, длительность, начало или ответственного сотрудника
// Смена сотрудника заново определяет арендатора
func (uc *UseCase) Update(ctx context.Context, actor domain.Actor, id int64, req *UpdateRequest) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: officer=%d booking=%d", actor.OfficerID, id)

	if err := validateUpdateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Право на изменение проверяется по текущему арендатору до записи
		owner, err := uc.renterRepo.GetByID(txCtx, current.RenterID)
		if err != nil && !errors.Is(err, renterRepo.ErrRenterNotFound) {
			return fmt.Errorf("%w: failed to get renter: %v", ErrInternal, err)
		}
		var ownerOfficerID int64
		if owner != nil {
			ownerOfficerID = owner.OfficerID
		}
		if !domain.Can(actor, domain.ActionUpdate, domain.Record{Model: domain.ModelBooking, OwnerOfficerID: ownerOfficerID}) {
			return ErrAccessDenied
		}

		booking := *current
		changes := map[string]interface{}{}

		if req.FacilityID != nil && *req.FacilityID != current.FacilityID {
			booking.FacilityID = *req.FacilityID
			changes["facility_id"] = booking.FacilityID
		}
		if req.DurationID != nil && *req.DurationID != current.DurationID {
			booking.DurationID = *req.DurationID
			changes["duration_id"] = booking.DurationID
		}
		if req.StartAt != nil && !req.StartAt.Equal(current.StartAt) {
			booking.StartAt = req.StartAt.UTC()
			changes["start_at"] = booking.StartAt
		}

		officerChanged := req.OfficerID != nil && *req.OfficerID != current.OfficerID
		if officerChanged {
			booking.OfficerID = *req.OfficerID
			changes["officer_id"] = booking.OfficerID
		}

		// Проверка будущего времени выполняется при каждом сохранении
		if err := validateFuture(booking.StartAt, now); err != nil {
			uc.reject(reasonNotFuture, "UpdateBooking", err)
			return err
		}

		if err := uc.resolveCatalog(txCtx, &booking); err != nil {
			return err
		}
		if officerChanged {
			if err := uc.resolveRenter(txCtx, actor, domain.ActionUpdate, &booking); err != nil {
				return err
			}
			if booking.RenterID != current.RenterID {
				changes["renter_id"] = booking.RenterID
			}
		}

		_, facilityChanged := changes["facility_id"]
		_, durationChanged := changes["duration_id"]
		_, startChanged := changes["start_at"]
		_, renterChanged := changes["renter_id"]

		overlap := facilityChanged || durationChanged || startChanged
		quota := renterChanged || durationChanged || startChanged
		if err := uc.checkRules(txCtx, actor, &booking, settings, overlap, quota); err != nil {
			return err
		}

		if err := uc.bookingRepo.Update(txCtx, &booking); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrReferenceNotFound):
				return fmt.Errorf("%w: facility, duration or renter does not exist", ErrInvalidInput)
			}
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		updated, err := uc.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}
		result = updated

		return uc.changes.Record(txCtx, actor, domain.ModelBooking, id, domain.ChangeUpdated, changes)
	})
	if err != nil {
		uc.logFailure("UpdateBooking", err)
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", id)
	return models.FromDomainBooking(result, actor.Loc()), nil
}

// resolveCatalog подставляет название объекта и длительность в минутах
func (uc *UseCase) resolveCatalog(ctx context.Context, b *domain.Booking) error {
	facility, err := uc.facilityRepo.GetByID(ctx, b.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return ErrFacilityNotFound
		}
		return fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	b.FacilityLabel = facility.Label

	duration, err := uc.durationRepo.GetByID(ctx, b.DurationID)
	if err != nil {
		if errors.Is(err, durationRepo.ErrDurationNotFound) {
			return ErrDurationNotFound
		}
		return fmt.Errorf("%w: failed to get duration: %v", ErrInternal, err)
	}
	b.DurationMinutes = duration.Minutes

	return nil
}

// resolveRenter определяет арендатора по ответственному сотруднику и проверяет права actor
func (uc *UseCase) resolveRenter(ctx context.Context, actor domain.Actor, action domain.Action, b *domain.Booking) error {
	renter, err := uc.renterRepo.GetFirstByOfficerID(ctx, b.OfficerID)
	if err != nil {
		if errors.Is(err, renterRepo.ErrRenterNotFound) {
			return ErrRenterRequired
		}
		return fmt.Errorf("%w: failed to resolve renter: %v", ErrInternal, err)
	}

	if !domain.Can(actor, action, domain.Record{Model: domain.ModelBooking, OwnerOfficerID: renter.OfficerID}) {
		return ErrAccessDenied
	}

	b.RenterID = renter.ID
	b.RenterName = renter.DisplayName()
	return nil
}

// checkRules запускает проверку пересечений и дневного лимита
func (uc *UseCase) checkRules(ctx context.Context, actor domain.Actor, b *domain.Booking, settings *domain.Settings, overlap, quota bool) error {
	if overlap {
		if err := uc.checkOverlap(ctx, actor, b); err != nil {
			if errors.Is(err, ErrConflict) {
				uc.reject(reasonConflict, "SaveBooking", err)
			}
			return err
		}
	}
	if quota {
		if err := uc.checkDailyQuota(ctx, b, settings); err != nil {
			if errors.Is(err, ErrQuotaExceeded) {
				uc.reject(reasonQuota, "SaveBooking", err)
			}
			return err
		}
	}
	return nil
}

func (uc *UseCase) reject(reason, op string, err error) {
	uc.metrics.BookingRejected(reason)
	uc.logger.Warn("%s: rejected (%s): %v", op, reason, err)
}

func (uc *UseCase) logFailure(op string, err error) {
	if errors.Is(err, ErrInternal) {
		uc.logger.Error("%s: %v", op, err)
		return
	}
	uc.logger.Warn("%s: %v", op, err)
}

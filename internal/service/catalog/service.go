package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	durationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/duration"
	facilityRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ReceptionService/internal/service/catalog/models"
)

// Service справочники длительностей и объектов для бронирования
// Читать могут все, менять только администратор
type Service struct {
	durations  DurationRepository
	facilities FacilityRepository
	changes    ChangeRecorder
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(
	durations DurationRepository,
	facilities FacilityRepository,
	changes ChangeRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		durations:  durations,
		facilities: facilities,
		changes:    changes,
		txManager:  txManager,
		logger:     logger,
	}
}

func (s *Service) authorize(actor domain.Actor, action domain.Action, model string) error {
	if !domain.Can(actor, action, domain.Record{Model: model}) {
		return ErrAccessDenied
	}
	return nil
}

// ListDurations возвращает длительности по возрастанию минут
func (s *Service) ListDurations(ctx context.Context, actor domain.Actor) ([]*models.DurationResponse, error) {
	if err := s.authorize(actor, domain.ActionRead, domain.ModelDuration); err != nil {
		return nil, err
	}

	list, err := s.durations.List(ctx)
	if err != nil {
		s.logger.Error("ListDurations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDurations - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDurations(list), nil
}

// CreateDuration создает длительность
func (s *Service) CreateDuration(ctx context.Context, actor domain.Actor, req *models.DurationRequest) (*models.DurationResponse, error) {
	s.logger.Info("CreateDuration: officer=%d label=%q minutes=%d", actor.OfficerID, req.Label, req.Minutes)

	if err := s.authorize(actor, domain.ActionCreate, domain.ModelDuration); err != nil {
		s.logger.Warn("CreateDuration: access denied for officer=%d", actor.OfficerID)
		return nil, err
	}

	d, err := validateDuration(req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.durations.Create(txCtx, d); err != nil {
			return fmt.Errorf("%w: CreateDuration - repository error: %v", ErrInternal, err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelDuration, d.ID, domain.ChangeCreated, map[string]interface{}{
			"label":   d.Label,
			"minutes": d.Minutes,
		})
	})
	if err != nil {
		s.logger.Error("CreateDuration: %v", err)
		return nil, err
	}

	s.logger.Info("CreateDuration: created duration id=%d", d.ID)
	return models.FromDomainDuration(d), nil
}

// UpdateDuration меняет длительность
func (s *Service) UpdateDuration(ctx context.Context, actor domain.Actor, id int64, req *models.DurationRequest) (*models.DurationResponse, error) {
	s.logger.Info("UpdateDuration: officer=%d id=%d", actor.OfficerID, id)

	if err := s.authorize(actor, domain.ActionUpdate, domain.ModelDuration); err != nil {
		return nil, err
	}

	d, err := validateDuration(req)
	if err != nil {
		return nil, err
	}
	d.ID = id

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.durations.Update(txCtx, d); err != nil {
			if errors.Is(err, durationRepo.ErrDurationNotFound) {
				return ErrDurationNotFound
			}
			return fmt.Errorf("%w: UpdateDuration - repository error: %v", ErrInternal, err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelDuration, d.ID, domain.ChangeUpdated, map[string]interface{}{
			"label":   d.Label,
			"minutes": d.Minutes,
		})
	})
	if err != nil {
		s.logger.Warn("UpdateDuration: id=%d: %v", id, err)
		return nil, err
	}

	return models.FromDomainDuration(d), nil
}

// DeleteDuration удаляет длительность, если на нее не ссылаются бронирования
func (s *Service) DeleteDuration(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("DeleteDuration: officer=%d id=%d", actor.OfficerID, id)

	if err := s.authorize(actor, domain.ActionDelete, domain.ModelDuration); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.durations.Delete(txCtx, id); err != nil {
			switch {
			case errors.Is(err, durationRepo.ErrDurationNotFound):
				return ErrDurationNotFound
			case errors.Is(err, durationRepo.ErrDurationInUse):
				return ErrInUse
			}
			return fmt.Errorf("%w: DeleteDuration - repository error: %v", ErrInternal, err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelDuration, id, domain.ChangeDeleted, nil)
	})
	if err != nil {
		s.logger.Warn("DeleteDuration: id=%d: %v", id, err)
		return err
	}

	return nil
}

// ListFacilities возвращает объекты по алфавиту
func (s *Service) ListFacilities(ctx context.Context, actor domain.Actor) ([]*models.FacilityResponse, error) {
	if err := s.authorize(actor, domain.ActionRead, domain.ModelFacility); err != nil {
		return nil, err
	}

	list, err := s.facilities.List(ctx)
	if err != nil {
		s.logger.Error("ListFacilities: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFacilities - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFacilities(list), nil
}

// CreateFacility создает объект
func (s *Service) CreateFacility(ctx context.Context, actor domain.Actor, req *models.FacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("CreateFacility: officer=%d label=%q", actor.OfficerID, req.Label)

	if err := s.authorize(actor, domain.ActionCreate, domain.ModelFacility); err != nil {
		s.logger.Warn("CreateFacility: access denied for officer=%d", actor.OfficerID)
		return nil, err
	}

	label, err := validateLabel(req.Label)
	if err != nil {
		return nil, err
	}
	f := &domain.Facility{Label: label}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.facilities.Create(txCtx, f); err != nil {
			return fmt.Errorf("%w: CreateFacility - repository error: %v", ErrInternal, err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelFacility, f.ID, domain.ChangeCreated, map[string]interface{}{
			"label": f.Label,
		})
	})
	if err != nil {
		s.logger.Error("CreateFacility: %v", err)
		return nil, err
	}

	s.logger.Info("CreateFacility: created facility id=%d", f.ID)
	return models.FromDomainFacility(f), nil
}

// UpdateFacility переименовывает объект
func (s *Service) UpdateFacility(ctx context.Context, actor domain.Actor, id int64, req *models.FacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("UpdateFacility: officer=%d id=%d", actor.OfficerID, id)

	if err := s.authorize(actor, domain.ActionUpdate, domain.ModelFacility); err != nil {
		return nil, err
	}

	label, err := validateLabel(req.Label)
	if err != nil {
		return nil, err
	}
	f := &domain.Facility{ID: id, Label: label}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.facilities.Update(txCtx, f); err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				return ErrFacilityNotFound
			}
			return fmt.Errorf("%w: UpdateFacility - repository error: %v", ErrInternal, err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelFacility, f.ID, domain.ChangeUpdated, map[string]interface{}{
			"label": f.Label,
		})
	})
	if err != nil {
		s.logger.Warn("UpdateFacility: id=%d: %v", id, err)
		return nil, err
	}

	return models.FromDomainFacility(f), nil
}

// DeleteFacility удаляет объект, если на него не ссылаются бронирования
func (s *Service) DeleteFacility(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("DeleteFacility: officer=%d id=%d", actor.OfficerID, id)

	if err := s.authorize(actor, domain.ActionDelete, domain.ModelFacility); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.facilities.Delete(txCtx, id); err != nil {
			switch {
			case errors.Is(err, facilityRepo.ErrFacilityNotFound):
				return ErrFacilityNotFound
			case errors.Is(err, facilityRepo.ErrFacilityInUse):
				return ErrInUse
			}
			return fmt.Errorf("%w: DeleteFacility - repository error: %v", ErrInternal, err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelFacility, id, domain.ChangeDeleted, nil)
	})
	if err != nil {
		s.logger.Warn("DeleteFacility: id=%d: %v", id, err)
		return err
	}

	return nil
}

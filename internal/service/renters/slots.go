package renters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/garageslot"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

// AddGarageSlot добавляет арендатору место в гараже
// Номер места уникален в пределах арендатора
func (s *Service) AddGarageSlot(ctx context.Context, actor domain.Actor, renterID int64, req *models.GarageSlotRequest) (*models.GarageSlotResponse, error) {
	s.logger.Info("AddGarageSlot: officer=%d renter=%d number=%q", actor.OfficerID, renterID, req.Number)

	if !domain.Can(actor, domain.ActionCreate, domain.Record{Model: domain.ModelGarageSlot}) {
		return nil, ErrAccessDenied
	}

	slot, err := validateGarageSlot(req)
	if err != nil {
		return nil, err
	}
	slot.RenterID = renterID

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getAuthorized(txCtx, actor, domain.ActionRead, renterID); err != nil {
			return err
		}
		if err := s.checkSlotNumber(txCtx, slot, nil); err != nil {
			return err
		}
		if _, err := s.slots.Create(txCtx, slot); err != nil {
			return mapSlotError("AddGarageSlot", err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelGarageSlot, slot.ID, domain.ChangeCreated, map[string]interface{}{
			"renter_id":   slot.RenterID,
			"number":      slot.Number,
			"description": slot.Description,
		})
	})
	if err != nil {
		s.logger.Warn("AddGarageSlot: renter id=%d: %v", renterID, err)
		return nil, err
	}

	return models.FromDomainGarageSlot(slot), nil
}

// UpdateGarageSlot меняет номер или описание места
func (s *Service) UpdateGarageSlot(ctx context.Context, actor domain.Actor, id int64, req *models.GarageSlotRequest) (*models.GarageSlotResponse, error) {
	s.logger.Info("UpdateGarageSlot: officer=%d slot=%d", actor.OfficerID, id)

	if !domain.Can(actor, domain.ActionUpdate, domain.Record{Model: domain.ModelGarageSlot}) {
		return nil, ErrAccessDenied
	}

	slot, err := validateGarageSlot(req)
	if err != nil {
		return nil, err
	}
	slot.ID = id

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.slots.GetByID(txCtx, id)
		if err != nil {
			return mapSlotError("UpdateGarageSlot", err)
		}
		slot.RenterID = current.RenterID

		if err := s.checkSlotNumber(txCtx, slot, &id); err != nil {
			return err
		}
		if _, err := s.slots.Update(txCtx, slot); err != nil {
			return mapSlotError("UpdateGarageSlot", err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelGarageSlot, id, domain.ChangeUpdated, map[string]interface{}{
			"number":      slot.Number,
			"description": slot.Description,
		})
	})
	if err != nil {
		s.logger.Warn("UpdateGarageSlot: slot id=%d: %v", id, err)
		return nil, err
	}

	return models.FromDomainGarageSlot(slot), nil
}

// DeleteGarageSlot удаляет место
func (s *Service) DeleteGarageSlot(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("DeleteGarageSlot: officer=%d slot=%d", actor.OfficerID, id)

	if !domain.Can(actor, domain.ActionDelete, domain.Record{Model: domain.ModelGarageSlot}) {
		return ErrAccessDenied
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.slots.Delete(txCtx, id); err != nil {
			return mapSlotError("DeleteGarageSlot", err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelGarageSlot, id, domain.ChangeDeleted, nil)
	})
	if err != nil {
		s.logger.Warn("DeleteGarageSlot: slot id=%d: %v", id, err)
		return err
	}

	return nil
}

func (s *Service) checkSlotNumber(ctx context.Context, slot *domain.GarageSlot, excludeID *int64) error {
	taken, err := s.slots.ExistsNumber(ctx, slot.RenterID, slot.Number, excludeID)
	if err != nil {
		return fmt.Errorf("%w: slot number check: %v", ErrInternal, err)
	}
	if taken {
		return ErrDuplicateSlotNumber
	}
	return nil
}

func mapSlotError(op string, err error) error {
	switch {
	case errors.Is(err, slotRepo.ErrGarageSlotNotFound):
		return ErrGarageSlotNotFound
	case errors.Is(err, slotRepo.ErrDuplicateNumber):
		return ErrDuplicateSlotNumber
	case errors.Is(err, slotRepo.ErrRenterNotFound):
		return ErrRenterNotFound
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

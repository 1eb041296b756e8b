package invitations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	invitationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/invitation"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
	"github.com/m04kA/SMC-ReceptionService/internal/service/invitations/models"
)

// Service сервис чтения приглашений
// Изменения состояния выполняет usecase invitation_workflow
type Service struct {
	invitationRepo InvitationRepository
	renterRepo     RenterRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса приглашений
func NewService(invitationRepo InvitationRepository, renterRepo RenterRepository, logger Logger) *Service {
	return &Service{
		invitationRepo: invitationRepo,
		renterRepo:     renterRepo,
		logger:         logger,
	}
}

// GetByID получает приглашение по ID
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error) {
	s.logger.Info("GetByID: fetching invitation id=%d for officer=%d", id, actor.OfficerID)

	inv, err := s.invitationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, invitationRepo.ErrInvitationNotFound) {
			return nil, ErrInvitationNotFound
		}
		s.logger.Error("GetByID: repository error for invitation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.IsAdmin() {
		owner, err := s.ownerOf(ctx, inv.RenterID)
		if err != nil {
			return nil, err
		}
		if !domain.Can(actor, domain.ActionRead, domain.Record{Model: domain.ModelInvitation, OwnerOfficerID: owner}) {
			s.logger.Warn("GetByID: access denied for officer=%d to invitation id=%d", actor.OfficerID, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainInvitation(inv), nil
}

// List получает приглашения по фильтру (арендатор, состояние)
func (s *Service) List(ctx context.Context, actor domain.Actor, filter domain.InvitationsFilter) ([]*models.InvitationResponse, error) {
	if filter.State != nil && !domain.IsValidInvitationState(*filter.State) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidInput, *filter.State)
	}

	if !actor.IsAdmin() {
		officerID := actor.OfficerID
		renters, err := s.renterRepo.List(ctx, &officerID)
		if err != nil {
			s.logger.Error("List: renter lookup for officer=%d: %v", officerID, err)
			return nil, fmt.Errorf("%w: List - renter lookup: %v", ErrInternal, err)
		}
		filter.RenterIDs = make([]int64, 0, len(renters))
		for _, r := range renters {
			filter.RenterIDs = append(filter.RenterIDs, r.ID)
		}
	}

	list, err := s.invitationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d invitations for officer=%d", len(list), actor.OfficerID)
	return models.FromDomainInvitations(list), nil
}

func (s *Service) ownerOf(ctx context.Context, renterID int64) (int64, error) {
	renter, err := s.renterRepo.GetByID(ctx, renterID)
	if err != nil {
		if errors.Is(err, renterRepo.ErrRenterNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: renter lookup: %v", ErrInternal, err)
	}
	return renter.OfficerID, nil
}

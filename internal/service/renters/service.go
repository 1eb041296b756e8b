package renters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	directoryRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/directory"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
	invitationModels "github.com/m04kA/SMC-ReceptionService/internal/service/invitations/models"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

// Service реестр арендаторов с их местами в гараже и платежами
// Менять может только администратор, сотрудник арендатора видит свои записи
type Service struct {
	renters         RenterRepository
	directory       DirectoryRepository
	slots           GarageSlotRepository
	payments        PaymentRepository
	invitations     InvitationRepository
	changes         ChangeRecorder
	txManager       TransactionManager
	defaultCurrency string
	logger          Logger
}

// NewService создает новый экземпляр сервиса арендаторов
func NewService(
	renters RenterRepository,
	directory DirectoryRepository,
	slots GarageSlotRepository,
	payments PaymentRepository,
	invitations InvitationRepository,
	changes ChangeRecorder,
	txManager TransactionManager,
	defaultCurrency string,
	logger Logger,
) *Service {
	if defaultCurrency == "" {
		defaultCurrency = domain.DefaultCurrency
	}
	return &Service{
		renters:         renters,
		directory:       directory,
		slots:           slots,
		payments:        payments,
		invitations:     invitations,
		changes:         changes,
		txManager:       txManager,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// CreateCompany заводит компанию в справочнике
func (s *Service) CreateCompany(ctx context.Context, actor domain.Actor, req *models.CompanyRequest) (*models.CompanyResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	company, err := validateCompany(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.directory.CreateCompany(ctx, company); err != nil {
		s.logger.Error("CreateCompany: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCompany: created company id=%d", company.ID)
	return models.FromDomainCompany(company), nil
}

// CreateOfficer заводит сотрудника в справочнике
func (s *Service) CreateOfficer(ctx context.Context, actor domain.Actor, req *models.OfficerRequest) (*models.OfficerResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	officer, err := validateOfficer(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.directory.CreateOfficer(ctx, officer); err != nil {
		if errors.Is(err, directoryRepo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("CreateOfficer: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateOfficer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOfficer: created officer id=%d role=%s", officer.ID, officer.Role)
	return models.FromDomainOfficer(officer), nil
}

// List возвращает арендаторов по имени компании
// Сотрудник арендатора получает только тех, где он ответственный
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]*models.RenterResponse, error) {
	var officerID *int64
	if !actor.IsAdmin() {
		id := actor.OfficerID
		officerID = &id
	}

	list, err := s.renters.List(ctx, officerID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRenters(list), nil
}

// Get возвращает арендатора с местами в гараже, платежами и числом приглашений
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*models.RenterResponse, error) {
	var renter *domain.Renter

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		renter, err = s.getAuthorized(txCtx, actor, domain.ActionRead, id)
		if err != nil {
			return err
		}

		slots, err := s.slots.ListByRenter(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Get - list garage slots: %v", ErrInternal, err)
		}
		for _, slot := range slots {
			renter.GarageSlots = append(renter.GarageSlots, *slot)
		}

		payments, err := s.payments.ListByRenter(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Get - list payments: %v", ErrInternal, err)
		}
		for _, p := range payments {
			renter.Payments = append(renter.Payments, *p)
		}

		renter.InvitationCount, err = s.invitations.CountByRenter(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Get - count invitations: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Get: renter id=%d: %v", id, err)
		}
		return nil, err
	}

	return models.FromDomainRenter(renter), nil
}

// Create создает арендатора; у компании может быть только один арендатор
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.RenterRequest) (*models.RenterResponse, error) {
	s.logger.Info("Create: officer=%d company=%d responsible=%d", actor.OfficerID, req.CompanyID, req.OfficerID)

	if !domain.Can(actor, domain.ActionCreate, domain.Record{Model: domain.ModelRenter}) {
		return nil, ErrAccessDenied
	}

	renter, err := validateRenter(req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkReferences(txCtx, renter, nil); err != nil {
			return err
		}
		if _, err := s.renters.Create(txCtx, renter); err != nil {
			return s.mapRenterError("Create", err)
		}
		created, err := s.renters.GetByID(txCtx, renter.ID)
		if err != nil {
			return fmt.Errorf("%w: Create - reload renter: %v", ErrInternal, err)
		}
		renter = created
		return s.changes.Record(txCtx, actor, domain.ModelRenter, renter.ID, domain.ChangeCreated, map[string]interface{}{
			"company_id": renter.CompanyID,
			"officer_id": renter.OfficerID,
		})
	})
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	s.logger.Info("Create: created renter id=%d", renter.ID)
	return models.FromDomainRenter(renter), nil
}

// Update меняет компанию или ответственного сотрудника
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.RenterRequest) (*models.RenterResponse, error) {
	s.logger.Info("Update: officer=%d renter=%d", actor.OfficerID, id)

	renter, err := validateRenter(req)
	if err != nil {
		return nil, err
	}
	renter.ID = id

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.getAuthorized(txCtx, actor, domain.ActionUpdate, id)
		if err != nil {
			return err
		}
		if err := s.checkReferences(txCtx, renter, &id); err != nil {
			return err
		}
		if err := s.renters.Update(txCtx, renter); err != nil {
			return s.mapRenterError("Update", err)
		}

		changes := map[string]interface{}{}
		if current.CompanyID != renter.CompanyID {
			changes["company_id"] = renter.CompanyID
		}
		if current.OfficerID != renter.OfficerID {
			changes["officer_id"] = renter.OfficerID
		}

		updated, err := s.renters.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Update - reload renter: %v", ErrInternal, err)
		}
		renter = updated
		return s.changes.Record(txCtx, actor, domain.ModelRenter, id, domain.ChangeUpdated, changes)
	})
	if err != nil {
		s.logger.Warn("Update: renter id=%d: %v", id, err)
		return nil, err
	}

	return models.FromDomainRenter(renter), nil
}

// Delete удаляет арендатора вместе с местами в гараже и платежами
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: officer=%d renter=%d", actor.OfficerID, id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getAuthorized(txCtx, actor, domain.ActionDelete, id); err != nil {
			return err
		}
		if err := s.renters.Delete(txCtx, id); err != nil {
			if errors.Is(err, renterRepo.ErrReferenceNotFound) {
				return ErrRenterInUse
			}
			return s.mapRenterError("Delete", err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelRenter, id, domain.ChangeDeleted, nil)
	})
	if err != nil {
		s.logger.Warn("Delete: renter id=%d: %v", id, err)
		return err
	}

	return nil
}

// ListInvitations возвращает приглашения арендатора, сначала новые
func (s *Service) ListInvitations(ctx context.Context, actor domain.Actor, renterID int64) ([]*invitationModels.InvitationResponse, error) {
	if _, err := s.getAuthorized(ctx, actor, domain.ActionRead, renterID); err != nil {
		return nil, err
	}

	list, err := s.invitations.List(ctx, domain.InvitationsFilter{RenterID: &renterID})
	if err != nil {
		s.logger.Error("ListInvitations: renter id=%d: %v", renterID, err)
		return nil, fmt.Errorf("%w: ListInvitations - repository error: %v", ErrInternal, err)
	}

	return invitationModels.FromDomainInvitations(list), nil
}

// getAuthorized загружает арендатора и проверяет право actor на action
func (s *Service) getAuthorized(ctx context.Context, actor domain.Actor, action domain.Action, id int64) (*domain.Renter, error) {
	renter, err := s.renters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, renterRepo.ErrRenterNotFound) {
			return nil, ErrRenterNotFound
		}
		return nil, fmt.Errorf("%w: renter lookup: %v", ErrInternal, err)
	}

	if !domain.Can(actor, action, domain.Record{Model: domain.ModelRenter, OwnerOfficerID: renter.OfficerID}) {
		s.logger.Warn("access denied: officer=%d action=%s renter=%d", actor.OfficerID, action, id)
		return nil, ErrAccessDenied
	}

	return renter, nil
}

// checkReferences проверяет существование компании и сотрудника и что компания свободна
func (s *Service) checkReferences(ctx context.Context, renter *domain.Renter, excludeID *int64) error {
	if _, err := s.directory.GetCompany(ctx, renter.CompanyID); err != nil {
		if errors.Is(err, directoryRepo.ErrCompanyNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("%w: company lookup: %v", ErrInternal, err)
	}
	if _, err := s.directory.GetOfficer(ctx, renter.OfficerID); err != nil {
		if errors.Is(err, directoryRepo.ErrOfficerNotFound) {
			return ErrOfficerNotFound
		}
		return fmt.Errorf("%w: officer lookup: %v", ErrInternal, err)
	}

	claimed, err := s.renters.ExistsByCompany(ctx, renter.CompanyID, excludeID)
	if err != nil {
		return fmt.Errorf("%w: company claim check: %v", ErrInternal, err)
	}
	if claimed {
		return ErrCompanyAlreadyClaimed
	}
	return nil
}

func (s *Service) mapRenterError(op string, err error) error {
	switch {
	case errors.Is(err, renterRepo.ErrRenterNotFound):
		return ErrRenterNotFound
	case errors.Is(err, renterRepo.ErrCompanyAlreadyClaimed):
		return ErrCompanyAlreadyClaimed
	case errors.Is(err, renterRepo.ErrReferenceNotFound):
		return fmt.Errorf("%w: company or officer does not exist", ErrInvalidInput)
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

package invitation_workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	invitationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/invitation"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
	"github.com/m04kA/SMC-ReceptionService/internal/service/invitations/models"
	"github.com/m04kA/SMC-ReceptionService/pkg/ptr"
)

// Config параметры нумерации и часового пояса писем
type Config struct {
	SequenceName   string         // последовательность PostgreSQL
	SequencePrefix string         // например "INV/"
	Location       *time.Location // часовой пояс времени в письмах
}

// UseCase use case жизненного цикла приглашения
type UseCase struct {
	invitationRepo InvitationRepository
	renterRepo     RenterRepository
	sequence       SequenceGenerator
	settings       SettingsProvider
	notifier       Notifier
	changes        ChangeRecorder
	txManager      TransactionManager
	cfg            Config
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	invitationRepo InvitationRepository,
	renterRepo RenterRepository,
	sequence SequenceGenerator,
	settings SettingsProvider,
	notifier Notifier,
	changes ChangeRecorder,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &UseCase{
		invitationRepo: invitationRepo,
		renterRepo:     renterRepo,
		sequence:       sequence,
		settings:       settings,
		notifier:       notifier,
		changes:        changes,
		txManager:      txManager,
		cfg:            cfg,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Create создает приглашение и выдает ему номер
// Приглашение, созданное сразу в состоянии scheduled, отправляет гостю письмо
func (uc *UseCase) Create(ctx context.Context, actor domain.Actor, req *CreateRequest) (*models.InvitationResponse, error) {
	uc.logger.Info("CreateInvitation: officer=%d at=%s", actor.OfficerID, req.InvitationAt.UTC().Format(domain.DateTimeFormat))

	if err := validateCreateRequest(req); err != nil {
		uc.logger.Warn("CreateInvitation: validation failed: %v", err)
		return nil, err
	}

	state := ptr.Value(req.State, domain.InvitationDraft)

	officerID := actor.OfficerID
	if req.OfficerID != nil {
		if *req.OfficerID != actor.OfficerID && !actor.IsAdmin() {
			return nil, ErrAccessDenied
		}
		officerID = *req.OfficerID
	}

	inv := &domain.Invitation{
		OfficerID: officerID,
		Subject:   req.Subject,
		Guest: domain.Guest{
			Name:  req.Guest.Name,
			Email: req.Guest.Email,
			Phone: req.Guest.Phone,
		},
		InvitationAt: req.InvitationAt.UTC(),
		State:        state,
	}

	if err := validateInvitation(inv, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateInvitation: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Invitation

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.resolveRenter(txCtx, actor, domain.ActionCreate, inv, req.RenterID); err != nil {
			return err
		}

		number, err := uc.sequence.NextVal(txCtx, uc.cfg.SequenceName)
		if err != nil {
			return fmt.Errorf("%w: failed to get sequence number: %v", ErrInternal, err)
		}
		inv.Sequence = fmt.Sprintf("%s%05d", uc.cfg.SequencePrefix, number)

		if _, err := uc.invitationRepo.Create(txCtx, inv); err != nil {
			if errors.Is(err, invitationRepo.ErrReferenceNotFound) {
				return fmt.Errorf("%w: officer or renter does not exist", ErrInvalidInput)
			}
			return fmt.Errorf("%w: failed to create invitation: %v", ErrInternal, err)
		}

		created, err := uc.invitationRepo.GetByID(txCtx, inv.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload invitation: %v", ErrInternal, err)
		}
		result = created

		if err := uc.changes.Record(txCtx, actor, domain.ModelInvitation, created.ID, domain.ChangeCreated, map[string]interface{}{
			"sequence":      created.Sequence,
			"officer_id":    created.OfficerID,
			"renter_id":     created.RenterID,
			"subject":       created.Subject,
			"guest_email":   created.Guest.Email,
			"invitation_at": created.InvitationAt,
			"state":         created.State,
		}); err != nil {
			return err
		}

		return uc.notify(txCtx, nil, created)
	})
	if err != nil {
		uc.logFailure("CreateInvitation", err)
		return nil, err
	}

	uc.logger.Info("CreateInvitation: created invitation id=%d sequence=%s state=%s", result.ID, result.Sequence, result.State)
	return models.FromDomainInvitation(result), nil
}

// Update меняет тему, гостя, дату или ответственного сотрудника
// Смена даты отправляет гостю письмо о переносе
func (uc *UseCase) Update(ctx context.Context, actor domain.Actor, id int64, req *UpdateRequest) (*models.InvitationResponse, error) {
	uc.logger.Info("UpdateInvitation: officer=%d invitation=%d", actor.OfficerID, id)

	if err := validateUpdateRequest(req); err != nil {
		uc.logger.Warn("UpdateInvitation: validation failed: %v", err)
		return nil, err
	}

	result, err := uc.modify(ctx, actor, domain.ActionUpdate, id, func(txCtx context.Context, next *domain.Invitation) error {
		next.Subject = ptr.Value(req.Subject, next.Subject)
		next.Guest.Name = ptr.Value(req.GuestName, next.Guest.Name)
		next.Guest.Email = ptr.Value(req.GuestEmail, next.Guest.Email)
		next.Guest.Phone = ptr.Value(req.GuestPhone, next.Guest.Phone)
		if req.InvitationAt != nil {
			next.InvitationAt = req.InvitationAt.UTC()
		}
		if req.OfficerID != nil && *req.OfficerID != next.OfficerID {
			next.OfficerID = *req.OfficerID
			return uc.resolveRenter(txCtx, actor, domain.ActionUpdate, next, nil)
		}
		return nil
	})
	if err != nil {
		uc.logFailure("UpdateInvitation", err)
		return nil, err
	}

	return models.FromDomainInvitation(result), nil
}

// Confirm переводит черновик в scheduled и отправляет гостю приглашение
func (uc *UseCase) Confirm(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error) {
	return uc.transition(ctx, actor, domain.ActionConfirm, id, domain.InvitationScheduled, "ConfirmInvitation")
}

// MarkAttended отмечает приход гостя и уведомляет ответственного сотрудника
func (uc *UseCase) MarkAttended(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error) {
	return uc.transition(ctx, actor, domain.ActionAttend, id, domain.InvitationAttended, "MarkAttended")
}

// MarkCancelled отменяет приглашение без уведомлений
func (uc *UseCase) MarkCancelled(ctx context.Context, actor domain.Actor, id int64) (*models.InvitationResponse, error) {
	return uc.transition(ctx, actor, domain.ActionCancel, id, domain.InvitationCancelled, "MarkCancelled")
}

func (uc *UseCase) transition(ctx context.Context, actor domain.Actor, action domain.Action, id int64, target domain.InvitationState, op string) (*models.InvitationResponse, error) {
	uc.logger.Info("%s: officer=%d invitation=%d", op, actor.OfficerID, id)

	result, err := uc.modify(ctx, actor, action, id, func(_ context.Context, next *domain.Invitation) error {
		if !next.State.CanTransitionTo(target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, next.State, target)
		}
		next.State = target
		return nil
	})
	if err != nil {
		uc.logFailure(op, err)
		return nil, err
	}

	uc.logger.Info("%s: invitation id=%d is %s", op, id, result.State)
	return models.FromDomainInvitation(result), nil
}

// modify загружает приглашение под блокировкой, проверяет права, применяет mutate,
// валидирует и сохраняет результат, пишет журнал и отправляет уведомления в той же транзакции
func (uc *UseCase) modify(
	ctx context.Context,
	actor domain.Actor,
	action domain.Action,
	id int64,
	mutate func(ctx context.Context, next *domain.Invitation) error,
) (*domain.Invitation, error) {
	var result *domain.Invitation

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.invitationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, invitationRepo.ErrInvitationNotFound) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("%w: failed to get invitation: %v", ErrInternal, err)
		}

		if err := uc.authorizeOwner(txCtx, actor, action, current.RenterID); err != nil {
			return err
		}

		next := *current
		if err := mutate(txCtx, &next); err != nil {
			return err
		}

		if err := validateInvitation(&next, uc.timeProvider.Now()); err != nil {
			return err
		}

		if err := uc.invitationRepo.Update(txCtx, &next); err != nil {
			switch {
			case errors.Is(err, invitationRepo.ErrInvitationNotFound):
				return ErrInvitationNotFound
			case errors.Is(err, invitationRepo.ErrReferenceNotFound):
				return fmt.Errorf("%w: officer or renter does not exist", ErrInvalidInput)
			}
			return fmt.Errorf("%w: failed to update invitation: %v", ErrInternal, err)
		}

		updated, err := uc.invitationRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: failed to reload invitation: %v", ErrInternal, err)
		}
		result = updated

		if err := uc.changes.Record(txCtx, actor, domain.ModelInvitation, id, domain.ChangeUpdated, diff(current, updated)); err != nil {
			return err
		}

		return uc.notify(txCtx, current, updated)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// resolveRenter определяет арендатора приглашения
// Администратор может указать арендатора явно, иначе он берется по ответственному сотруднику
func (uc *UseCase) resolveRenter(ctx context.Context, actor domain.Actor, action domain.Action, inv *domain.Invitation, renterID *int64) error {
	var (
		renter *domain.Renter
		err    error
	)

	if renterID != nil && actor.IsAdmin() {
		renter, err = uc.renterRepo.GetByID(ctx, *renterID)
		if errors.Is(err, renterRepo.ErrRenterNotFound) {
			return ErrRenterNotFound
		}
	} else {
		renter, err = uc.renterRepo.GetFirstByOfficerID(ctx, inv.OfficerID)
		if errors.Is(err, renterRepo.ErrRenterNotFound) {
			return ErrRenterRequired
		}
	}
	if err != nil {
		return fmt.Errorf("%w: failed to resolve renter: %v", ErrInternal, err)
	}

	if renterID != nil && *renterID != renter.ID {
		uc.logger.Warn("resolveRenter: officer=%d cannot create for renter=%d", actor.OfficerID, *renterID)
		return ErrAccessDenied
	}

	if !domain.Can(actor, action, domain.Record{Model: domain.ModelInvitation, OwnerOfficerID: renter.OfficerID}) {
		return ErrAccessDenied
	}

	inv.RenterID = renter.ID
	inv.RenterName = renter.DisplayName()
	return nil
}

func (uc *UseCase) authorizeOwner(ctx context.Context, actor domain.Actor, action domain.Action, renterID int64) error {
	var owner int64
	if !actor.IsAdmin() {
		renter, err := uc.renterRepo.GetByID(ctx, renterID)
		if err != nil && !errors.Is(err, renterRepo.ErrRenterNotFound) {
			return fmt.Errorf("%w: failed to get renter: %v", ErrInternal, err)
		}
		if renter != nil {
			owner = renter.OfficerID
		}
	}

	if !domain.Can(actor, action, domain.Record{Model: domain.ModelInvitation, OwnerOfficerID: owner}) {
		uc.logger.Warn("authorizeOwner: officer=%d action=%s denied for renter=%d", actor.OfficerID, action, renterID)
		return ErrAccessDenied
	}
	return nil
}

func diff(before, after *domain.Invitation) map[string]interface{} {
	changes := map[string]interface{}{}
	if before.Subject != after.Subject {
		changes["subject"] = after.Subject
	}
	if before.Guest != after.Guest {
		changes["guest_name"] = after.Guest.Name
		changes["guest_email"] = after.Guest.Email
		changes["guest_phone"] = after.Guest.Phone
	}
	if !before.InvitationAt.Equal(after.InvitationAt) {
		changes["invitation_at"] = after.InvitationAt
	}
	if before.OfficerID != after.OfficerID {
		changes["officer_id"] = after.OfficerID
	}
	if before.RenterID != after.RenterID {
		changes["renter_id"] = after.RenterID
	}
	if before.State != after.State {
		changes["state"] = after.State
	}
	return changes
}

func (uc *UseCase) logFailure(op string, err error) {
	if errors.Is(err, ErrInternal) {
		uc.logger.Error("%s: %v", op, err)
		return
	}
	uc.logger.Warn("%s: %v", op, err)
}

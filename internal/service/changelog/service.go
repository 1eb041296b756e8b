package changelog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/changelog/models"
)

var knownModels = map[string]struct{}{
	domain.ModelDuration:   {},
	domain.ModelFacility:   {},
	domain.ModelRenter:     {},
	domain.ModelGarageSlot: {},
	domain.ModelPayment:    {},
	domain.ModelBooking:    {},
	domain.ModelInvitation: {},
	domain.ModelSettings:   {},
}

// Service журнал изменений: запись из других сервисов и чтение для администратора
type Service struct {
	repo   ChangeLogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(repo ChangeLogRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record добавляет запись в журнал; вызывается внутри транзакции изменения
func (s *Service) Record(
	ctx context.Context,
	actor domain.Actor,
	model string,
	recordID int64,
	action domain.ChangeAction,
	changes map[string]interface{},
) error {
	entry := &domain.ChangeLogEntry{
		Model:    model,
		RecordID: recordID,
		Action:   action,
		ActorID:  actor.OfficerID,
		Changes:  changes,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("Record: failed to append %s %s id=%d: %v", model, action, recordID, err)
		return fmt.Errorf("%w: Record - append: %v", ErrInternal, err)
	}
	return nil
}

// ListByRecord возвращает историю изменений записи
func (s *Service) ListByRecord(ctx context.Context, actor domain.Actor, model string, recordID int64) ([]models.EntryResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("ListByRecord: access denied for officer=%d", actor.OfficerID)
		return nil, ErrAccessDenied
	}
	if _, ok := knownModels[model]; !ok || recordID <= 0 {
		return nil, fmt.Errorf("%w: unknown model %q or id %d", ErrInvalidInput, model, recordID)
	}

	entries, err := s.repo.ListByRecord(ctx, model, recordID)
	if err != nil {
		s.logger.Error("ListByRecord: repository error for %s id=%d: %v", model, recordID, err)
		return nil, fmt.Errorf("%w: ListByRecord - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntries(entries), nil
}

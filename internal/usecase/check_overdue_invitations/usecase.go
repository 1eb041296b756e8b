package check_overdue_invitations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// UseCase переводит просроченные запланированные приглашения в overdue
type UseCase struct {
	invitationRepo InvitationRepository
	changes        ChangeRecorder
	metrics        MetricsRecorder
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	invitationRepo InvitationRepository,
	changes ChangeRecorder,
	metrics MetricsRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		invitationRepo: invitationRepo,
		changes:        changes,
		metrics:        metrics,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет один прогон
// Повторный прогон ничего не меняет: обновляются только scheduled с прошедшей датой
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	var ids []int64

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		ids, err = uc.invitationRepo.MarkOverdue(txCtx, now)
		if err != nil {
			return fmt.Errorf("%w: failed to mark overdue: %v", ErrInternal, err)
		}

		for _, id := range ids {
			if err := uc.changes.Record(txCtx, domain.Actor{}, domain.ModelInvitation, id, domain.ChangeUpdated, map[string]interface{}{
				"state": domain.InvitationOverdue,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("CheckOverdueInvitations: %v", err)
		return nil, err
	}

	uc.metrics.SweepRows(Name, len(ids))
	uc.logger.Info("CheckOverdueInvitations: %d invitations marked overdue", len(ids))

	return &Response{Overdue: ids}, nil
}

package check_due_payments

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/integrations/mailer"
)

// UseCase рассылает напоминания о платежах, срок которых наступил
type UseCase struct {
	paymentRepo  PaymentRepository
	notifier     Notifier
	changes      ChangeRecorder
	metrics      MetricsRecorder
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location определяет, какая дата сейчас "сегодня"
func NewUseCase(
	paymentRepo PaymentRepository,
	notifier Notifier,
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
		paymentRepo:  paymentRepo,
		notifier:     notifier,
		changes:      changes,
		metrics:      metrics,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один прогон
// Каждый платеж обрабатывается в своей транзакции: флаг notified ставится до отправки,
// и при ошибке отправки откатывается вместе с ней. Уже оповещенные платежи не трогаются.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	today := domain.DateOnly(uc.timeProvider.Now().In(uc.location))

	due, err := uc.paymentRepo.ListDue(ctx, today)
	if err != nil {
		uc.logger.Error("CheckDuePayments: failed to list due payments: %v", err)
		return nil, fmt.Errorf("%w: failed to list due payments: %v", ErrInternal, err)
	}

	resp := &Response{
		Notified: make([]int64, 0, len(due)),
		Failed:   make([]int64, 0),
	}

	for _, item := range due {
		sent, err := uc.process(ctx, item)
		if err != nil {
			uc.logger.Warn("CheckDuePayments: payment id=%d: %v", item.Payment.ID, err)
			resp.Failed = append(resp.Failed, item.Payment.ID)
			continue
		}
		if sent {
			resp.Notified = append(resp.Notified, item.Payment.ID)
		}
	}

	uc.metrics.SweepRows(Name, len(resp.Notified))
	uc.logger.Info("CheckDuePayments: today=%s notified=%d failed=%d",
		today.Format(domain.DateFormat), len(resp.Notified), len(resp.Failed))

	return resp, nil
}

func (uc *UseCase) process(ctx context.Context, item *domain.DuePayment) (bool, error) {
	sent := false

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		marked, err := uc.paymentRepo.MarkNotified(txCtx, item.Payment.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to mark notified: %v", ErrInternal, err)
		}
		if !marked {
			// Уже оповещен параллельным прогоном
			return nil
		}

		renter := item.RenterName
		if renter == "" {
			renter = domain.DraftRenterName
		}

		if err := uc.notifier.Send(txCtx, mailer.TemplatePaymentDue, item.Payment.ID, item.OfficerEmail, mailer.PaymentMail{
			RenterName:  renter,
			OfficerName: item.OfficerName,
			Description: item.Payment.Description,
			Amount:      item.Payment.Amount.StringFixed(2),
			Currency:    item.Payment.Currency,
			DueDate:     item.Payment.DueDate,
		}); err != nil {
			return err
		}

		if err := uc.changes.Record(txCtx, domain.Actor{}, domain.ModelPayment, item.Payment.ID, domain.ChangeUpdated, map[string]interface{}{
			"notified": true,
		}); err != nil {
			return err
		}

		sent = true
		return nil
	})

	return sent, err
}

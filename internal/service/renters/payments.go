package renters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

// AddPayment планирует платеж арендатора
func (s *Service) AddPayment(ctx context.Context, actor domain.Actor, renterID int64, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("AddPayment: officer=%d renter=%d due=%s", actor.OfficerID, renterID, req.DueDate)

	if !domain.Can(actor, domain.ActionCreate, domain.Record{Model: domain.ModelPayment}) {
		return nil, ErrAccessDenied
	}

	payment, err := validatePayment(req, s.defaultCurrency)
	if err != nil {
		return nil, err
	}
	payment.RenterID = renterID

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getAuthorized(txCtx, actor, domain.ActionRead, renterID); err != nil {
			return err
		}
		if _, err := s.payments.Create(txCtx, payment); err != nil {
			return mapPaymentError("AddPayment", err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelPayment, payment.ID, domain.ChangeCreated, paymentChanges(payment))
	})
	if err != nil {
		s.logger.Warn("AddPayment: renter id=%d: %v", renterID, err)
		return nil, err
	}

	return models.FromDomainPayment(payment), nil
}

// UpdatePayment меняет платеж
// Если меняется сумма или дата, напоминание будет отправлено заново
func (s *Service) UpdatePayment(ctx context.Context, actor domain.Actor, id int64, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("UpdatePayment: officer=%d payment=%d", actor.OfficerID, id)

	if !domain.Can(actor, domain.ActionUpdate, domain.Record{Model: domain.ModelPayment}) {
		return nil, ErrAccessDenied
	}

	payment, err := validatePayment(req, s.defaultCurrency)
	if err != nil {
		return nil, err
	}
	payment.ID = id

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.payments.GetByID(txCtx, id)
		if err != nil {
			return mapPaymentError("UpdatePayment", err)
		}

		payment.RenterID = current.RenterID
		payment.Notified = current.Notified
		if !current.DueDate.Equal(payment.DueDate) || !current.Amount.Equal(payment.Amount) {
			payment.Notified = false
		}

		if _, err := s.payments.Update(txCtx, payment); err != nil {
			return mapPaymentError("UpdatePayment", err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelPayment, id, domain.ChangeUpdated, paymentChanges(payment))
	})
	if err != nil {
		s.logger.Warn("UpdatePayment: payment id=%d: %v", id, err)
		return nil, err
	}

	return models.FromDomainPayment(payment), nil
}

// DeletePayment удаляет платеж
func (s *Service) DeletePayment(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("DeletePayment: officer=%d payment=%d", actor.OfficerID, id)

	if !domain.Can(actor, domain.ActionDelete, domain.Record{Model: domain.ModelPayment}) {
		return ErrAccessDenied
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.payments.Delete(txCtx, id); err != nil {
			return mapPaymentError("DeletePayment", err)
		}
		return s.changes.Record(txCtx, actor, domain.ModelPayment, id, domain.ChangeDeleted, nil)
	})
	if err != nil {
		s.logger.Warn("DeletePayment: payment id=%d: %v", id, err)
		return err
	}

	return nil
}

func paymentChanges(p *domain.ScheduledPayment) map[string]interface{} {
	return map[string]interface{}{
		"description": p.Description,
		"amount":      p.Amount.String(),
		"currency":    p.Currency,
		"due_date":    p.DueDate.Format(domain.DateFormat),
	}
}

func mapPaymentError(op string, err error) error {
	switch {
	case errors.Is(err, paymentRepo.ErrPaymentNotFound):
		return ErrPaymentNotFound
	case errors.Is(err, paymentRepo.ErrRenterNotFound):
		return ErrRenterNotFound
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

package check_due_payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/integrations/mailer"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ListDue(ctx context.Context, today time.Time) ([]*domain.DuePayment, error)
	MarkNotified(ctx context.Context, id int64) (bool, error)
}

// Notifier отправляет шаблонные письма
type Notifier interface {
	Send(ctx context.Context, name string, recordID int64, to string, data interface{}, attachments ...mailer.Attachment) error
}

// ChangeRecorder пишет журнал изменений
type ChangeRecorder interface {
	Record(ctx context.Context, actor domain.Actor, model string, recordID int64, action domain.ChangeAction, changes map[string]interface{}) error
}

// MetricsRecorder счетчик обработанных строк
type MetricsRecorder interface {
	SweepRows(sweep string, n int)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

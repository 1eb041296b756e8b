package check_overdue_invitations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// InvitationRepository интерфейс репозитория приглашений
type InvitationRepository interface {
	MarkOverdue(ctx context.Context, now time.Time) ([]int64, error)
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
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

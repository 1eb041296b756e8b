package changelog

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// ChangeLogRepository интерфейс журнала изменений
type ChangeLogRepository interface {
	Append(ctx context.Context, entry *domain.ChangeLogEntry) error
	ListByRecord(ctx context.Context, model string, recordID int64) ([]*domain.ChangeLogEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

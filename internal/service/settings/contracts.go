package settings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// SettingsRepository key/value хранилище настроек
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

// Cache кеш настроек (Redis или память процесса)
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ChangeRecorder пишет журнал изменений
type ChangeRecorder interface {
	Record(ctx context.Context, actor domain.Actor, model string, recordID int64, action domain.ChangeAction, changes map[string]interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/infra/cache"
)

// Locker выдает распределенные блокировки
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (*cache.Lock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job периодическая задача
type Job func(ctx context.Context) error

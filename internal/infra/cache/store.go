// Package cache хранит короткоживущее состояние: кеш настроек и блокировки периодических задач.
// Реализации: Redis (несколько реплик) или память процесса (локальный запуск, одна реплика).
package cache

import (
	"context"
	"time"
)

// Store абстракция key/value хранилища с TTL
type Store interface {
	// Get возвращает nil, nil если ключа нет или он истек
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// SetNX записывает значение только если ключа нет; возвращает true при записи
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// DeleteIfEquals удаляет ключ только если он хранит value
	DeleteIfEquals(ctx context.Context, key string, value []byte) (bool, error)
}

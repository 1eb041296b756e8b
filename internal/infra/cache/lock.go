package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const lockPrefix = "lock:"

// Locker выдает именованные блокировки с TTL поверх Store
type Locker struct {
	store Store
}

// NewLocker создает Locker
func NewLocker(store Store) *Locker {
	return &Locker{store: store}
}

// Lock удерживаемая блокировка
type Lock struct {
	store Store
	key   string
	token []byte
}

// Acquire пытается взять блокировку name на ttl
// Возвращает ErrLockHeld, если блокировка уже занята
func (l *Locker) Acquire(ctx context.Context, name string, ttl time.Duration) (*Lock, error) {
	token := []byte(uuid.NewString())
	key := lockPrefix + name

	ok, err := l.store.SetNX(ctx, key, token, ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return &Lock{store: l.store, key: key, token: token}, nil
}

// Release освобождает блокировку, если она все еще принадлежит нам
func (l *Lock) Release(ctx context.Context) error {
	_, err := l.store.DeleteIfEquals(ctx, l.key, l.token)
	return err
}

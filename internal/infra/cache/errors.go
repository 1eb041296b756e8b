package cache

import "errors"

var (
	// ErrBackend возвращается при ошибке обращения к хранилищу
	ErrBackend = errors.New("cache: backend error")

	// ErrLockHeld возвращается, когда блокировку уже держит другой процесс
	ErrLockHeld = errors.New("cache: lock is held by another owner")
)

package access

import "errors"

var (
	// ErrUnknownModel возвращается для модели, о которой сервис не знает
	ErrUnknownModel = errors.New("access: unknown model")

	// ErrRecordNotFound возвращается, когда запись не найдена
	ErrRecordNotFound = errors.New("access: record not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("access: internal error")
)

package changelog

import "errors"

var (
	// ErrAccessDenied возвращается, когда журнал запрашивает не администратор
	ErrAccessDenied = errors.New("changelog: access denied")

	// ErrInvalidInput возвращается при некорректной модели или ID
	ErrInvalidInput = errors.New("changelog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("changelog: internal error")
)

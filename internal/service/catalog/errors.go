package catalog

import "errors"

var (
	// ErrDurationNotFound возвращается, когда длительность не найдена
	ErrDurationNotFound = errors.New("catalog: duration not found")

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("catalog: facility not found")

	// ErrInUse возвращается при удалении записи, на которую ссылаются бронирования
	ErrInUse = errors.New("catalog: record is referenced by bookings")

	// ErrAccessDenied возвращается, когда каталог меняет не администратор
	ErrAccessDenied = errors.New("catalog: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)

package duration

import "errors"

var (
	// ErrDurationNotFound возвращается, когда длительность не найдена
	ErrDurationNotFound = errors.New("duration.repository: duration not found")

	// ErrDurationInUse возвращается при удалении длительности, на которую ссылаются бронирования
	ErrDurationInUse = errors.New("duration.repository: duration is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("duration.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("duration.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("duration.repository: failed to scan row")
)

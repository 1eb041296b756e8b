package changelog

import "errors"

var (
	// ErrEncodeChanges возвращается, если изменения не удалось сериализовать в JSON
	ErrEncodeChanges = errors.New("changelog.repository: failed to encode changes")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("changelog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("changelog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("changelog.repository: failed to scan row")
)

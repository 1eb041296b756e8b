package directory

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("directory.repository: company not found")

	// ErrOfficerNotFound возвращается, когда сотрудник не найден
	ErrOfficerNotFound = errors.New("directory.repository: officer not found")

	// ErrDuplicateEmail возвращается при повторном email сотрудника
	ErrDuplicateEmail = errors.New("directory.repository: officer email already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("directory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("directory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("directory.repository: failed to scan row")
)

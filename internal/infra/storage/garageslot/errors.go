package garageslot

import "errors"

var (
	// ErrGarageSlotNotFound возвращается, когда место в гараже не найдено
	ErrGarageSlotNotFound = errors.New("garageslot.repository: garage slot not found")

	// ErrDuplicateNumber возвращается, когда у арендатора уже есть место с таким номером
	ErrDuplicateNumber = errors.New("garageslot.repository: slot number already used by renter")

	// ErrRenterNotFound возвращается, когда арендатор для места не существует
	ErrRenterNotFound = errors.New("garageslot.repository: renter not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("garageslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("garageslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("garageslot.repository: failed to scan row")
)

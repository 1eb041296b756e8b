package renter

import "errors"

var (
	// ErrRenterNotFound возвращается, когда арендатор не найден
	ErrRenterNotFound = errors.New("renter.repository: renter not found")

	// ErrCompanyAlreadyClaimed возвращается, когда у компании уже есть арендатор
	ErrCompanyAlreadyClaimed = errors.New("renter.repository: company already has a renter")

	// ErrReferenceNotFound возвращается, когда компания или сотрудник не существуют
	ErrReferenceNotFound = errors.New("renter.repository: referenced company or officer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("renter.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("renter.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("renter.repository: failed to scan row")
)

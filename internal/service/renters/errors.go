package renters

import "errors"

var (
	// ErrRenterNotFound возвращается, когда арендатор не найден
	ErrRenterNotFound = errors.New("renters: renter not found")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("renters: company not found")

	// ErrOfficerNotFound возвращается, когда сотрудник не найден
	ErrOfficerNotFound = errors.New("renters: officer not found")

	// ErrCompanyAlreadyClaimed возвращается при попытке создать второго арендатора для компании
	ErrCompanyAlreadyClaimed = errors.New("renters: company already has a renter")

	// ErrDuplicateEmail возвращается, когда сотрудник с таким email уже есть
	ErrDuplicateEmail = errors.New("renters: officer email already exists")

	// ErrGarageSlotNotFound возвращается, когда место в гараже не найдено
	ErrGarageSlotNotFound = errors.New("renters: garage slot not found")

	// ErrDuplicateSlotNumber возвращается, когда у арендатора уже есть место с таким номером
	ErrDuplicateSlotNumber = errors.New("renters: garage slot number already used by renter")

	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("renters: scheduled payment not found")

	// ErrRenterInUse возвращается при удалении арендатора, у которого есть бронирования или приглашения
	ErrRenterInUse = errors.New("renters: renter has bookings or invitations")

	// ErrAccessDenied возвращается, когда у сотрудника нет прав
	ErrAccessDenied = errors.New("renters: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("renters: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("renters: internal error")
)

package save_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("save_booking: booking not found")

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("save_booking: facility not found")

	// ErrDurationNotFound возвращается, когда длительность не найдена
	ErrDurationNotFound = errors.New("save_booking: duration not found")

	// ErrRenterRequired возвращается, когда для сотрудника не найден арендатор
	ErrRenterRequired = errors.New("save_booking: officer is not responsible for any renter")

	// ErrNotInFuture возвращается, когда начало бронирования не в будущем
	ErrNotInFuture = errors.New("save_booking: booking time must be in the future")

	// ErrConflict возвращается, когда объект уже занят в это время
	ErrConflict = errors.New("save_booking: facility is already booked")

	// ErrQuotaExceeded возвращается при превышении дневного лимита арендатора
	ErrQuotaExceeded = errors.New("save_booking: daily booking limit exceeded")

	// ErrAccessDenied возвращается, когда сотрудник не может менять бронирование
	ErrAccessDenied = errors.New("save_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("save_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_booking: internal error")
)

// ConflictError описывает пересечение с уже существующим бронированием
// Окно хранится в UTC, а в сообщении выводится в часовом поясе пользователя
type ConflictError struct {
	Facility string
	Start    time.Time
	End      time.Time
	Location *time.Location
}

func (e *ConflictError) Error() string {
	loc := e.Location
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%v: facility %q is already booked from %s to %s",
		ErrConflict, e.Facility,
		e.Start.In(loc).Format(domain.DateTimeFormat),
		e.End.In(loc).Format(domain.DateTimeFormat))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// QuotaError описывает превышение дневного лимита в минутах
type QuotaError struct {
	Limit     int
	Booked    int
	Requested int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%v: limit %d minutes per day, already booked %d, requested %d",
		ErrQuotaExceeded, e.Limit, e.Booked, e.Requested)
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}

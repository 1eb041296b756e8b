package save_booking

import "time"

// CreateRequest модель запроса на создание бронирования
type CreateRequest struct {
	FacilityID int64     // ID объекта
	DurationID int64     // ID длительности
	StartAt    time.Time // Начало бронирования
	OfficerID  *int64    // Ответственный сотрудник (по умолчанию текущий)
}

// UpdateRequest модель запроса на изменение бронирования
// nil-поля не меняются
type UpdateRequest struct {
	FacilityID *int64
	DurationID *int64
	StartAt    *time.Time
	OfficerID  *int64
}

// IsEmpty проверяет, что запрос ничего не меняет
func (r *UpdateRequest) IsEmpty() bool {
	return r.FacilityID == nil && r.DurationID == nil && r.StartAt == nil && r.OfficerID == nil
}

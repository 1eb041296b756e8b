package bookings

import (
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/save_booking"
)

// CreateBookingRequest HTTP модель создания бронирования
// StartAt в RFC3339 или "YYYY-MM-DD HH:MM" в часовом поясе пользователя
type CreateBookingRequest struct {
	FacilityID int64  `json:"facilityId"`
	DurationID int64  `json:"durationId"`
	StartAt    string `json:"startAt"`
	OfficerID  *int64 `json:"officerId,omitempty"`
}

// UpdateBookingRequest HTTP модель изменения бронирования
type UpdateBookingRequest struct {
	FacilityID *int64  `json:"facilityId,omitempty"`
	DurationID *int64  `json:"durationId,omitempty"`
	StartAt    *string `json:"startAt,omitempty"`
	OfficerID  *int64  `json:"officerId,omitempty"`
}

// ConflictDetails подробности пересечения бронирований
type ConflictDetails struct {
	Facility string `json:"facility"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// QuotaDetails подробности превышения дневного лимита
type QuotaDetails struct {
	LimitMinutes     int `json:"limitMinutes"`
	BookedMinutes    int `json:"bookedMinutes"`
	RequestedMinutes int `json:"requestedMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*save_booking.CreateRequest, error) {
	startAt, err := handlers.ParseDateTime(r.StartAt, loc)
	if err != nil {
		return nil, err
	}
	return &save_booking.CreateRequest{
		FacilityID: r.FacilityID,
		DurationID: r.DurationID,
		StartAt:    startAt,
		OfficerID:  r.OfficerID,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(loc *time.Location) (*save_booking.UpdateRequest, error) {
	req := &save_booking.UpdateRequest{
		FacilityID: r.FacilityID,
		DurationID: r.DurationID,
		OfficerID:  r.OfficerID,
	}
	if r.StartAt != nil {
		startAt, err := handlers.ParseDateTime(*r.StartAt, loc)
		if err != nil {
			return nil, err
		}
		req.StartAt = &startAt
	}
	return req, nil
}

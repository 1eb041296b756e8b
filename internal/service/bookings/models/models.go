package models

import (
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// ListBookingsRequest фильтр списка бронирований
type ListBookingsRequest struct {
	FacilityID *int64
	RenterID   *int64
	From       *time.Time
	To         *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	return domain.BookingsFilter{
		FacilityID: r.FacilityID,
		RenterID:   r.RenterID,
		From:       r.From,
		To:         r.To,
	}
}

// BookingResponse бронирование
type BookingResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FacilityID      int64     `json:"facilityId"`
	FacilityLabel   string    `json:"facilityLabel"`
	DurationID      int64     `json:"durationId"`
	DurationMinutes int       `json:"durationMinutes"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	OfficerID       int64     `json:"officerId"`
	RenterID        int64     `json:"renterId"`
	RenterName      string    `json:"renterName"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FromDomainBooking конвертирует domain.Booking в response; имя форматируется в loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		Name:            b.DisplayName(loc),
		FacilityID:      b.FacilityID,
		FacilityLabel:   b.FacilityLabel,
		DurationID:      b.DurationID,
		DurationMinutes: b.DurationMinutes,
		StartAt:         b.StartAt,
		EndAt:           b.End(),
		OfficerID:       b.OfficerID,
		RenterID:        b.RenterID,
		RenterName:      b.RenterName,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список бронирований
func FromDomainBookings(list []*domain.Booking, loc *time.Location) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(list))
	for _, b := range list {
		result = append(result, FromDomainBooking(b, loc))
	}
	return result
}

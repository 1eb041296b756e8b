package models

import (
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// DurationRequest запрос на создание/изменение длительности
type DurationRequest struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// DurationResponse длительность
type DurationResponse struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	Minutes   int       `json:"minutes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FacilityRequest запрос на создание/изменение объекта
type FacilityRequest struct {
	Label string `json:"label"`
}

// FacilityResponse объект для бронирования
type FacilityResponse struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainDuration конвертирует domain.Duration в response
func FromDomainDuration(d *domain.Duration) *DurationResponse {
	return &DurationResponse{
		ID:        d.ID,
		Label:     d.Label,
		Minutes:   d.Minutes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// FromDomainDurations конвертирует список длительностей
func FromDomainDurations(list []*domain.Duration) []*DurationResponse {
	result := make([]*DurationResponse, 0, len(list))
	for _, d := range list {
		result = append(result, FromDomainDuration(d))
	}
	return result
}

// FromDomainFacility конвертирует domain.Facility в response
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	return &FacilityResponse{
		ID:        f.ID,
		Label:     f.Label,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FromDomainFacilities конвертирует список объектов
func FromDomainFacilities(list []*domain.Facility) []*FacilityResponse {
	result := make([]*FacilityResponse, 0, len(list))
	for _, f := range list {
		result = append(result, FromDomainFacility(f))
	}
	return result
}

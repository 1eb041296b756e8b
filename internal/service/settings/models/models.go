package models

import "github.com/m04kA/SMC-ReceptionService/internal/domain"

// UpdateSettingsRequest запрос на изменение настроек
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	LocationURL       *string `json:"locationUrl,omitempty"`
	BuildingImage     *string `json:"buildingImage,omitempty"` // base64
	DailyBookingLimit *int    `json:"dailyBookingLimit,omitempty"`
}

// IsEmpty возвращает true, если в запросе нет ни одного поля
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.LocationURL == nil && r.BuildingImage == nil && r.DailyBookingLimit == nil
}

// SettingsResponse настройки ресепшена
type SettingsResponse struct {
	LocationURL       string `json:"locationUrl"`
	BuildingImage     string `json:"buildingImage"`
	DailyBookingLimit int    `json:"dailyBookingLimit"`
}

// FromDomainSettings конвертирует domain.Settings в response
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	return &SettingsResponse{
		LocationURL:       s.LocationURL,
		BuildingImage:     s.BuildingImage,
		DailyBookingLimit: s.DailyBookingLimit,
	}
}

package domain

// Settings keys in the key/value store
const (
	SettingLocationURL       = "location_url"
	SettingBuildingImage     = "building_image"
	SettingDailyBookingLimit = "daily_booking_limit"
)

// SettingsRecordID identifies the settings singleton in the change log
const SettingsRecordID int64 = 1

// Settings holds process-wide reception configuration.
type Settings struct {
	LocationURL       string
	BuildingImage     string // base64
	DailyBookingLimit int    // minutes per renter per day, 0 = unlimited
}

// HasDailyLimit returns true when a positive daily limit is configured.
func (s *Settings) HasDailyLimit() bool {
	return s != nil && s.DailyBookingLimit > 0
}

package domain

import "time"

// Duration is a named span of minutes used to compute a booking's end time.
type Duration struct {
	ID        int64
	Label     string
	Minutes   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Span returns the duration as time.Duration.
func (d *Duration) Span() time.Duration {
	return time.Duration(d.Minutes) * time.Minute
}

// Facility is a bookable physical resource (room, gym, pool).
type Facility struct {
	ID        int64
	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

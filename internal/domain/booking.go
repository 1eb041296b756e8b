package domain

import (
	"fmt"
	"time"
)

// Booking reserves a facility for a renter over a duration starting at StartAt.
type Booking struct {
	ID         int64
	FacilityID int64
	DurationID int64
	StartAt    time.Time // UTC
	OfficerID  int64
	RenterID   int64

	// Denormalized data for reads
	FacilityLabel   string
	DurationMinutes int
	RenterName      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End returns the exclusive end of the booking interval.
func (b *Booking) End() time.Time {
	return b.StartAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Overlaps reports whether [start, end) intersects the booking's own interval.
// Touching intervals (one ends exactly when the other starts) do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.End()) && end.After(b.StartAt)
}

// DisplayName renders "<facility> - <date time> (<renter>)" in loc.
func (b *Booking) DisplayName(loc *time.Location) string {
	if b.FacilityLabel == "" || b.StartAt.IsZero() || b.RenterName == "" {
		return DraftBookingName
	}
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%s - %s (%s)", b.FacilityLabel, b.StartAt.In(loc).Format(DateTimeFormat), b.RenterName)
}

// BookingsFilter selects bookings for listings and rule checks.
type BookingsFilter struct {
	FacilityID *int64
	RenterID   *int64
	RenterIDs  []int64    // restricts to these renters when non-nil
	From       *time.Time // inclusive, on StartAt
	To         *time.Time // exclusive, on StartAt
	ExcludeID  *int64
}

// DayWindow returns [midnight, next midnight) in loc of the calendar day containing t.
// The bounds are returned in UTC.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	y, m, d := local.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}

// BookedMinutes sums durations of bookings whose start falls in [from, to).
func BookedMinutes(bookings []*Booking, from, to time.Time) int {
	total := 0
	for _, b := range bookings {
		if b.StartAt.Before(from) || !b.StartAt.Before(to) {
			continue
		}
		total += b.DurationMinutes
	}
	return total
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is the tenant company a renter is bound to.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Officer is a staff user acting on behalf of a renter (or an administrator).
type Officer struct {
	ID        int64
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// Renter represents a tenant company with one designated officer.
type Renter struct {
	ID        int64
	CompanyID int64
	OfficerID int64

	// Denormalized data for reads
	CompanyName  string
	OfficerName  string
	OfficerEmail string

	// Rollups, filled by the service on detailed reads
	GarageSlots     []GarageSlot
	Payments        []ScheduledPayment
	InvitationCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the company name or a draft placeholder.
func (r *Renter) DisplayName() string {
	if r == nil || r.CompanyName == "" {
		return DraftRenterName
	}
	return r.CompanyName
}

// GarageSlot is a parking slot owned by exactly one renter.
type GarageSlot struct {
	ID          int64
	RenterID    int64
	Number      string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScheduledPayment is a payment obligation of a renter.
type ScheduledPayment struct {
	ID          int64
	RenterID    int64
	Description string
	Amount      decimal.Decimal
	Currency    string
	DueDate     time.Time // date only, midnight UTC
	Notified    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsDue returns true when the payment is due on or before today and not yet notified.
func (p *ScheduledPayment) IsDue(today time.Time) bool {
	if p.Notified {
		return false
	}
	return !DateOnly(p.DueDate).After(DateOnly(today))
}

// DuePayment is a scheduled payment together with the contact that must be notified.
type DuePayment struct {
	Payment      ScheduledPayment
	RenterName   string
	OfficerName  string
	OfficerEmail string
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

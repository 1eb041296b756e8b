package domain

// Models, used for access checks and the change log
const (
	ModelDuration   = "duration"
	ModelFacility   = "facility"
	ModelRenter     = "renter"
	ModelGarageSlot = "garage_slot"
	ModelPayment    = "scheduled_payment"
	ModelBooking    = "booking"
	ModelInvitation = "invitation"
	ModelSettings   = "settings"
	ModelChangeLog  = "change_log"
)

// Display placeholders
const (
	DraftRenterName     = "Draft Renter"
	DraftBookingName    = "Draft Booking"
	DraftInvitationName = "Draft Invitation"
	UnknownRenterName   = "Unknown"
)

// Time format constants
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

// Business validation constants
const (
	MaxLabelLength       = 128
	MaxDescriptionLength = 256
	MaxDurationMinutes   = 1440
	DefaultCurrency      = "EUR"
)

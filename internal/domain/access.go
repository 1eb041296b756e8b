package domain

import "time"

// Role of an officer
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTenant Role = "tenant"
)

// IsValidRole reports whether r is a known role.
func IsValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleTenant
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	OfficerID int64
	Role      Role
	Location  *time.Location // viewer time zone, nil = UTC
}

// IsAdmin returns true for administrators.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Loc returns the viewer time zone.
func (a Actor) Loc() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

// Action an actor may attempt on a record
type Action string

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionConfirm Action = "confirm"
	ActionAttend  Action = "attend"
	ActionCancel  Action = "cancel"
	ActionRun     Action = "run"
)

// AllActions in display order
var AllActions = []Action{
	ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionConfirm, ActionAttend, ActionCancel,
}

// Record identifies the target of an access check.
// OwnerOfficerID is the officer of the renter the record belongs to (0 if none).
type Record struct {
	Model          string
	OwnerOfficerID int64
}

// Can decides whether actor may perform action on rec.
// Administrators may do everything. Tenants read the catalogs, read their own
// renter data and manage their own bookings and invitations; attendance is
// recorded by the reception desk only.
func Can(actor Actor, action Action, rec Record) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.Role != RoleTenant || actor.OfficerID <= 0 {
		return false
	}

	owner := rec.OwnerOfficerID != 0 && rec.OwnerOfficerID == actor.OfficerID

	switch rec.Model {
	case ModelDuration, ModelFacility, ModelSettings:
		return action == ActionRead
	case ModelRenter, ModelGarageSlot, ModelPayment:
		return action == ActionRead && owner
	case ModelBooking:
		switch action {
		case ActionRead, ActionCreate, ActionUpdate, ActionDelete:
			return owner
		}
	case ModelInvitation:
		switch action {
		case ActionRead, ActionCreate, ActionUpdate, ActionConfirm, ActionCancel:
			return owner
		}
	}
	return false
}

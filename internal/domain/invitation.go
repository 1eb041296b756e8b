package domain

import (
	"fmt"
	"regexp"
	"time"
)

// InvitationState represents the lifecycle state of an invitation
type InvitationState string

const (
	InvitationDraft     InvitationState = "draft"
	InvitationScheduled InvitationState = "scheduled"
	InvitationAttended  InvitationState = "attended"
	InvitationOverdue   InvitationState = "overdue"
	InvitationCancelled InvitationState = "cancelled"
)

// invitationTransitions lists the forward moves of the workflow.
// Overdue is reached only by the background sweep.
// Attended and cancelled are reachable from any other state, see CanTransitionTo.
var invitationTransitions = map[InvitationState][]InvitationState{
	InvitationDraft:     {InvitationScheduled},
	InvitationScheduled: {InvitationOverdue},
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Guest is the visitor an invitation is issued for.
type Guest struct {
	Name  string
	Email string
	Phone string
}

// IsValidEmail reports whether email is well formed.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// HasValidEmail reports whether the guest email is well formed.
func (g Guest) HasValidEmail() bool {
	return IsValidEmail(g.Email)
}

// Invitation is a guest visit arranged by a renter's officer.
type Invitation struct {
	ID           int64
	Sequence     string
	OfficerID    int64
	RenterID     int64
	Subject      string
	Guest        Guest
	InvitationAt time.Time // UTC
	State        InvitationState

	// Denormalized data for reads
	RenterName   string
	OfficerName  string
	OfficerEmail string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidInvitationState reports whether s is a known state.
func IsValidInvitationState(s InvitationState) bool {
	switch s {
	case InvitationDraft, InvitationScheduled, InvitationAttended, InvitationOverdue, InvitationCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for attended, overdue and cancelled.
// Terminal invitations are historical records: they can still be edited and re-marked.
func (s InvitationState) IsTerminal() bool {
	switch s {
	case InvitationAttended, InvitationOverdue, InvitationCancelled:
		return true
	}
	return false
}

// RequiresFutureDate returns true for states whose invitation_at must lie in the future.
// Drafts may keep a past datetime until they are confirmed.
func (s InvitationState) RequiresFutureDate() bool {
	return s == InvitationScheduled
}

// CanTransitionTo reports whether the workflow allows moving to next.
// Marking attended or cancelled works from any state except the same one.
func (s InvitationState) CanTransitionTo(next InvitationState) bool {
	if s == next {
		return false
	}
	if next == InvitationAttended || next == InvitationCancelled {
		return IsValidInvitationState(s)
	}
	for _, allowed := range invitationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DisplayName renders "<sequence> - <guest> (<renter>)".
func (i *Invitation) DisplayName() string {
	if i.Sequence == "" {
		return DraftInvitationName
	}
	renter := i.RenterName
	if renter == "" {
		renter = UnknownRenterName
	}
	return fmt.Sprintf("%s - %s (%s)", i.Sequence, i.Guest.Name, renter)
}

// InvitationsFilter selects invitations for listings.
type InvitationsFilter struct {
	RenterID  *int64
	RenterIDs []int64 // restricts to these renters when non-nil
	State     *InvitationState
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvitationState_Transitions(t *testing.T) {
	tests := []struct {
		from, to InvitationState
		want     bool
	}{
		{InvitationDraft, InvitationScheduled, true},
		{InvitationDraft, InvitationAttended, true},
		{InvitationDraft, InvitationCancelled, true},
		{InvitationDraft, InvitationOverdue, false},
		{InvitationScheduled, InvitationAttended, true},
		{InvitationScheduled, InvitationCancelled, true},
		{InvitationScheduled, InvitationOverdue, true},
		{InvitationScheduled, InvitationDraft, false},
		{InvitationOverdue, InvitationAttended, true},
		{InvitationOverdue, InvitationCancelled, true},
		{InvitationOverdue, InvitationScheduled, false},
		{InvitationAttended, InvitationCancelled, true},
		{InvitationCancelled, InvitationAttended, true},
		{InvitationCancelled, InvitationScheduled, false},
		{InvitationAttended, InvitationAttended, false},
		{InvitationCancelled, InvitationCancelled, false},
		{InvitationAttended, InvitationOverdue, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestInvitationState_Flags(t *testing.T) {
	assert.False(t, InvitationDraft.IsTerminal())
	assert.False(t, InvitationScheduled.IsTerminal())
	assert.True(t, InvitationAttended.IsTerminal())
	assert.True(t, InvitationOverdue.IsTerminal())
	assert.True(t, InvitationCancelled.IsTerminal())

	assert.True(t, InvitationScheduled.RequiresFutureDate())
	assert.False(t, InvitationDraft.RequiresFutureDate())
	assert.False(t, InvitationAttended.RequiresFutureDate())

	assert.False(t, IsValidInvitationState("archived"))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"jane@example.com", "j.doe+visit@mail.example.org", "A_B@x-y.io"}
	invalid := []string{"", "jane", "jane@", "@example.com", "jane@example", "jane doe@example.com", "jane@example.c"}

	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestInvitation_DisplayName(t *testing.T) {
	inv := &Invitation{Sequence: "INV/00007", Guest: Guest{Name: "Jane"}, RenterName: "Acme"}
	assert.Equal(t, "INV/00007 - Jane (Acme)", inv.DisplayName())

	inv.RenterName = ""
	assert.Equal(t, "INV/00007 - Jane (Unknown)", inv.DisplayName())

	assert.Equal(t, DraftInvitationName, (&Invitation{}).DisplayName())
}

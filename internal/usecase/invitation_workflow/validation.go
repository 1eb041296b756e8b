package invitation_workflow

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

func validateCreateRequest(req *CreateRequest) error {
	if req.InvitationAt.IsZero() {
		return fmt.Errorf("%w: invitationAt is required", ErrInvalidInput)
	}
	if req.OfficerID != nil && *req.OfficerID <= 0 {
		return fmt.Errorf("%w: officerId must be positive", ErrInvalidInput)
	}
	if req.RenterID != nil && *req.RenterID <= 0 {
		return fmt.Errorf("%w: renterId must be positive", ErrInvalidInput)
	}
	if req.State != nil && *req.State != domain.InvitationDraft && *req.State != domain.InvitationScheduled {
		return fmt.Errorf("%w: new invitation must be draft or scheduled", ErrInvalidInput)
	}
	return nil
}

func validateUpdateRequest(req *UpdateRequest) error {
	if req.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.InvitationAt != nil && req.InvitationAt.IsZero() {
		return fmt.Errorf("%w: invitationAt must be set", ErrInvalidInput)
	}
	if req.OfficerID != nil && *req.OfficerID <= 0 {
		return fmt.Errorf("%w: officerId must be positive", ErrInvalidInput)
	}
	return nil
}

// validateInvitation проверяет запись перед сохранением
func validateInvitation(inv *domain.Invitation, now time.Time) error {
	inv.Subject = strings.TrimSpace(inv.Subject)
	inv.Guest.Name = strings.TrimSpace(inv.Guest.Name)
	inv.Guest.Email = strings.TrimSpace(inv.Guest.Email)
	inv.Guest.Phone = strings.TrimSpace(inv.Guest.Phone)

	if inv.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(inv.Subject) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: subject must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if inv.Guest.Name == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	if !inv.Guest.HasValidEmail() {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, inv.Guest.Email)
	}

	if inv.State.RequiresFutureDate() && !inv.InvitationAt.After(now) {
		return fmt.Errorf("%w: %s is not after %s", ErrNotInFuture,
			inv.InvitationAt.UTC().Format(domain.DateTimeFormat), now.UTC().Format(domain.DateTimeFormat))
	}

	return nil
}

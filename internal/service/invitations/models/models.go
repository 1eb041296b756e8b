package models

import (
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// GuestModel данные гостя
type GuestModel struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// InvitationResponse приглашение гостя
type InvitationResponse struct {
	ID           int64      `json:"id"`
	Sequence     string     `json:"sequence"`
	Name         string     `json:"name"`
	OfficerID    int64      `json:"officerId"`
	OfficerName  string     `json:"officerName"`
	RenterID     int64      `json:"renterId"`
	RenterName   string     `json:"renterName"`
	Subject      string     `json:"subject"`
	Guest        GuestModel `json:"guest"`
	InvitationAt time.Time  `json:"invitationAt"`
	State        string     `json:"state"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FromDomainInvitation конвертирует domain.Invitation в response
func FromDomainInvitation(inv *domain.Invitation) *InvitationResponse {
	return &InvitationResponse{
		ID:          inv.ID,
		Sequence:    inv.Sequence,
		Name:        inv.DisplayName(),
		OfficerID:   inv.OfficerID,
		OfficerName: inv.OfficerName,
		RenterID:    inv.RenterID,
		RenterName:  inv.RenterName,
		Subject:     inv.Subject,
		Guest: GuestModel{
			Name:  inv.Guest.Name,
			Email: inv.Guest.Email,
			Phone: inv.Guest.Phone,
		},
		InvitationAt: inv.InvitationAt,
		State:        string(inv.State),
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
}

// FromDomainInvitations конвертирует список приглашений
func FromDomainInvitations(list []*domain.Invitation) []*InvitationResponse {
	result := make([]*InvitationResponse, 0, len(list))
	for _, inv := range list {
		result = append(result, FromDomainInvitation(inv))
	}
	return result
}

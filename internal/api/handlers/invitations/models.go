package invitations

import (
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/invitations/models"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/invitation_workflow"
)

// CreateInvitationRequest HTTP модель создания приглашения
// InvitationAt в RFC3339 или "YYYY-MM-DD HH:MM" в часовом поясе пользователя
type CreateInvitationRequest struct {
	Subject      string            `json:"subject"`
	Guest        models.GuestModel `json:"guest"`
	InvitationAt string            `json:"invitationAt"`
	OfficerID    *int64            `json:"officerId,omitempty"`
	RenterID     *int64            `json:"renterId,omitempty"`
	State        *string           `json:"state,omitempty"`
}

// UpdateInvitationRequest HTTP модель изменения приглашения
// Номер приглашения не принимается: неизвестные поля отклоняются при разборе
type UpdateInvitationRequest struct {
	Subject      *string `json:"subject,omitempty"`
	GuestName    *string `json:"guestName,omitempty"`
	GuestEmail   *string `json:"guestEmail,omitempty"`
	GuestPhone   *string `json:"guestPhone,omitempty"`
	InvitationAt *string `json:"invitationAt,omitempty"`
	OfficerID    *int64  `json:"officerId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateInvitationRequest) ToUseCaseRequest(loc *time.Location) (*invitation_workflow.CreateRequest, error) {
	at, err := handlers.ParseDateTime(r.InvitationAt, loc)
	if err != nil {
		return nil, err
	}

	req := &invitation_workflow.CreateRequest{
		Subject: r.Subject,
		Guest: invitation_workflow.GuestInput{
			Name:  r.Guest.Name,
			Email: r.Guest.Email,
			Phone: r.Guest.Phone,
		},
		InvitationAt: at,
		OfficerID:    r.OfficerID,
		RenterID:     r.RenterID,
	}
	if r.State != nil {
		state := domain.InvitationState(*r.State)
		req.State = &state
	}
	return req, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateInvitationRequest) ToUseCaseRequest(loc *time.Location) (*invitation_workflow.UpdateRequest, error) {
	req := &invitation_workflow.UpdateRequest{
		Subject:    r.Subject,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		OfficerID:  r.OfficerID,
	}
	if r.InvitationAt != nil {
		at, err := handlers.ParseDateTime(*r.InvitationAt, loc)
		if err != nil {
			return nil, err
		}
		req.InvitationAt = &at
	}
	return req, nil
}

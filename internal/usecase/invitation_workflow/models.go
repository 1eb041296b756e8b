package invitation_workflow

import (
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// GuestInput данные гостя
type GuestInput struct {
	Name  string
	Email string
	Phone string
}

// CreateRequest модель запроса на создание приглашения
type CreateRequest struct {
	Subject      string
	Guest        GuestInput
	InvitationAt time.Time
	OfficerID    *int64                  // по умолчанию текущий сотрудник
	RenterID     *int64                  // явно указывает только администратор
	State        *domain.InvitationState // draft (по умолчанию) или scheduled
}

// UpdateRequest модель запроса на изменение приглашения
// Номер приглашения не меняется никогда, поэтому поля для него нет
type UpdateRequest struct {
	Subject      *string
	GuestName    *string
	GuestEmail   *string
	GuestPhone   *string
	InvitationAt *time.Time
	OfficerID    *int64
}

// IsEmpty проверяет, что запрос ничего не меняет
func (r *UpdateRequest) IsEmpty() bool {
	return r.Subject == nil && r.GuestName == nil && r.GuestEmail == nil &&
		r.GuestPhone == nil && r.InvitationAt == nil && r.OfficerID == nil
}

package mailer

import "time"

// Имена шаблонов уведомлений
const (
	TemplateNewInvitation  = "new_invitation"
	TemplateDatetimeChange = "datetime_change"
	TemplateAttendance     = "attendance"
	TemplatePaymentDue     = "payment_due"
)

// Message готовое к отправке письмо
type Message struct {
	ID          string // Message-ID без угловых скобок
	Template    string
	RecordID    int64
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Attachment вложение письма
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// InvitationMail данные шаблонов приглашения
type InvitationMail struct {
	Sequence     string
	Subject      string
	GuestName    string
	RenterName   string
	OfficerName  string
	InvitationAt time.Time
	TimeZone     string
	LocationURL  string
}

// When форматирует время приглашения для письма
func (m InvitationMail) When() string {
	return m.InvitationAt.Format("02.01.2006 15:04")
}

// PaymentMail данные шаблона напоминания о платеже
type PaymentMail struct {
	RenterName  string
	OfficerName string
	Description string
	Amount      string
	Currency    string
	DueDate     time.Time
}

// Due форматирует дату платежа для письма
func (m PaymentMail) Due() string {
	return m.DueDate.Format("02.01.2006")
}

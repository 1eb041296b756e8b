package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// Request модели

// CompanyRequest запрос на создание компании
type CompanyRequest struct {
	Name string `json:"name"`
}

// OfficerRequest запрос на создание сотрудника
type OfficerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RenterRequest запрос на создание/изменение арендатора
type RenterRequest struct {
	CompanyID int64 `json:"companyId"`
	OfficerID int64 `json:"officerId"`
}

// GarageSlotRequest запрос на создание/изменение места в гараже
type GarageSlotRequest struct {
	Number      string `json:"number"`
	Description string `json:"description"`
}

// PaymentRequest запрос на создание/изменение платежа
// DueDate в формате YYYY-MM-DD; Currency по умолчанию из конфигурации
type PaymentRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	DueDate     string          `json:"dueDate"`
}

// Response модели

// CompanyResponse компания
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// OfficerResponse сотрудник
type OfficerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// GarageSlotResponse место в гараже
type GarageSlotResponse struct {
	ID          int64     `json:"id"`
	RenterID    int64     `json:"renterId"`
	Number      string    `json:"number"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PaymentResponse запланированный платеж
type PaymentResponse struct {
	ID          int64           `json:"id"`
	RenterID    int64           `json:"renterId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	DueDate     string          `json:"dueDate"`
	Notified    bool            `json:"notified"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// RenterResponse арендатор; места, платежи и счетчик приглашений заполняются только в детальном ответе
type RenterResponse struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	CompanyID       int64                `json:"companyId"`
	CompanyName     string               `json:"companyName"`
	OfficerID       int64                `json:"officerId"`
	OfficerName     string               `json:"officerName"`
	OfficerEmail    string               `json:"officerEmail"`
	GarageSlots     []GarageSlotResponse `json:"garageSlots,omitempty"`
	Payments        []PaymentResponse    `json:"payments,omitempty"`
	InvitationCount int                  `json:"invitationCount"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// FromDomainCompany конвертирует domain.Company в response
func FromDomainCompany(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

// FromDomainOfficer конвертирует domain.Officer в response
func FromDomainOfficer(o *domain.Officer) *OfficerResponse {
	return &OfficerResponse{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Role:      string(o.Role),
		CreatedAt: o.CreatedAt,
	}
}

// FromDomainGarageSlot конвертирует domain.GarageSlot в response
func FromDomainGarageSlot(s *domain.GarageSlot) *GarageSlotResponse {
	return &GarageSlotResponse{
		ID:          s.ID,
		RenterID:    s.RenterID,
		Number:      s.Number,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainPayment конвертирует domain.ScheduledPayment в response
func FromDomainPayment(p *domain.ScheduledPayment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		RenterID:    p.RenterID,
		Description: p.Description,
		Amount:      p.Amount,
		Currency:    p.Currency,
		DueDate:     p.DueDate.Format(domain.DateFormat),
		Notified:    p.Notified,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromDomainRenter конвертирует domain.Renter в response вместе с роллапами
func FromDomainRenter(r *domain.Renter) *RenterResponse {
	resp := &RenterResponse{
		ID:              r.ID,
		Name:            r.DisplayName(),
		CompanyID:       r.CompanyID,
		CompanyName:     r.CompanyName,
		OfficerID:       r.OfficerID,
		OfficerName:     r.OfficerName,
		OfficerEmail:    r.OfficerEmail,
		InvitationCount: r.InvitationCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for i := range r.GarageSlots {
		resp.GarageSlots = append(resp.GarageSlots, *FromDomainGarageSlot(&r.GarageSlots[i]))
	}
	for i := range r.Payments {
		resp.Payments = append(resp.Payments, *FromDomainPayment(&r.Payments[i]))
	}
	return resp
}

// FromDomainRenters конвертирует список арендаторов
func FromDomainRenters(list []*domain.Renter) []*RenterResponse {
	result := make([]*RenterResponse, 0, len(list))
	for _, r := range list {
		result = append(result, FromDomainRenter(r))
	}
	return result
}

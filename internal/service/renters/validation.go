package renters

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

func validateName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > domain.MaxLabelLength {
		return "", fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, domain.MaxLabelLength)
	}
	return value, nil
}

func validateDescription(value string) (string, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > domain.MaxDescriptionLength {
		return "", fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	return value, nil
}

func validateCompany(req *models.CompanyRequest) (*domain.Company, error) {
	name, err := validateName("name", req.Name)
	if err != nil {
		return nil, err
	}
	return &domain.Company{Name: name}, nil
}

func validateOfficer(req *models.OfficerRequest) (*domain.Officer, error) {
	name, err := validateName("name", req.Name)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !domain.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, req.Email)
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleTenant
	}
	if !domain.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	return &domain.Officer{Name: name, Email: email, Role: role}, nil
}

func validateRenter(req *models.RenterRequest) (*domain.Renter, error) {
	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyId is required", ErrInvalidInput)
	}
	if req.OfficerID <= 0 {
		return nil, fmt.Errorf("%w: officerId is required", ErrInvalidInput)
	}
	return &domain.Renter{CompanyID: req.CompanyID, OfficerID: req.OfficerID}, nil
}

func validateGarageSlot(req *models.GarageSlotRequest) (*domain.GarageSlot, error) {
	number, err := validateName("number", req.Number)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(req.Description)
	if err != nil {
		return nil, err
	}
	return &domain.GarageSlot{Number: number, Description: description}, nil
}

func validatePayment(req *models.PaymentRequest, defaultCurrency string) (*domain.ScheduledPayment, error) {
	description, err := validateName("description", req.Description)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidInput)
	}

	dueDate, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.DueDate))
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate must be in format %s", ErrInvalidInput, domain.DateFormat)
	}

	return &domain.ScheduledPayment{
		Description: description,
		Amount:      req.Amount,
		Currency:    currency,
		DueDate:     dueDate,
	}, nil
}

package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/catalog/models"
)

func validateLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("%w: label is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(label) > domain.MaxLabelLength {
		return "", fmt.Errorf("%w: label must be at most %d characters", ErrInvalidInput, domain.MaxLabelLength)
	}
	return label, nil
}

func validateDuration(req *models.DurationRequest) (*domain.Duration, error) {
	label, err := validateLabel(req.Label)
	if err != nil {
		return nil, err
	}
	if req.Minutes <= 0 {
		return nil, fmt.Errorf("%w: minutes must be positive", ErrInvalidInput)
	}
	if req.Minutes > domain.MaxDurationMinutes {
		return nil, fmt.Errorf("%w: minutes must be at most %d", ErrInvalidInput, domain.MaxDurationMinutes)
	}
	return &domain.Duration{Label: label, Minutes: req.Minutes}, nil
}

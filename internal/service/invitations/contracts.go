package invitations

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// InvitationRepository интерфейс репозитория приглашений
type InvitationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Invitation, error)
	List(ctx context.Context, filter domain.InvitationsFilter) ([]*domain.Invitation, error)
}

// RenterRepository интерфейс репозитория арендаторов (для проверки владельца)
type RenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Renter, error)
	List(ctx context.Context, officerID *int64) ([]*domain.Renter, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package invitation_workflow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/integrations/mailer"
)

// InvitationRepository интерфейс репозитория приглашений
type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error)
	GetByID(ctx context.Context, id int64) (*domain.Invitation, error)
	Update(ctx context.Context, inv *domain.Invitation) error
}

// RenterRepository интерфейс репозитория арендаторов
type RenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Renter, error)
	GetFirstByOfficerID(ctx context.Context, officerID int64) (*domain.Renter, error)
}

// SequenceGenerator источник номеров приглашений
type SequenceGenerator interface {
	NextVal(ctx context.Context, name string) (int64, error)
}

// SettingsProvider источник текущих настроек ресепшена
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.Settings, error)
}

// Notifier отправляет шаблонные письма
type Notifier interface {
	Send(ctx context.Context, name string, recordID int64, to string, data interface{}, attachments ...mailer.Attachment) error
}

// ChangeRecorder пишет журнал изменений
type ChangeRecorder interface {
	Record(ctx context.Context, actor domain.Actor, model string, recordID int64, action domain.ChangeAction, changes map[string]interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package changelog

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/changelog/models"
)

type ChangelogService interface {
	ListByRecord(ctx context.Context, actor domain.Actor, model string, recordID int64) ([]models.EntryResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

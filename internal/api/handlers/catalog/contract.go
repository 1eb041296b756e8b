package catalog

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/catalog/models"
)

type CatalogService interface {
	ListDurations(ctx context.Context, actor domain.Actor) ([]*models.DurationResponse, error)
	CreateDuration(ctx context.Context, actor domain.Actor, req *models.DurationRequest) (*models.DurationResponse, error)
	UpdateDuration(ctx context.Context, actor domain.Actor, id int64, req *models.DurationRequest) (*models.DurationResponse, error)
	DeleteDuration(ctx context.Context, actor domain.Actor, id int64) error
	ListFacilities(ctx context.Context, actor domain.Actor) ([]*models.FacilityResponse, error)
	CreateFacility(ctx context.Context, actor domain.Actor, req *models.FacilityRequest) (*models.FacilityResponse, error)
	UpdateFacility(ctx context.Context, actor domain.Actor, id int64, req *models.FacilityRequest) (*models.FacilityResponse, error)
	DeleteFacility(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

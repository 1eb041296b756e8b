package capabilities

import (
	"context"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

type AccessService interface {
	Capabilities(ctx context.Context, actor domain.Actor, model string, id int64) (map[domain.Action]bool, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}

package sequence

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReceptionService/pkg/dbmetrics"
)

// Repository источник монотонно растущих номеров на основе последовательностей PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр источника номеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// NextVal возвращает следующее значение последовательности name
func (r *Repository) NextVal(ctx context.Context, name string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var value int64
	if err := executor.QueryRowContext(ctx, "SELECT nextval($1::regclass)", name).Scan(&value); err != nil {
		return 0, fmt.Errorf("%w: NextVal - %s: %v", ErrNextValue, name, err)
	}

	return value, nil
}

package duration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReceptionService/pkg/pgerr"
	"github.com/m04kA/SMC-ReceptionService/pkg/psqlbuilder"
)

const table = "durations"

var columns = []string{"id", "label", "minutes", "created_at", "updated_at"}

// Repository репозиторий длительностей бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория длительностей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает длительность
func (r *Repository) Create(ctx context.Context, d *domain.Duration) (*domain.Duration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("label", "minutes").
		Values(d.Label, d.Minutes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return d, nil
}

// GetByID получает длительность по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Duration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.Duration
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Label, &d.Minutes, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDurationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan duration: %v", ErrScanRow, err)
	}

	return &d, nil
}

// MaxMinutes возвращает наибольшую длительность в минутах, 0 если справочник пуст
func (r *Repository) MaxMinutes(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(minutes), 0)").
		From(table).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MaxMinutes - build select query: %v", ErrBuildQuery, err)
	}

	var minutes int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("%w: MaxMinutes - scan: %v", ErrScanRow, err)
	}

	return minutes, nil
}

// List возвращает все длительности, упорядоченные по количеству минут
func (r *Repository) List(ctx context.Context) ([]*domain.Duration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("minutes ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	durations := make([]*domain.Duration, 0)
	for rows.Next() {
		var d domain.Duration
		if err := rows.Scan(&d.ID, &d.Label, &d.Minutes, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		durations = append(durations, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return durations, nil
}

// Update обновляет название и количество минут
func (r *Repository) Update(ctx context.Context, d *domain.Duration) (*domain.Duration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("label", d.Label).
		Set("minutes", d.Minutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": d.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDurationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return d, nil
}

// Delete удаляет длительность
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrDurationInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDurationNotFound
	}

	return nil
}

package changelog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReceptionService/pkg/psqlbuilder"
)

const table = "change_log"

// Repository журнал изменений записей (только добавление)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр журнала изменений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал
// Вызывается в той же транзакции, что и само изменение
func (r *Repository) Append(ctx context.Context, entry *domain.ChangeLogEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	changes := entry.Changes
	if changes == nil {
		changes = map[string]interface{}{}
	}
	payload, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("%w: Append - marshal changes: %v", ErrEncodeChanges, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("model", "record_id", "action", "actor_id", "changes").
		Values(entry.Model, entry.RecordID, string(entry.Action), entry.ActorID, string(payload)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByRecord возвращает историю записи, старые изменения первыми
func (r *Repository) ListByRecord(ctx context.Context, model string, recordID int64) ([]*domain.ChangeLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "model", "record_id", "action", "actor_id", "changes", "created_at").
		From(table).
		Where(squirrel.Eq{"model": model, "record_id": recordID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRecord - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRecord - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.ChangeLogEntry, 0)
	for rows.Next() {
		var e domain.ChangeLogEntry
		var action string
		var payload []byte
		if err := rows.Scan(&e.ID, &e.Model, &e.RecordID, &action, &e.ActorID, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByRecord - scan row: %v", ErrScanRow, err)
		}
		e.Action = domain.ChangeAction(action)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Changes); err != nil {
				return nil, fmt.Errorf("%w: ListByRecord - unmarshal changes: %v", ErrScanRow, err)
			}
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRecord - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

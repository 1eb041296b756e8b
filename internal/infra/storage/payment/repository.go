package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReceptionService/pkg/pgerr"
	"github.com/m04kA/SMC-ReceptionService/pkg/psqlbuilder"
)

const table = "scheduled_payments"

var columns = []string{
	"id",
	"renter_id",
	"description",
	"amount",
	"currency",
	"due_date",
	"notified",
	"created_at",
	"updated_at",
}

// Repository репозиторий запланированных платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func scanPayment(row interface{ Scan(dest ...interface{}) error }, extra ...interface{}) (*domain.ScheduledPayment, error) {
	var p domain.ScheduledPayment
	dest := []interface{}{
		&p.ID,
		&p.RenterID,
		&p.Description,
		&p.Amount,
		&p.Currency,
		&p.DueDate,
		&p.Notified,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	p.DueDate = domain.DateOnly(p.DueDate)
	return &p, nil
}

// Create создает платеж
func (r *Repository) Create(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("renter_id", "description", "amount", "currency", "due_date", "notified").
		Values(p.RenterID, p.Description, p.Amount, p.Currency, domain.DateOnly(p.DueDate), p.Notified).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrRenterNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduledPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	return p, nil
}

// ListByRenter возвращает платежи арендатора по дате
func (r *Repository) ListByRenter(ctx context.Context, renterID int64) ([]*domain.ScheduledPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"renter_id": renterID}).
		OrderBy("due_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRenter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRenter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.ScheduledPayment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRenter - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRenter - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// ListDue возвращает неоповещенные платежи со сроком не позже today
// вместе с контактом ответственного сотрудника
func (r *Repository) ListDue(ctx context.Context, today time.Time) ([]*domain.DuePayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.renter_id",
		"p.description",
		"p.amount",
		"p.currency",
		"p.due_date",
		"p.notified",
		"p.created_at",
		"p.updated_at",
		"c.name",
		"o.name",
		"o.email",
	).
		From(table + " p").
		Join("renters r ON r.id = p.renter_id").
		Join("companies c ON c.id = r.company_id").
		Join("officers o ON o.id = r.officer_id").
		Where(squirrel.Eq{"p.notified": false}).
		Where(squirrel.LtOrEq{"p.due_date": domain.DateOnly(today)}).
		OrderBy("p.due_date ASC", "p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	due := make([]*domain.DuePayment, 0)
	for rows.Next() {
		var d domain.DuePayment
		p, err := scanPayment(rows, &d.RenterName, &d.OfficerName, &d.OfficerEmail)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDue - scan row: %v", ErrScanRow, err)
		}
		d.Payment = *p
		due = append(due, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDue - rows error: %v", ErrScanRow, err)
	}

	return due, nil
}

// MarkNotified помечает платеж оповещенным
// Возвращает false, если платеж уже был помечен другим процессом
func (r *Repository) MarkNotified(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("notified", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "notified": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkNotified - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkNotified - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Update меняет платеж; смена суммы или даты сбрасывает флаг оповещения
func (r *Repository) Update(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("description", p.Description).
		Set("amount", p.Amount).
		Set("currency", p.Currency).
		Set("due_date", domain.DateOnly(p.DueDate)).
		Set("notified", p.Notified).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING renter_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.RenterID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return p, nil
}

// Delete удаляет платеж
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
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

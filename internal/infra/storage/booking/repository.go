package booking

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

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// selectBookings базовый запрос: бронирование + название объекта, длительность и имя арендатора
func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"b.id",
		"b.facility_id",
		"b.duration_id",
		"b.start_at",
		"b.officer_id",
		"b.renter_id",
		"f.label",
		"d.minutes",
		"c.name",
		"b.created_at",
		"b.updated_at",
	).
		From("bookings b").
		Join("facilities f ON f.id = b.facility_id").
		Join("durations d ON d.id = b.duration_id").
		Join("renters r ON r.id = b.renter_id").
		Join("companies c ON c.id = r.company_id")
}

func scanBooking(row interface{ Scan(dest ...interface{}) error }) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.FacilityID,
		&b.DurationID,
		&b.StartAt,
		&b.OfficerID,
		&b.RenterID,
		&b.FacilityLabel,
		&b.DurationMinutes,
		&b.RenterName,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.StartAt = b.StartAt.UTC()
	return &b, nil
}

// Create создает новое бронирование
// Проверки пересечений и дневной квоты выполняет usecase в той же транзакции
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("facility_id", "duration_id", "start_at", "officer_id", "renter_id").
		Values(b.FacilityID, b.DurationID, b.StartAt.UTC(), b.OfficerID, b.RenterID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrReferenceNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// List получает бронирования по фильтру, сначала новые
// Внутри транзакции строки блокируются (FOR UPDATE OF b), чтобы параллельные
// бронирования того же объекта сериализовались
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectBookings().OrderBy("b.start_at DESC", "b.id DESC")

	if filter.FacilityID != nil {
		builder = builder.Where(squirrel.Eq{"b.facility_id": *filter.FacilityID})
	}
	if filter.RenterID != nil {
		builder = builder.Where(squirrel.Eq{"b.renter_id": *filter.RenterID})
	}
	if filter.RenterIDs != nil {
		builder = builder.Where(squirrel.Eq{"b.renter_id": filter.RenterIDs})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"b.start_at": filter.From.UTC()})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"b.start_at": filter.To.UTC()})
	}
	if filter.ExcludeID != nil {
		builder = builder.Where(squirrel.NotEq{"b.id": *filter.ExcludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Update переносит бронирование (объект, длительность, начало, сотрудник, арендатор)
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("facility_id", b.FacilityID).
		Set("duration_id", b.DurationID).
		Set("start_at", b.StartAt.UTC()).
		Set("officer_id", b.OfficerID).
		Set("renter_id", b.RenterID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

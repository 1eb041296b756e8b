package renter

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

// Repository репозиторий арендаторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория арендаторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// selectRenters базовый запрос с денормализацией имени компании и контактов сотрудника
func selectRenters() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"r.id",
		"r.company_id",
		"r.officer_id",
		"c.name",
		"o.name",
		"o.email",
		"r.created_at",
		"r.updated_at",
	).
		From("renters r").
		Join("companies c ON c.id = r.company_id").
		Join("officers o ON o.id = r.officer_id")
}

func scanRenter(row interface{ Scan(dest ...interface{}) error }) (*domain.Renter, error) {
	var rt domain.Renter
	err := row.Scan(
		&rt.ID,
		&rt.CompanyID,
		&rt.OfficerID,
		&rt.CompanyName,
		&rt.OfficerName,
		&rt.OfficerEmail,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// Create создает арендатора
// Уникальный индекс по company_id гарантирует одного арендатора на компанию
func (r *Repository) Create(ctx context.Context, rt *domain.Renter) (*domain.Renter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("renters").
		Columns("company_id", "officer_id").
		Values(rt.CompanyID, rt.OfficerID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		switch {
		case pgerr.IsUniqueViolation(err):
			return nil, ErrCompanyAlreadyClaimed
		case pgerr.IsForeignKeyViolation(err):
			return nil, ErrReferenceNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rt, nil
}

// GetByID получает арендатора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Renter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectRenters().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rt, err := scanRenter(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRenterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan renter: %v", ErrScanRow, err)
	}

	return rt, nil
}

// GetFirstByOfficerID возвращает первого (по ID) арендатора, у которого officerID назначен ответственным
func (r *Repository) GetFirstByOfficerID(ctx context.Context, officerID int64) (*domain.Renter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectRenters().
		Where(squirrel.Eq{"r.officer_id": officerID}).
		OrderBy("r.id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFirstByOfficerID - build select query: %v", ErrBuildQuery, err)
	}

	rt, err := scanRenter(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRenterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFirstByOfficerID - scan renter: %v", ErrScanRow, err)
	}

	return rt, nil
}

// ExistsByCompany проверяет, есть ли у компании арендатор (кроме excludeID, если он задан)
func (r *Repository) ExistsByCompany(ctx context.Context, companyID int64, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("1").
		From("renters").
		Where(squirrel.Eq{"company_id": companyID}).
		Limit(1)
	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByCompany - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByCompany - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// List возвращает арендаторов, упорядоченных по имени компании
// Если officerID задан, возвращает только арендаторов этого сотрудника
func (r *Repository) List(ctx context.Context, officerID *int64) ([]*domain.Renter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectRenters().OrderBy("c.name ASC", "r.id ASC")
	if officerID != nil {
		builder = builder.Where(squirrel.Eq{"r.officer_id": *officerID})
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

	renters := make([]*domain.Renter, 0)
	for rows.Next() {
		rt, err := scanRenter(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		renters = append(renters, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return renters, nil
}

// Update меняет компанию и ответственного сотрудника
func (r *Repository) Update(ctx context.Context, rt *domain.Renter) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("renters").
		Set("company_id", rt.CompanyID).
		Set("officer_id", rt.OfficerID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case pgerr.IsUniqueViolation(err):
			return ErrCompanyAlreadyClaimed
		case pgerr.IsForeignKeyViolation(err):
			return ErrReferenceNotFound
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRenterNotFound
	}

	return nil
}

// Delete удаляет арендатора; места в гараже и платежи удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("renters").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRenterNotFound
	}

	return nil
}

package directory

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

// Repository справочник компаний и сотрудников
// Записи заводятся администратором; сервис только ссылается на них
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр справочника
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateCompany создает компанию
func (r *Repository) CreateCompany(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("companies").
		Columns("name").
		Values(c.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCompany - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateCompany - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// GetCompany получает компанию по ID
func (r *Repository) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at").
		From("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompany - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Company
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompany - scan company: %v", ErrScanRow, err)
	}

	return &c, nil
}

// CreateOfficer создает сотрудника
func (r *Repository) CreateOfficer(ctx context.Context, o *domain.Officer) (*domain.Officer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("officers").
		Columns("name", "email", "role").
		Values(o.Name, o.Email, o.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOfficer - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.CreatedAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: CreateOfficer - execute insert: %v", ErrExecQuery, err)
	}

	return o, nil
}

// GetOfficer получает сотрудника по ID
func (r *Repository) GetOfficer(ctx context.Context, id int64) (*domain.Officer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "role", "created_at").
		From("officers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfficer - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.Officer
	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.Name, &o.Email, &o.Role, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfficerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfficer - scan officer: %v", ErrScanRow, err)
	}

	return &o, nil
}

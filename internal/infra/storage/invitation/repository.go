package invitation

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

const table = "invitations"

// Repository репозиторий приглашений гостей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приглашений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectInvitations() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"i.id",
		"i.sequence",
		"i.officer_id",
		"i.renter_id",
		"i.subject",
		"i.guest_name",
		"i.guest_email",
		"i.guest_phone",
		"i.invitation_at",
		"i.state",
		"c.name",
		"o.name",
		"o.email",
		"i.created_at",
		"i.updated_at",
	).
		From(table + " i").
		Join("renters r ON r.id = i.renter_id").
		Join("companies c ON c.id = r.company_id").
		Join("officers o ON o.id = i.officer_id")
}

func scanInvitation(row interface{ Scan(dest ...interface{}) error }) (*domain.Invitation, error) {
	var inv domain.Invitation
	var state string
	err := row.Scan(
		&inv.ID,
		&inv.Sequence,
		&inv.OfficerID,
		&inv.RenterID,
		&inv.Subject,
		&inv.Guest.Name,
		&inv.Guest.Email,
		&inv.Guest.Phone,
		&inv.InvitationAt,
		&state,
		&inv.RenterName,
		&inv.OfficerName,
		&inv.OfficerEmail,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.State = domain.InvitationState(state)
	inv.InvitationAt = inv.InvitationAt.UTC()
	return &inv, nil
}

func mapWriteError(err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		return ErrDuplicateSequence
	case pgerr.IsForeignKeyViolation(err):
		return ErrReferenceNotFound
	}
	return nil
}

// Create создает приглашение; номер (sequence) должен быть уже выдан
func (r *Repository) Create(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"sequence",
			"officer_id",
			"renter_id",
			"subject",
			"guest_name",
			"guest_email",
			"guest_phone",
			"invitation_at",
			"state",
		).
		Values(
			inv.Sequence,
			inv.OfficerID,
			inv.RenterID,
			inv.Subject,
			inv.Guest.Name,
			inv.Guest.Email,
			inv.Guest.Phone,
			inv.InvitationAt.UTC(),
			string(inv.State),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return inv, nil
}

// GetByID получает приглашение по ID
// Внутри транзакции строка блокируется до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Invitation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectInvitations().Where(squirrel.Eq{"i.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF i")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	inv, err := scanInvitation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan invitation: %v", ErrScanRow, err)
	}

	return inv, nil
}

// List возвращает приглашения по фильтру, новые номера первыми
func (r *Repository) List(ctx context.Context, filter domain.InvitationsFilter) ([]*domain.Invitation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectInvitations().OrderBy("i.sequence DESC")
	if filter.RenterID != nil {
		builder = builder.Where(squirrel.Eq{"i.renter_id": *filter.RenterID})
	}
	if filter.RenterIDs != nil {
		builder = builder.Where(squirrel.Eq{"i.renter_id": filter.RenterIDs})
	}
	if filter.State != nil {
		builder = builder.Where(squirrel.Eq{"i.state": string(*filter.State)})
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

	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return invitations, nil
}

// CountByRenter возвращает количество приглашений арендатора
func (r *Repository) CountByRenter(ctx context.Context, renterID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"renter_id": renterID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByRenter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByRenter - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update сохраняет изменяемые поля приглашения; sequence не меняется никогда
func (r *Repository) Update(ctx context.Context, inv *domain.Invitation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("officer_id", inv.OfficerID).
		Set("renter_id", inv.RenterID).
		Set("subject", inv.Subject).
		Set("guest_name", inv.Guest.Name).
		Set("guest_email", inv.Guest.Email).
		Set("guest_phone", inv.Guest.Phone).
		Set("invitation_at", inv.InvitationAt.UTC()).
		Set("state", string(inv.State)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": inv.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInvitationNotFound
	}

	return nil
}

// MarkOverdue переводит все запланированные приглашения с прошедшей датой в overdue
// Возвращает ID измененных приглашений; повторный вызов ничего не меняет
func (r *Repository) MarkOverdue(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("state", string(domain.InvitationOverdue)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"state": string(domain.InvitationScheduled)}).
		Where(squirrel.Lt{"invitation_at": now.UTC()}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: MarkOverdue - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: MarkOverdue - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: MarkOverdue - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: MarkOverdue - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

package invitation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestMarkOverdue(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE invitations SET state = \$1, updated_at = NOW\(\) WHERE state = \$2 AND invitation_at < \$3 RETURNING id`).
		WithArgs("overdue", "scheduled", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(8))

	ids, err := repo.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 8}, ids)

	mock.ExpectQuery(`UPDATE invitations`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err = repo.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateSequence(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO invitations`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Invitation{
		Sequence:     "INV/00001",
		InvitationAt: time.Now(),
		State:        domain.InvitationDraft,
	})
	assert.ErrorIs(t, err, ErrDuplicateSequence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_StateFilter(t *testing.T) {
	repo, mock := newRepo(t)
	state := domain.InvitationScheduled
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	columns := []string{
		"id", "sequence", "officer_id", "renter_id", "subject", "guest_name", "guest_email", "guest_phone",
		"invitation_at", "state", "company", "officer", "email", "created_at", "updated_at",
	}
	mock.ExpectQuery(`WHERE i\.state = \$1 ORDER BY i\.sequence DESC`).
		WithArgs("scheduled").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "INV/00001", 7, 10, "Review", "Jane", "jane@example.com", "", at, "scheduled", "Acme", "Bob", "bob@acme.example", at, at))

	list, err := repo.List(context.Background(), domain.InvitationsFilter{State: &state})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.InvitationScheduled, list[0].State)
	assert.Equal(t, "bob@acme.example", list[0].OfficerEmail)
	assert.Equal(t, "INV/00001 - Jane (Acme)", list[0].DisplayName())

	assert.NoError(t, mock.ExpectationsWereMet())
}

package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/pkg/dbmetrics"
)

var bookingColumns = []string{
	"id", "facility_id", "duration_id", "start_at", "officer_id", "renter_id",
	"label", "minutes", "name", "created_at", "updated_at",
}

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func TestGetByID(t *testing.T) {
	repo, _, mock := newRepo(t)
	moscow := time.FixedZone("MSK", 3*60*60)
	start := time.Date(2025, 6, 1, 13, 0, 0, 0, moscow)
	now := time.Now()

	mock.ExpectQuery(`FROM bookings b JOIN facilities f .+ WHERE b\.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(5, 1, 2, start, 7, 10, "Gym", 60, "Acme", now, now))

	b, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Gym", b.FacilityLabel)
	assert.Equal(t, 60, b.DurationMinutes)
	assert.Equal(t, time.UTC, b.StartAt.Location())
	assert.True(t, b.StartAt.Equal(start))

	mock.ExpectQuery(`FROM bookings b`).
		WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err = repo.GetByID(context.Background(), 6)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_LocksRowsInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	facilityID := int64(1)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	exclude := int64(9)

	filter := domain.BookingsFilter{FacilityID: &facilityID, From: &from, To: &to, ExcludeID: &exclude}

	mock.ExpectQuery(`WHERE b\.facility_id = \$1 AND b\.start_at >= \$2 AND b\.start_at < \$3 AND b\.id <> \$4 ORDER BY b\.start_at DESC, b\.id DESC$`).
		WithArgs(facilityID, from, to, exclude).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	list, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, list)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF b")).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(1, 1, 2, from, 7, 10, "Gym", 60, "Acme", from, from))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	list, err = repo.List(dbmetrics.WithTx(context.Background(), tx), filter)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_RenterScope(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`WHERE b\.renter_id IN \(\$1,\$2\)`).
		WithArgs(int64(10), int64(11)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.List(context.Background(), domain.BookingsFilter{RenterIDs: []int64{10, 11}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, _, mock := newRepo(t)
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO bookings \(facility_id,duration_id,start_at,officer_id,renter_id\) VALUES \(\$1,\$2,\$3,\$4,\$5\) RETURNING id, created_at, updated_at`).
		WithArgs(int64(1), int64(2), start, int64(7), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	b, err := repo.Create(context.Background(), &domain.Booking{FacilityID: 1, DurationID: 2, StartAt: start, OfficerID: 7, RenterID: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(42), b.ID)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err = repo.Create(context.Background(), &domain.Booking{FacilityID: 404, DurationID: 2, StartAt: start, OfficerID: 7, RenterID: 10})
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET facility_id = \$1, duration_id = \$2, start_at = \$3, officer_id = \$4, renter_id = \$5, updated_at = NOW\(\) WHERE id = \$6`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(context.Background(), &domain.Booking{ID: 5, FacilityID: 1, DurationID: 2, OfficerID: 7, RenterID: 10})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 5))

	assert.NoError(t, mock.ExpectationsWereMet())
}

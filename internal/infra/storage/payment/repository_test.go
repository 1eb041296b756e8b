package payment

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/pkg/dbmetrics"
)

func TestMarkNotified_OnlyOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(dbmetrics.Wrap(db, nil))

	query := `UPDATE scheduled_payments SET notified = \$1, updated_at = NOW\(\) WHERE id = \$2 AND notified = \$3`

	mock.ExpectExec(query).
		WithArgs(true, int64(4), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).
		WithArgs(true, int64(4), false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	marked, err := repo.MarkNotified(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = repo.MarkNotified(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, marked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

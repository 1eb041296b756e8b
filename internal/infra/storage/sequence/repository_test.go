package sequence

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextVal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	query := regexp.QuoteMeta("SELECT nextval($1::regclass)")

	mock.ExpectQuery(query).
		WithArgs("invitation_seq").
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(17))
	mock.ExpectQuery(query).
		WithArgs("missing_seq").
		WillReturnError(errors.New(`relation "missing_seq" does not exist`))

	value, err := repo.NextVal(context.Background(), "invitation_seq")
	require.NoError(t, err)
	assert.Equal(t, int64(17), value)

	_, err = repo.NextVal(context.Background(), "missing_seq")
	assert.ErrorIs(t, err, ErrNextValue)

	assert.NoError(t, mock.ExpectationsWereMet())
}

package changelog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

type fakeRepo struct {
	entries []*domain.ChangeLogEntry
	err     error
}

func (f *fakeRepo) Append(_ context.Context, entry *domain.ChangeLogEntry) error {
	if f.err != nil {
		return f.err
	}
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeRepo) ListByRecord(_ context.Context, model string, recordID int64) ([]*domain.ChangeLogEntry, error) {
	var out []*domain.ChangeLogEntry
	for _, e := range f.entries {
		if e.Model == model && e.RecordID == recordID {
			out = append(out, e)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	admin  = domain.Actor{OfficerID: 1, Role: domain.RoleAdmin}
	tenant = domain.Actor{OfficerID: 7, Role: domain.RoleTenant}
)

func TestRecordAndList(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, tenant, domain.ModelBooking, 5, domain.ChangeCreated, map[string]interface{}{"facility_id": 1}))
	require.NoError(t, svc.Record(ctx, domain.Actor{}, domain.ModelInvitation, 5, domain.ChangeUpdated, nil))

	entries, err := svc.ListByRecord(ctx, admin, domain.ModelBooking, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].ActorID)
	assert.Equal(t, string(domain.ChangeCreated), entries[0].Action)
	assert.Equal(t, 1, entries[0].Changes["facility_id"])

	system, err := svc.ListByRecord(ctx, admin, domain.ModelInvitation, 5)
	require.NoError(t, err)
	require.Len(t, system, 1)
	assert.Zero(t, system[0].ActorID)
}

func TestListByRecord_Errors(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})
	ctx := context.Background()

	_, err := svc.ListByRecord(ctx, tenant, domain.ModelBooking, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListByRecord(ctx, admin, "spaceship", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByRecord(ctx, admin, domain.ModelBooking, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecord_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")}, nopLogger{})

	err := svc.Record(context.Background(), admin, domain.ModelRenter, 1, domain.ChangeDeleted, nil)
	assert.ErrorIs(t, err, ErrInternal)
}

package check_overdue_invitations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

type invitation struct {
	at    time.Time
	state domain.InvitationState
}

// fakeInvitations повторяет условие UPDATE ... WHERE state = 'scheduled' AND invitation_at < now
type fakeInvitations struct {
	items map[int64]*invitation
	err   error
}

func (f *fakeInvitations) MarkOverdue(_ context.Context, now time.Time) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []int64
	for id := int64(1); id <= int64(len(f.items)); id++ {
		inv := f.items[id]
		if inv.state == domain.InvitationScheduled && inv.at.Before(now) {
			inv.state = domain.InvitationOverdue
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeChanges struct{ ids []int64 }

func (f *fakeChanges) Record(_ context.Context, actor domain.Actor, model string, recordID int64, _ domain.ChangeAction, changes map[string]interface{}) error {
	if actor.OfficerID != 0 || model != domain.ModelInvitation || changes["state"] != domain.InvitationOverdue {
		return errors.New("unexpected change entry")
	}
	f.ids = append(f.ids, recordID)
	return nil
}

type fakeMetrics struct{ rows map[string]int }

func (f *fakeMetrics) SweepRows(sweep string, n int) { f.rows[sweep] += n }

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(repo *fakeInvitations) (*UseCase, *fakeChanges, *fakeMetrics) {
	changes := &fakeChanges{}
	metrics := &fakeMetrics{rows: map[string]int{}}
	uc := NewUseCase(repo, changes, metrics, passTx{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc, changes, metrics
}

func TestExecute_MarksOnlyPastScheduled(t *testing.T) {
	repo := &fakeInvitations{items: map[int64]*invitation{
		1: {at: now.Add(-24 * time.Hour), state: domain.InvitationScheduled},
		2: {at: now.Add(time.Hour), state: domain.InvitationScheduled},
		3: {at: now.Add(-24 * time.Hour), state: domain.InvitationDraft},
		4: {at: now.Add(-24 * time.Hour), state: domain.InvitationAttended},
		5: {at: now.Add(-time.Minute), state: domain.InvitationScheduled},
	}}
	uc, changes, metrics := newUseCase(repo)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 5}, resp.Overdue)
	assert.Equal(t, []int64{1, 5}, changes.ids)
	assert.Equal(t, 2, metrics.rows[Name])

	assert.Equal(t, domain.InvitationScheduled, repo.items[2].state)
	assert.Equal(t, domain.InvitationDraft, repo.items[3].state)
	assert.Equal(t, domain.InvitationAttended, repo.items[4].state)
}

func TestExecute_Idempotent(t *testing.T) {
	repo := &fakeInvitations{items: map[int64]*invitation{
		1: {at: now.Add(-time.Hour), state: domain.InvitationScheduled},
	}}
	uc, changes, _ := newUseCase(repo)

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, first.Overdue)

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second.Overdue)
	assert.Len(t, changes.ids, 1)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc, _, metrics := newUseCase(&fakeInvitations{err: errors.New("db down")})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, metrics.rows[Name])
}

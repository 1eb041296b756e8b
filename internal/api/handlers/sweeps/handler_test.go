package sweeps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	directoryRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/directory"
	"github.com/m04kA/SMC-ReceptionService/internal/scheduler"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/check_due_payments"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/check_overdue_invitations"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeOfficers справочник сотрудников для Auth
type fakeOfficers map[int64]domain.Role

func (f fakeOfficers) GetOfficer(_ context.Context, id int64) (*domain.Officer, error) {
	role, ok := f[id]
	if !ok {
		return nil, directoryRepo.ErrOfficerNotFound
	}
	return &domain.Officer{ID: id, Role: role}, nil
}

var (
	officers   = fakeOfficers{1: domain.RoleAdmin, 2: domain.RoleTenant}
	officerIDs = map[domain.Role]string{domain.RoleAdmin: "1", domain.RoleTenant: "2"}
)

type fakeRunner struct {
	names []string
	err   error
}

func (f *fakeRunner) RunExclusive(ctx context.Context, name string, fn scheduler.Job) error {
	f.names = append(f.names, name)
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeOverdue struct {
	resp *check_overdue_invitations.Response
	err  error
}

func (f *fakeOverdue) Execute(context.Context) (*check_overdue_invitations.Response, error) {
	return f.resp, f.err
}

type fakeDue struct {
	resp *check_due_payments.Response
	err  error
}

func (f *fakeDue) Execute(context.Context) (*check_due_payments.Response, error) {
	return f.resp, f.err
}

func call(handler http.HandlerFunc, role domain.Role) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps/x", nil)
	req.Header.Set(middleware.HeaderUserID, officerIDs[role])
	rec := httptest.NewRecorder()
	middleware.Auth(officers, nopLogger{})(handler).ServeHTTP(rec, req)
	return rec
}

func TestOverdueInvitations(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandler(runner,
		&fakeOverdue{resp: &check_overdue_invitations.Response{Overdue: []int64{4, 9}}},
		&fakeDue{resp: &check_due_payments.Response{}},
		nopLogger{})

	rec := call(h.OverdueInvitations, domain.RoleAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"overdue":[4,9]}`, rec.Body.String())
	assert.Equal(t, []string{check_overdue_invitations.Name}, runner.names)
}

func TestDuePayments_EmptyListsAreArrays(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandler(runner,
		&fakeOverdue{},
		&fakeDue{resp: &check_due_payments.Response{Notified: []int64{3}}},
		nopLogger{})

	rec := call(h.DuePayments, domain.RoleAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notified":[3],"failed":[]}`, rec.Body.String())
	assert.Equal(t, []string{check_due_payments.Name}, runner.names)
}

func TestSweeps_AdminOnly(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandler(runner, &fakeOverdue{}, &fakeDue{}, nopLogger{})

	assert.Equal(t, http.StatusForbidden, call(h.OverdueInvitations, domain.RoleTenant).Code)
	assert.Equal(t, http.StatusForbidden, call(h.DuePayments, domain.RoleTenant).Code)
	assert.Empty(t, runner.names)
}

func TestSweeps_Errors(t *testing.T) {
	h := NewHandler(&fakeRunner{err: scheduler.ErrAlreadyRunning}, &fakeOverdue{}, &fakeDue{}, nopLogger{})
	assert.Equal(t, http.StatusConflict, call(h.OverdueInvitations, domain.RoleAdmin).Code)

	h = NewHandler(&fakeRunner{}, &fakeOverdue{}, &fakeDue{err: errors.New("smtp down")}, nopLogger{})
	assert.Equal(t, http.StatusInternalServerError, call(h.DuePayments, domain.RoleAdmin).Code)
}

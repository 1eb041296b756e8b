package invitations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	directoryRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/directory"
	invitationsService "github.com/m04kA/SMC-ReceptionService/internal/service/invitations"
	"github.com/m04kA/SMC-ReceptionService/internal/service/invitations/models"
	"github.com/m04kA/SMC-ReceptionService/internal/usecase/invitation_workflow"
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

type fakeService struct {
	filter domain.InvitationsFilter
	err    error
}

func (f *fakeService) GetByID(_ context.Context, _ domain.Actor, id int64) (*models.InvitationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.InvitationResponse{ID: id, Sequence: "INV/00001", State: string(domain.InvitationDraft)}, nil
}

func (f *fakeService) List(_ context.Context, _ domain.Actor, filter domain.InvitationsFilter) ([]*models.InvitationResponse, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return []*models.InvitationResponse{}, nil
}

type fakeWorkflow struct {
	createReq *invitation_workflow.CreateRequest
	updateReq *invitation_workflow.UpdateRequest
	calls     []string
	err       error
}

func (f *fakeWorkflow) respond(id int64, state domain.InvitationState) (*models.InvitationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.InvitationResponse{ID: id, Sequence: "INV/00001", State: string(state)}, nil
}

func (f *fakeWorkflow) Create(_ context.Context, _ domain.Actor, req *invitation_workflow.CreateRequest) (*models.InvitationResponse, error) {
	f.createReq = req
	f.calls = append(f.calls, "create")
	return f.respond(1, domain.InvitationDraft)
}

func (f *fakeWorkflow) Update(_ context.Context, _ domain.Actor, id int64, req *invitation_workflow.UpdateRequest) (*models.InvitationResponse, error) {
	f.updateReq = req
	f.calls = append(f.calls, "update")
	return f.respond(id, domain.InvitationDraft)
}

func (f *fakeWorkflow) Confirm(_ context.Context, _ domain.Actor, id int64) (*models.InvitationResponse, error) {
	f.calls = append(f.calls, "confirm")
	return f.respond(id, domain.InvitationScheduled)
}

func (f *fakeWorkflow) MarkAttended(_ context.Context, _ domain.Actor, id int64) (*models.InvitationResponse, error) {
	f.calls = append(f.calls, "attend")
	return f.respond(id, domain.InvitationAttended)
}

func (f *fakeWorkflow) MarkCancelled(_ context.Context, _ domain.Actor, id int64) (*models.InvitationResponse, error) {
	f.calls = append(f.calls, "cancel")
	return f.respond(id, domain.InvitationCancelled)
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth(fakeOfficers{7: domain.RoleTenant}, nopLogger{}))
	r.HandleFunc("/api/v1/invitations", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/invitations", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/invitations/{invitationId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/invitations/{invitationId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/api/v1/invitations/{invitationId}/confirm", h.Confirm).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/invitations/{invitationId}/attend", h.Attend).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/invitations/{invitationId}/cancel", h.Cancel).Methods(http.MethodPost)
	return r
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	wf := &fakeWorkflow{}
	router := newRouter(NewHandler(&fakeService{}, wf, nopLogger{}))

	rec := do(router, http.MethodPost, "/api/v1/invitations", `{
		"subject": "Contract signing",
		"guest": {"name": "Bob", "email": "bob@acme.example"},
		"invitationAt": "2025-06-02 15:30",
		"state": "scheduled"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, wf.createReq)
	assert.Equal(t, "Contract signing", wf.createReq.Subject)
	assert.Equal(t, "bob@acme.example", wf.createReq.Guest.Email)
	assert.Equal(t, time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC), wf.createReq.InvitationAt)
	require.NotNil(t, wf.createReq.State)
	assert.Equal(t, domain.InvitationScheduled, *wf.createReq.State)
	assert.Contains(t, rec.Body.String(), `"sequence":"INV/00001"`)
}

func TestCreate_BadBody(t *testing.T) {
	wf := &fakeWorkflow{}
	router := newRouter(NewHandler(&fakeService{}, wf, nopLogger{}))

	rec := do(router, http.MethodPost, "/api/v1/invitations",
		`{"subject":"x","guest":{"name":"Bob","email":"bob@acme.example"},"invitationAt":"soon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/v1/invitations", `[]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, wf.calls)
}

func TestUpdate_SequenceIsNotAccepted(t *testing.T) {
	wf := &fakeWorkflow{}
	router := newRouter(NewHandler(&fakeService{}, wf, nopLogger{}))

	rec := do(router, http.MethodPut, "/api/v1/invitations/3", `{"sequence":"INV/99999"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, wf.updateReq)
}

func TestUpdate(t *testing.T) {
	wf := &fakeWorkflow{}
	router := newRouter(NewHandler(&fakeService{}, wf, nopLogger{}))

	rec := do(router, http.MethodPut, "/api/v1/invitations/3",
		`{"guestEmail":"carol@acme.example","invitationAt":"2025-06-03T12:00:00+03:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, wf.updateReq)
	require.NotNil(t, wf.updateReq.GuestEmail)
	assert.Equal(t, "carol@acme.example", *wf.updateReq.GuestEmail)
	require.NotNil(t, wf.updateReq.InvitationAt)
	assert.Equal(t, time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), *wf.updateReq.InvitationAt)
	assert.Nil(t, wf.updateReq.Subject)
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		path      string
		wantCall  string
		wantState string
	}{
		{path: "/api/v1/invitations/3/confirm", wantCall: "confirm", wantState: `"state":"scheduled"`},
		{path: "/api/v1/invitations/3/attend", wantCall: "attend", wantState: `"state":"attended"`},
		{path: "/api/v1/invitations/3/cancel", wantCall: "cancel", wantState: `"state":"cancelled"`},
	}

	for _, tt := range tests {
		t.Run(tt.wantCall, func(t *testing.T) {
			wf := &fakeWorkflow{}
			router := newRouter(NewHandler(&fakeService{}, wf, nopLogger{}))

			rec := do(router, http.MethodPost, tt.path, "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{tt.wantCall}, wf.calls)
			assert.Contains(t, rec.Body.String(), tt.wantState)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid transition", err: invitation_workflow.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "not in future", err: invitation_workflow.ErrNotInFuture, wantStatus: http.StatusUnprocessableEntity},
		{name: "renter required", err: invitation_workflow.ErrRenterRequired, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid email", err: invitation_workflow.ErrInvalidEmail, wantStatus: http.StatusBadRequest},
		{name: "access denied", err: invitation_workflow.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "not found", err: invitation_workflow.ErrInvitationNotFound, wantStatus: http.StatusNotFound},
		{name: "renter not found", err: invitation_workflow.ErrRenterNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf := &fakeWorkflow{err: tt.err}
			router := newRouter(NewHandler(&fakeService{}, wf, nopLogger{}))

			rec := do(router, http.MethodPost, "/api/v1/invitations/3/confirm", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestList_StateFilter(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(NewHandler(svc, &fakeWorkflow{}, nopLogger{}))

	rec := do(router, http.MethodGet, "/api/v1/invitations?state=overdue&renterId=10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.State)
	assert.Equal(t, domain.InvitationOverdue, *svc.filter.State)
	require.NotNil(t, svc.filter.RenterID)
	assert.Equal(t, int64(10), *svc.filter.RenterID)

	rec = do(router, http.MethodGet, "/api/v1/invitations?state=lost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGet(t *testing.T) {
	router := newRouter(NewHandler(&fakeService{}, &fakeWorkflow{}, nopLogger{}))
	rec := do(router, http.MethodGet, "/api/v1/invitations/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":3`)

	router = newRouter(NewHandler(&fakeService{err: invitationsService.ErrAccessDenied}, &fakeWorkflow{}, nopLogger{}))
	rec = do(router, http.MethodGet, "/api/v1/invitations/3", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/invitations/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	directoryRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/directory"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeOfficers struct {
	roles map[int64]domain.Role
	err   error
}

func (f fakeOfficers) GetOfficer(_ context.Context, id int64) (*domain.Officer, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.roles[id]
	if !ok {
		return nil, directoryRepo.ErrOfficerNotFound
	}
	return &domain.Officer{ID: id, Name: "Officer", Role: role}, nil
}

func TestAuth(t *testing.T) {
	stored := fakeOfficers{roles: map[int64]domain.Role{
		7:  domain.RoleTenant,
		42: domain.RoleAdmin,
		99: domain.Role("root"),
	}}

	tests := []struct {
		name       string
		officers   fakeOfficers
		headers    map[string]string
		wantStatus int
		wantActor  domain.Actor
		wantTZ     string
	}{
		{
			name:       "missing user id",
			officers:   stored,
			headers:    map[string]string{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non numeric user id",
			officers:   stored,
			headers:    map[string]string{HeaderUserID: "abc"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "negative user id",
			officers:   stored,
			headers:    map[string]string{HeaderUserID: "-3"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown officer",
			officers:   stored,
			headers:    map[string]string{HeaderUserID: "8"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "directory failure",
			officers:   fakeOfficers{err: errors.New("connection refused")},
			headers:    map[string]string{HeaderUserID: "7"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "stored role is broken",
			officers:   stored,
			headers:    map[string]string{HeaderUserID: "99"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unknown timezone",
			officers:   stored,
			headers:    map[string]string{HeaderUserID: "7", HeaderTimezone: "Mars/Olympus"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "tenant in UTC",
			officers:   stored,
			headers:    map[string]string{HeaderUserID: "7"},
			wantStatus: http.StatusOK,
			wantActor:  domain.Actor{OfficerID: 7, Role: domain.RoleTenant},
			wantTZ:     "UTC",
		},
		{
			name:       "role header cannot raise a tenant to admin",
			officers:   stored,
			headers:    map[string]string{HeaderUserID: "7", "X-User-Role": "admin"},
			wantStatus: http.StatusOK,
			wantActor:  domain.Actor{OfficerID: 7, Role: domain.RoleTenant},
			wantTZ:     "UTC",
		},
		{
			name:     "stored admin without role header",
			officers: stored,
			headers: map[string]string{
				HeaderUserID:   " 42 ",
				HeaderTimezone: "Europe/Moscow",
			},
			wantStatus: http.StatusOK,
			wantActor:  domain.Actor{OfficerID: 42, Role: domain.RoleAdmin},
			wantTZ:     "Europe/Moscow",
		},
		{
			name:       "role header cannot lower an admin",
			officers:   stored,
			headers:    map[string]string{HeaderUserID: "42", "X-User-Role": "tenant"},
			wantStatus: http.StatusOK,
			wantActor:  domain.Actor{OfficerID: 42, Role: domain.RoleAdmin},
			wantTZ:     "UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Actor
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				var ok bool
				got, ok = GetActor(r.Context())
				require.True(t, ok)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/renters", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			Auth(tt.officers, nopLogger{})(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, called)
				assert.Contains(t, rec.Body.String(), "error")
				return
			}
			require.True(t, called)
			assert.Equal(t, tt.wantActor.OfficerID, got.OfficerID)
			assert.Equal(t, tt.wantActor.Role, got.Role)
			require.NotNil(t, got.Location)
			assert.Equal(t, tt.wantTZ, got.Location.String())
		})
	}
}

func TestGetActor_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetActor(req.Context())
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	t.Run("keeps valid incoming id", func(t *testing.T) {
		const incoming = "5b0c6d3e-8f1a-4c2b-9e7d-1a2b3c4d5e6f"
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, incoming)
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)

		assert.Equal(t, incoming, seen)
		assert.Equal(t, incoming, rec.Header().Get(HeaderRequestID))
	})

	t.Run("replaces garbage with a new id", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "not-a-uuid")
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)

		assert.NotEqual(t, "not-a-uuid", seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})

	t.Run("empty context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, GetRequestID(req.Context()))
	})
}

type observation struct {
	method string
	path   string
	status int
}

type fakeHTTPMetrics struct {
	observed []observation
}

func (m *fakeHTTPMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.observed = append(m.observed, observation{method: method, path: path, status: status})
}

func TestMetricsMiddleware(t *testing.T) {
	m := &fakeHTTPMetrics{}

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/settings", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/15", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, m.observed, 2)
	assert.Equal(t, observation{method: http.MethodDelete, path: "/api/v1/bookings/{bookingId}", status: http.StatusNoContent}, m.observed[0])
	assert.Equal(t, observation{method: http.MethodGet, path: "/api/v1/settings", status: http.StatusOK}, m.observed[1])
}

func TestMetricsMiddleware_Unmatched(t *testing.T) {
	m := &fakeHTTPMetrics{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	MetricsMiddleware(m)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, "unmatched", m.observed[0].path)
	assert.Equal(t, http.StatusNotFound, m.observed[0].status)
}

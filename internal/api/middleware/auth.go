// Package middleware содержит HTTP middleware сервиса.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	directoryRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/directory"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderTimezone = "X-User-Timezone"

	msgMissingUserID  = "отсутствует или некорректен заголовок X-User-ID"
	msgUnknownOfficer = "сотрудник не найден"
	msgInvalidTZ      = "некорректен заголовок X-User-Timezone"
)

// OfficerDirectory источник сотрудников и их ролей
type OfficerDirectory interface {
	GetOfficer(ctx context.Context, id int64) (*domain.Officer, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type actorKey struct{}

// Auth доверяет только идентификатору из X-User-ID; роль берется из сохраненного сотрудника
// Часовой пояс берется из X-User-Timezone, по умолчанию UTC
func Auth(officers OfficerDirectory, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			officerID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
			if err != nil || officerID <= 0 {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			loc := time.UTC
			if raw := strings.TrimSpace(r.Header.Get(HeaderTimezone)); raw != "" {
				loc, err = time.LoadLocation(raw)
				if err != nil {
					handlers.RespondBadRequest(w, msgInvalidTZ)
					return
				}
			}

			officer, err := officers.GetOfficer(r.Context(), officerID)
			if err != nil {
				if errors.Is(err, directoryRepo.ErrOfficerNotFound) {
					log.Warn("Auth: unknown officer_id=%d", officerID)
					handlers.RespondUnauthorized(w, msgUnknownOfficer)
					return
				}
				log.Error("Auth: failed to load officer_id=%d: %v", officerID, err)
				handlers.RespondInternalError(w)
				return
			}

			role := officer.Role
			if !domain.IsValidRole(role) {
				log.Error("Auth: officer_id=%d has unknown role %q", officerID, role)
				handlers.RespondInternalError(w)
				return
			}

			actor := domain.Actor{OfficerID: officer.ID, Role: role, Location: loc}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor кладет сотрудника в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает сотрудника, положенного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

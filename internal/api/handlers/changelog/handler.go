package changelog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	changelogService "github.com/m04kA/SMC-ReceptionService/internal/service/changelog"
)

const (
	msgInvalidID     = "некорректный ID"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "журнал изменений доступен только администратору"
)

type Handler struct {
	service ChangelogService
	logger  Logger
}

func NewHandler(service ChangelogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/changelog/{model}/{recordId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	recordID, err := handlers.PathID(r, "recordId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	model := mux.Vars(r)["model"]

	result, err := h.service.ListByRecord(r.Context(), actor, model, recordID)
	if err != nil {
		switch {
		case errors.Is(err, changelogService.ErrAccessDenied):
			h.logger.Warn("GET /changelog/{model}/{id} - Access denied: officer_id=%d", actor.OfficerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changelogService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /changelog/{model}/{id} - Failed: model=%s, record_id=%d, error=%v", model, recordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

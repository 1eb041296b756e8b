package capabilities

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/service/access"
)

const (
	msgInvalidID      = "некорректный ID"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgUnknownModel   = "неизвестный тип записи"
	msgRecordNotFound = "запись не найдена"
)

type Handler struct {
	service AccessService
	logger  Logger
}

func NewHandler(service AccessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/capabilities/{model}/{recordId}
// Возвращает, какие действия текущий сотрудник может выполнить над записью
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "recordId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	model := mux.Vars(r)["model"]

	result, err := h.service.Capabilities(r.Context(), actor, model, id)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrUnknownModel):
			handlers.RespondBadRequest(w, msgUnknownModel)

		case errors.Is(err, access.ErrRecordNotFound):
			handlers.RespondNotFound(w, msgRecordNotFound)

		default:
			h.logger.Error("GET /capabilities/{model}/{id} - Failed: model=%s, record_id=%d, error=%v", model, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

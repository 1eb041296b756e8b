package renters

import (
	"net/http"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

// AddGarageSlot POST /api/v1/renters/{renterId}/garage-slots
func (h *Handler) AddGarageSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	renterID, err := handlers.PathID(r, "renterId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.GarageSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /renters/{id}/garage-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddGarageSlot(r.Context(), actor, renterID, &req)
	if err != nil {
		h.respondError(w, "POST /renters/{id}/garage-slots", err)
		return
	}

	h.logger.Info("POST /renters/{id}/garage-slots - Slot added: renter_id=%d, slot_id=%d", renterID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateGarageSlot PUT /api/v1/garage-slots/{slotId}
func (h *Handler) UpdateGarageSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "slotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.GarageSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /garage-slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateGarageSlot(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /garage-slots/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteGarageSlot DELETE /api/v1/garage-slots/{slotId}
func (h *Handler) DeleteGarageSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "slotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteGarageSlot(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /garage-slots/{id}", err)
		return
	}

	handlers.RespondNoContent(w)
}

package renters

import (
	"net/http"

	"github.com/m04kA/SMC-ReceptionService/internal/api/handlers"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/service/renters/models"
)

// AddPayment POST /api/v1/renters/{renterId}/payments
func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
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

	var req models.PaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /renters/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddPayment(r.Context(), actor, renterID, &req)
	if err != nil {
		h.respondError(w, "POST /renters/{id}/payments", err)
		return
	}

	h.logger.Info("POST /renters/{id}/payments - Payment scheduled: renter_id=%d, payment_id=%d", renterID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdatePayment PUT /api/v1/payments/{paymentId}
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "paymentId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.PaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /payments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdatePayment(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /payments/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeletePayment DELETE /api/v1/payments/{paymentId}
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "paymentId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeletePayment(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /payments/{id}", err)
		return
	}

	handlers.RespondNoContent(w)
}

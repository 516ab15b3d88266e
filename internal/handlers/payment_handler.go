package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vivahmilan/backend/internal/authz"
	"github.com/vivahmilan/backend/internal/middleware"
	"github.com/vivahmilan/backend/internal/models"
	"github.com/vivahmilan/backend/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payment, err := h.payments.Create(ctx, user.ID, &req)
	if err != nil {
		if err == services.ErrDuplicateUTR {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("UTR number already submitted"))
			return
		}
		log.WithError(err).WithField("user", user.ID.Hex()).Error("[CreatePayment] failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to submit payment"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(payment))
}

func (h *PaymentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	payments, err := h.payments.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("[ListPayments] failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list payments"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(payments))
}

func (h *PaymentHandler) MyPayments(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payments, err := h.payments.ListByUser(ctx, user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list payments"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(payments))
}

func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid payment id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payment, err := h.payments.GetByID(ctx, id)
	if err != nil {
		if err == services.ErrPaymentNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Payment not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load payment"))
		return
	}

	if !authz.OwnerOrAdmin(user, payment.UserID) {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not allowed to view this payment"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(payment))
}

func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid payment id"))
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payment, err := h.payments.UpdateStatus(ctx, id, &req)
	if err != nil {
		if err == services.ErrPaymentNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Payment not found"))
			return
		}
		log.WithError(err).WithField("payment", id.Hex()).Error("[UpdatePaymentStatus] failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update payment status"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(payment))
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid payment id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.payments.Delete(ctx, id); err != nil {
		if err == services.ErrPaymentNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Payment not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete payment"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Payment deleted"}))
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vivahmilan/backend/internal/middleware"
	"github.com/vivahmilan/backend/internal/models"
	"github.com/vivahmilan/backend/internal/services"
)

type InboxHandler struct {
	inbox  *services.InboxService
	mailer services.Mailer
}

func NewInboxHandler(inbox *services.InboxService, mailer services.Mailer) *InboxHandler {
	return &InboxHandler{inbox: inbox, mailer: mailer}
}

func (h *InboxHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreateMessageRequest
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

	msg, err := h.inbox.CreateMessage(ctx, user, &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to submit message"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(msg))
}

func (h *InboxHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	messages, err := h.inbox.ListMessages(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list messages"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(messages))
}

// CreateContact is public. Notification mail is best effort: a mail failure
// never loses the stored submission.
func (h *InboxHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	contact, err := h.inbox.CreateContact(ctx, &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to submit contact request"))
		return
	}

	if err := h.mailer.SendContactNotification(ctx, req.Name, req.Email, req.Message); err != nil {
		log.WithError(err).Warn("[CreateContact] notification mail failed")
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(contact))
}

func (h *InboxHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contacts, err := h.inbox.ListContacts(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list contacts"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(contacts))
}

func (h *InboxHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid contact id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.inbox.DeleteContact(ctx, id); err != nil {
		if err == services.ErrContactNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Contact not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete contact"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Contact deleted"}))
}

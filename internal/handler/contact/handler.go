package contact

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	mailService "github.com/getactive-kenya/backend/internal/service/mail"
	"github.com/getactive-kenya/backend/pkg/utils"
)

// Mailer delivers a contact form submission.
type Mailer interface {
	SendContact(ctx context.Context, msg mailService.ContactMessage) error
}

// Handler serves the contact form endpoint.
type Handler struct {
	mailer Mailer
}

// New creates the contact handler.
func New(mailer Mailer) *Handler {
	return &Handler{mailer: mailer}
}

// RegisterRoutes mounts the contact routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/send-email", h.handleSendEmail)
}

func (h *Handler) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Subject string `json:"subject"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	name := strings.TrimSpace(payload.Name)
	email := strings.TrimSpace(payload.Email)
	message := strings.TrimSpace(payload.Message)
	if name == "" || email == "" || message == "" {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Please provide name, email, and message.",
		})
		return
	}

	err := h.mailer.SendContact(r.Context(), mailService.ContactMessage{
		Subject: strings.TrimSpace(payload.Subject),
		Name:    name,
		Email:   email,
		Message: message,
	})
	if err != nil {
		if errors.Is(err, mailService.ErrNotConfigured) {
			log.Printf("[contact] email rejected: %v", err)
			utils.RespondJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "Email service not configured correctly.",
			})
			return
		}
		log.Printf("[contact] failed to send email: %v", err)
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to send email",
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email sent successfully",
	})
}

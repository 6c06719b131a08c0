package booking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	calendarService "github.com/getactive-kenya/backend/internal/service/calendar"
	"github.com/getactive-kenya/backend/pkg/utils"
)

// Scheduler creates an appointment on the practice calendar.
type Scheduler interface {
	CreateBooking(ctx context.Context, booking calendarService.Booking) (string, error)
}

// ConfirmationMailer sends the visitor a booking acknowledgement.
type ConfirmationMailer interface {
	Enabled() bool
	SendBookingConfirmation(ctx context.Context, name, email, sessionType, date, eventLink string) error
}

// Handler serves the booking form endpoint.
type Handler struct {
	scheduler Scheduler
	mailer    ConfirmationMailer
}

// New creates the booking handler. The scheduler may be nil when the
// calendar integration is not configured.
func New(scheduler Scheduler, mailer ConfirmationMailer) *Handler {
	return &Handler{scheduler: scheduler, mailer: mailer}
}

// RegisterRoutes mounts the booking routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/bookings", h.handleCreateBooking)
}

func (h *Handler) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "booking service unavailable")
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		SessionType string `json:"sessionType"`
		Date        string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(payload.Name)
	email := strings.TrimSpace(payload.Email)
	sessionType := strings.TrimSpace(payload.SessionType)
	if name == "" || email == "" || sessionType == "" || payload.Date == "" {
		utils.RespondError(w, http.StatusBadRequest, "name, email, sessionType and date are required")
		return
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	link, err := h.scheduler.CreateBooking(r.Context(), calendarService.Booking{
		Name:        name,
		Email:       email,
		SessionType: sessionType,
		Date:        date,
	})
	if err != nil {
		log.Printf("[booking] failed to create event: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "failed to create booking")
		return
	}

	// The acknowledgement email is best-effort; the booking already exists.
	if h.mailer != nil && h.mailer.Enabled() {
		if err := h.mailer.SendBookingConfirmation(r.Context(), name, email, sessionType, payload.Date, link); err != nil {
			log.Printf("[booking] failed to send confirmation email: %v", err)
		}
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"eventLink": link,
	})
}

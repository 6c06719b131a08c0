package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/getactive-kenya/backend/internal/model/chat"
	chatService "github.com/getactive-kenya/backend/internal/service/chat"
	feedbackService "github.com/getactive-kenya/backend/internal/service/feedback"
	"github.com/getactive-kenya/backend/internal/service/session"
	"github.com/getactive-kenya/backend/pkg/utils"
)

// Handler serves the widget session API: transcript, language preference,
// the send flow and feedback capture.
type Handler struct {
	store    *session.Store
	chatSvc  *chatService.Service
	recorder *feedbackService.Recorder
}

// New creates the chat session handler.
func New(store *session.Store, chatSvc *chatService.Service, recorder *feedbackService.Recorder) *Handler {
	return &Handler{store: store, chatSvc: chatSvc, recorder: recorder}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Get("/session", h.handleGetSession)
		r.Post("/open", h.handleOpen)
		r.Post("/messages", h.handleSendMessage)
		r.Post("/reset", h.handleReset)
		r.Put("/language", h.handleSetLanguage)
		r.Post("/feedback", h.handleFeedback)
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Session())
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Open())
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatSvc.Send(r.Context(), payload.Text)
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Reset())
}

func (h *Handler) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Language string `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lang, err := chat.ParseLanguage(payload.Language)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store.SetLanguage(lang)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"language": string(lang)})
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MessageID string `json:"messageId"`
		IsHelpful bool   `json:"isHelpful"`
		Comment   string `json:"comment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.recorder.Submit(payload.MessageID, payload.IsHelpful, payload.Comment)
	switch {
	case errors.Is(err, feedbackService.ErrAlreadyRated):
		// The first rating wins; re-submissions see the original record.
		utils.RespondJSON(w, http.StatusOK, record)
	case err != nil:
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondJSON(w, http.StatusAccepted, record)
	}
}

package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/getactive-kenya/backend/internal/model/chat"
	"github.com/getactive-kenya/backend/internal/service/ai"
	chatService "github.com/getactive-kenya/backend/internal/service/chat"
	"github.com/getactive-kenya/backend/pkg/utils"
)

// Generator produces a model reply for an assembled turn sequence.
type Generator interface {
	Generate(ctx context.Context, turns []chat.Turn) (string, error)
}

// Handler serves the stateless generation endpoint consumed by the widget.
type Handler struct {
	generator Generator
}

// New creates the chatbot handler.
func New(generator Generator) *Handler {
	return &Handler{generator: generator}
}

// RegisterRoutes mounts the chatbot routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chatbot/generate-text", h.handleGenerateText)
}

func (h *Handler) handleGenerateText(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Prompt      string      `json:"prompt"`
		ChatHistory []chat.Turn `json:"chatHistory"`
		Language    string      `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		// Unknown turn roles are rejected here, at the decode boundary.
		utils.RespondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	prompt := strings.TrimSpace(payload.Prompt)
	if prompt == "" {
		utils.RespondError(w, http.StatusBadRequest, `Invalid request: "prompt" (user message) is required.`)
		return
	}

	lang := chat.LanguageEnglish
	if payload.Language != "" {
		parsed, err := chat.ParseLanguage(payload.Language)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		lang = parsed
	}

	turns := chatService.Assemble(payload.ChatHistory, prompt, lang)

	text, err := h.generator.Generate(r.Context(), turns)
	if err != nil {
		respondGenerationError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}

// respondGenerationError maps gateway failures onto the wire contract: an
// upstream status is relayed as-is, everything else becomes a generic 500.
func respondGenerationError(w http.ResponseWriter, err error) {
	var upstream *ai.UpstreamError
	if errors.As(err, &upstream) {
		status := upstream.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		utils.RespondJSON(w, status, map[string]string{
			"error":   "Gemini API Error: " + upstream.Status,
			"details": upstream.Message,
		})
		return
	}

	utils.RespondJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "Failed to generate response from AI.",
		"details": err.Error(),
	})
}

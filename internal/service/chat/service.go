package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/getactive-kenya/backend/internal/model/chat"
	"github.com/getactive-kenya/backend/internal/service/session"
)

// ErrEmptyMessage rejects blank input before any turn is assembled.
var ErrEmptyMessage = errors.New("message text is required")

// Generator produces a model reply for an assembled turn sequence.
type Generator interface {
	Generate(ctx context.Context, turns []chat.Turn) (string, error)
}

// Service runs the widget send flow: validate, record the user message,
// assemble context from the stored transcript, call the generator and record
// the reply. A failed generation becomes an error bubble in the transcript
// rather than a failed request.
type Service struct {
	store     *session.Store
	generator Generator
}

// NewService wires the conversation store and the generation gateway.
func NewService(store *session.Store, generator Generator) *Service {
	return &Service{store: store, generator: generator}
}

// SendResult carries both messages appended by one exchange.
type SendResult struct {
	UserMessage chat.Message `json:"userMessage"`
	BotMessage  chat.Message `json:"botMessage"`
}

// Send processes one user submission end to end.
func (s *Service) Send(ctx context.Context, text string) (SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SendResult{}, ErrEmptyMessage
	}

	prior := s.store.Messages()
	lang := s.store.Language()

	userMsg := chat.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    chat.SenderUser,
		CreatedAt: time.Now().UTC(),
	}
	s.store.Append(userMsg)

	turns := Assemble(TurnsFromMessages(prior), text, lang)

	reply, err := s.generator.Generate(ctx, turns)
	botMsg := chat.Message{
		ID:        uuid.NewString(),
		Sender:    chat.SenderBot,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		log.Printf("[chat] generation failed: %v", err)
		botMsg.Text = session.ErrorText(lang)
		botMsg.IsError = true
	} else {
		botMsg.Text = reply
	}
	s.store.Append(botMsg)

	return SendResult{UserMessage: userMsg, BotMessage: botMsg}, nil
}

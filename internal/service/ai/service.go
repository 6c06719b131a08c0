package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/getactive-kenya/backend/internal/config"
	"github.com/getactive-kenya/backend/internal/model/chat"
)

// modelsClient narrows the genai client surface so tests can stub it.
type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGenaiClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// Service is the stateless generation gateway. It forwards assembled turn
// sequences verbatim to Gemini and extracts the first candidate's text.
// A single upstream failure is a single reported failure; no retries.
type Service struct {
	models  modelsClient
	model   string
	cfg     config.AIConfig
	timeout time.Duration
}

// NewService builds the gateway. A missing credential does not fail startup;
// the returned service rejects every call with ErrNotConfigured instead.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	svc := &Service{
		model:   cfg.Model,
		cfg:     cfg,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}

	if !cfg.Enabled() {
		log.Printf("[ai] GEMINI_API_KEY not set, generation requests will fail fast")
		return svc, nil
	}

	client, err := newGenaiClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	svc.models = client.Models
	return svc, nil
}

// Enabled reports whether a credential was configured.
func (s *Service) Enabled() bool {
	return s.models != nil
}

// Generate submits turns to the model and returns the extracted text.
func (s *Service) Generate(ctx context.Context, turns []chat.Turn) (string, error) {
	if s.models == nil {
		return "", ErrNotConfigured
	}
	if len(turns) == 0 {
		return "", errors.New("at least one turn is required")
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.models.GenerateContent(callCtx, s.model, toContents(turns), s.generateConfig())
	if err != nil {
		return "", classify(err)
	}

	text := extractText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (s *Service) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if s.cfg.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*s.cfg.Temperature))
	}
	if s.cfg.MaxOutputTokens != nil && *s.cfg.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(*s.cfg.MaxOutputTokens)
	}
	return cfg
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func toContents(turns []chat.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.RoleUser
		if turn.Role == chat.RoleModel {
			role = genai.RoleModel
		}

		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, part := range turn.Parts {
			parts = append(parts, &genai.Part{Text: part.Text})
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return contents
}

// classify maps SDK failures onto the gateway error taxonomy.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			StatusCode: apiErr.Code,
			Status:     apiErr.Status,
			Message:    apiErr.Message,
		}
	}
	return err
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

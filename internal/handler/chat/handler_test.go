package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/getactive-kenya/backend/internal/model/chat"
	chatService "github.com/getactive-kenya/backend/internal/service/chat"
	feedbackService "github.com/getactive-kenya/backend/internal/service/feedback"
	"github.com/getactive-kenya/backend/internal/service/session"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(context.Context, []chatmodel.Turn) (string, error) {
	return s.text, s.err
}

func setupRouter(t *testing.T, gen *stubGenerator) (*chi.Mux, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	chatSvc := chatService.NewService(store, gen)
	recorder := feedbackService.NewRecorder("")
	t.Cleanup(recorder.Wait)

	r := chi.NewRouter()
	New(store, chatSvc, recorder).RegisterRoutes(r)
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSendMessageFreshSession(t *testing.T) {
	r, store := setupRouter(t, &stubGenerator{text: "Take a deep breath."})

	resp := doJSON(t, r, http.MethodPost, "/chat/messages", `{"text":"I feel anxious"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	messages := store.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected exactly user+bot messages, got %d", len(messages))
	}
	if messages[0].Sender != chatmodel.SenderUser || messages[1].Sender != chatmodel.SenderBot {
		t.Fatalf("unexpected senders: %s, %s", messages[0].Sender, messages[1].Sender)
	}
	if messages[1].Text != "Take a deep breath." {
		t.Fatalf("unexpected bot text: %q", messages[1].Text)
	}
}

func TestSendMessageBlankTextRejected(t *testing.T) {
	r, store := setupRouter(t, &stubGenerator{text: "unused"})

	resp := doJSON(t, r, http.MethodPost, "/chat/messages", `{"text":"   "}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if len(store.Messages()) != 0 {
		t.Fatal("blank input must not reach the transcript")
	}
}

func TestSendMessageGenerationFailureBecomesErrorBubble(t *testing.T) {
	r, store := setupRouter(t, &stubGenerator{err: errors.New("upstream down")})

	resp := doJSON(t, r, http.MethodPost, "/chat/messages", `{"text":"hello"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("a failed generation still answers 200, got %d", resp.Code)
	}

	messages := store.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected user+error messages, got %d", len(messages))
	}
	if !messages[1].IsError {
		t.Fatal("bot message must be flagged as an error bubble")
	}
	if messages[1].Text != session.ErrorText(chatmodel.LanguageEnglish) {
		t.Fatalf("unexpected error text: %q", messages[1].Text)
	}
}

func TestLanguageToggleOnNeverOpenedSession(t *testing.T) {
	r, store := setupRouter(t, &stubGenerator{})

	resp := doJSON(t, r, http.MethodPut, "/chat/language", `{"language":"sw"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	session := store.Session()
	if session.Language != chatmodel.LanguageSwahili {
		t.Fatalf("expected language sw, got %s", session.Language)
	}
	if len(session.Messages) != 0 {
		t.Fatalf("language toggle must not mutate messages, got %d", len(session.Messages))
	}
}

func TestLanguageToggleRejectsUnknownCode(t *testing.T) {
	r, _ := setupRouter(t, &stubGenerator{})

	resp := doJSON(t, r, http.MethodPut, "/chat/language", `{"language":"de"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestResetWithOpenWidget(t *testing.T) {
	r, store := setupRouter(t, &stubGenerator{text: "ok"})

	doJSON(t, r, http.MethodPost, "/chat/open", "")
	doJSON(t, r, http.MethodPost, "/chat/messages", `{"text":"one"}`)
	doJSON(t, r, http.MethodPost, "/chat/messages", `{"text":"two"}`)
	if got := len(store.Messages()); got != 5 {
		t.Fatalf("setup expected 5 messages, got %d", got)
	}

	resp := doJSON(t, r, http.MethodPost, "/chat/reset", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var session chatmodel.Session
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if len(session.Messages) != 1 {
		t.Fatalf("expected one welcome message after reset, got %d", len(session.Messages))
	}
	if session.Messages[0].Sender != chatmodel.SenderBot {
		t.Fatalf("welcome must be bot-authored, got %s", session.Messages[0].Sender)
	}
}

func TestFeedbackIsOncePerMessage(t *testing.T) {
	r, _ := setupRouter(t, &stubGenerator{})

	resp := doJSON(t, r, http.MethodPost, "/chat/feedback", `{"messageId":"m1","isHelpful":false,"comment":"too vague"}`)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodPost, "/chat/feedback", `{"messageId":"m1","isHelpful":true}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for resubmission, got %d", resp.Code)
	}

	var record struct {
		IsHelpful bool   `json:"isHelpful"`
		Comment   string `json:"comment"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.IsHelpful || record.Comment != "too vague" {
		t.Fatalf("resubmission must surface the original record, got %+v", record)
	}
}

func TestFeedbackUnhelpfulRequiresComment(t *testing.T) {
	r, _ := setupRouter(t, &stubGenerator{})

	resp := doJSON(t, r, http.MethodPost, "/chat/feedback", `{"messageId":"m1","isHelpful":false}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

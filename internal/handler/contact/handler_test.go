package contact

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	mailService "github.com/getactive-kenya/backend/internal/service/mail"
)

type stubMailer struct {
	err error
	got mailService.ContactMessage
}

func (s *stubMailer) SendContact(_ context.Context, msg mailService.ContactMessage) error {
	s.got = msg
	return s.err
}

func postEmail(t *testing.T, mailer *stubMailer, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	New(mailer).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/send-email", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSendEmailRequiresFields(t *testing.T) {
	mailer := &stubMailer{}

	resp := postEmail(t, mailer, `{"name":"Achieng","email":"a@example.com"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if mailer.got.Name != "" {
		t.Fatal("invalid submissions must not reach the mailer")
	}
}

func TestSendEmailSuccess(t *testing.T) {
	mailer := &stubMailer{}

	body := `{"subject":"Booking question","name":"Achieng","email":"a@example.com","message":"Do you offer evening sessions?"}`
	resp := postEmail(t, mailer, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if mailer.got.Subject != "Booking question" || mailer.got.Email != "a@example.com" {
		t.Fatalf("unexpected forwarded message: %+v", mailer.got)
	}
}

func TestSendEmailNotConfigured(t *testing.T) {
	mailer := &stubMailer{err: mailService.ErrNotConfigured}

	body := `{"name":"Achieng","email":"a@example.com","message":"hello"}`
	resp := postEmail(t, mailer, body)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

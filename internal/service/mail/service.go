package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/getactive-kenya/backend/internal/config"
)

// ErrNotConfigured means the SendGrid credential or addresses were missing.
var ErrNotConfigured = errors.New("email service is not configured")

// sender narrows the SendGrid client so tests can stub it.
type sender interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// Service delivers transactional email through SendGrid.
type Service struct {
	client sender
	cfg    config.MailConfig
}

// NewService builds the mail service. Missing configuration does not fail
// startup; every send fails fast with ErrNotConfigured instead.
func NewService(cfg config.MailConfig) *Service {
	svc := &Service{cfg: cfg}
	if cfg.Enabled() {
		svc.client = sendgrid.NewSendClient(cfg.APIKey)
	} else {
		log.Printf("[mail] SendGrid not configured, email requests will fail fast")
	}
	return svc
}

// Enabled reports whether outgoing mail can be sent.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// ContactMessage is one contact form submission.
type ContactMessage struct {
	Subject string
	Name    string
	Email   string
	Message string
}

// SendContact forwards a contact form submission to the site owner with the
// visitor's address as Reply-To.
func (s *Service) SendContact(ctx context.Context, msg ContactMessage) error {
	if s.client == nil {
		return ErrNotConfigured
	}

	subject := msg.Subject
	if subject == "" {
		subject = "New contact form submission"
	}

	email := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.cfg.FromName, s.cfg.From),
		fmt.Sprintf("%s from %s", subject, msg.Name),
		sgmail.NewEmail("", s.cfg.To),
		contactText(msg),
		contactHTML(msg),
	)
	email.SetReplyTo(sgmail.NewEmail(msg.Name, msg.Email))

	return s.send(ctx, email)
}

// SendBookingConfirmation notifies the visitor that their session request
// was received.
func (s *Service) SendBookingConfirmation(ctx context.Context, name, email, sessionType, date, eventLink string) error {
	if s.client == nil {
		return ErrNotConfigured
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nYour %s on %s has been requested. We will confirm shortly.\n\n%s\nGetActive Kenya",
		name, sessionType, date, eventLink,
	)
	htmlBody := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your <strong>%s</strong> on <strong>%s</strong> has been requested. We will confirm shortly.</p><p><a href="%s">View the appointment</a></p><p>GetActive Kenya</p>`,
		htmlEscape(name), htmlEscape(sessionType), htmlEscape(date), eventLink,
	)

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.cfg.FromName, s.cfg.From),
		"Your GetActive Kenya booking request",
		sgmail.NewEmail(name, email),
		text,
		htmlBody,
	)

	return s.send(ctx, message)
}

func (s *Service) send(ctx context.Context, email *sgmail.SGMailV3) error {
	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, strings.TrimSpace(resp.Body))
	}
	return nil
}

func contactText(msg ContactMessage) string {
	subject := msg.Subject
	if subject == "" {
		subject = "N/A"
	}
	return fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\n\nMessage:\n%s", msg.Name, msg.Email, subject, msg.Message)
}

func contactHTML(msg ContactMessage) string {
	subject := msg.Subject
	if subject == "" {
		subject = "N/A"
	}
	body := strings.ReplaceAll(htmlEscape(msg.Message), "\n", "<br>")
	return fmt.Sprintf(`<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<h4>Message:</h4>
<p>%s</p>`, htmlEscape(msg.Name), htmlEscape(msg.Email), htmlEscape(subject), body)
}

func htmlEscape(s string) string {
	return html.EscapeString(s)
}

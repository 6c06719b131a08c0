package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/getactive-kenya/backend/internal/config"
)

// Booking is one appointment request from the booking form.
type Booking struct {
	Name        string
	Email       string
	SessionType string
	Date        time.Time
}

// Service creates appointment events on the practice calendar. Token
// exchange is delegated entirely to the oauth2 library using the refresh
// token persisted in the environment.
type Service struct {
	events     *gcal.EventsService
	calendarID string
	timeZone   string
}

// NewService builds the calendar client from an offline refresh token.
func NewService(ctx context.Context, cfg config.CalendarConfig) (*Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("google calendar credentials are not configured")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarEventsScope},
	}
	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gcal.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("create calendar client: %w", err)
	}

	return &Service{
		events:     svc.Events,
		calendarID: cfg.CalendarID,
		timeZone:   cfg.TimeZone,
	}, nil
}

// CreateBooking inserts an all-day event for the requested session and
// invites the visitor. Returns the event link.
func (s *Service) CreateBooking(ctx context.Context, booking Booking) (string, error) {
	day := booking.Date.Format("2006-01-02")

	event := &gcal.Event{
		Summary:     fmt.Sprintf("%s - %s", booking.SessionType, booking.Name),
		Description: fmt.Sprintf("Session requested via the website booking form.\nName: %s\nEmail: %s", booking.Name, booking.Email),
		Start:       &gcal.EventDateTime{Date: day, TimeZone: s.timeZone},
		End:         &gcal.EventDateTime{Date: day, TimeZone: s.timeZone},
		Attendees:   []*gcal.EventAttendee{{Email: booking.Email, DisplayName: booking.Name}},
	}

	created, err := s.events.Insert(s.calendarID, event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert booking event: %w", err)
	}
	return created.HtmlLink, nil
}

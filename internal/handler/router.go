package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/getactive-kenya/backend/internal/handler/booking"
	"github.com/getactive-kenya/backend/internal/handler/chat"
	"github.com/getactive-kenya/backend/internal/handler/chatbot"
	"github.com/getactive-kenya/backend/internal/handler/contact"
	middlewarePkg "github.com/getactive-kenya/backend/internal/middleware"
	chatService "github.com/getactive-kenya/backend/internal/service/chat"
	feedbackService "github.com/getactive-kenya/backend/internal/service/feedback"
	mailService "github.com/getactive-kenya/backend/internal/service/mail"
	"github.com/getactive-kenya/backend/internal/service/session"
	"github.com/getactive-kenya/backend/pkg/utils"
)

// Deps bundles the services the router wires into handlers.
type Deps struct {
	Store     *session.Store
	ChatSvc   *chatService.Service
	Generator chatbot.Generator
	Recorder  *feedbackService.Recorder
	Mail      *mailService.Service
	Scheduler booking.Scheduler
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("GetActive Kenya backend is running"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})

		chatbot.New(deps.Generator).RegisterRoutes(api)
		chat.New(deps.Store, deps.ChatSvc, deps.Recorder).RegisterRoutes(api)
		contact.New(deps.Mail).RegisterRoutes(api)
		booking.New(deps.Scheduler, deps.Mail).RegisterRoutes(api)
	})

	return r
}

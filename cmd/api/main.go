package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/getactive-kenya/backend/internal/config"
	"github.com/getactive-kenya/backend/internal/handler"
	"github.com/getactive-kenya/backend/internal/service/ai"
	"github.com/getactive-kenya/backend/internal/service/calendar"
	chatservice "github.com/getactive-kenya/backend/internal/service/chat"
	feedbackservice "github.com/getactive-kenya/backend/internal/service/feedback"
	mailservice "github.com/getactive-kenya/backend/internal/service/mail"
	"github.com/getactive-kenya/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogging(cfg.Log)

	// Conversation store and generation gateway
	store := session.NewStore(cfg.Session.DataDir)

	aiService, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}
	if aiService.Enabled() {
		log.Printf("AI service initialized with model %s", cfg.AI.Model)
	} else {
		log.Println("GEMINI_API_KEY missing, chatbot requests will return a configuration error")
	}

	chatSvc := chatservice.NewService(store, aiService)
	recorder := feedbackservice.NewRecorder(cfg.Feedback.CollectorURL)
	defer recorder.Wait()

	mailSvc := mailservice.NewService(cfg.Mail)

	// Calendar integration is optional; bookings return 503 without it.
	var scheduler *calendar.Service
	if cfg.Calendar.Enabled() {
		scheduler, err = calendar.NewService(ctx, cfg.Calendar)
		if err != nil {
			log.Printf("warning: failed to initialize calendar service: %v", err)
			log.Println("continuing without booking functionality")
		} else {
			log.Println("Calendar service initialized successfully")
		}
	} else {
		log.Println("Google Calendar credentials not configured, skipping booking integration")
	}

	deps := handler.Deps{
		Store:     store,
		ChatSvc:   chatSvc,
		Generator: aiService,
		Recorder:  recorder,
		Mail:      mailSvc,
	}
	if scheduler != nil {
		deps.Scheduler = scheduler
	}

	startServer(ctx, cfg.Server, handler.NewRouter(deps))
}

// setupLogging mirrors process logs to a rotating file when configured.
func setupLogging(cfg config.LogConfig) {
	if cfg.File == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("GetActive Kenya backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every runtime setting for the service.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Mail     MailConfig
	Calendar CalendarConfig
	Session  SessionConfig
	Feedback FeedbackConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		AI:       ai,
		Mail:     loadMailConfig(),
		Calendar: loadCalendarConfig(),
		Session:  loadSessionConfig(),
		Feedback: loadFeedbackConfig(),
		Log:      loadLogConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3001"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":3001" or "127.0.0.1:3001" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the Gemini generation settings.
type AIConfig struct {
	APIKey          string
	Model           string
	Temperature     *float64
	MaxOutputTokens *int
	TimeoutSeconds  int
}

// Enabled reports whether the Gemini credential is present.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("GEMINI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("GEMINI_MAX_OUTPUT_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeout := 60
	if override, err := parseOptionalIntEnv("GEMINI_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		timeout = *override
	}

	return AIConfig{
		APIKey:          strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:           getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		Temperature:     temperature,
		MaxOutputTokens: maxTokens,
		TimeoutSeconds:  timeout,
	}, nil
}

// MailConfig describes the SendGrid transactional mail settings.
type MailConfig struct {
	APIKey   string
	From     string
	FromName string
	To       string
}

// Enabled reports whether outgoing mail can be sent.
func (c MailConfig) Enabled() bool {
	return c.APIKey != "" && c.From != "" && c.To != ""
}

func loadMailConfig() MailConfig {
	return MailConfig{
		APIKey:   strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		From:     strings.TrimSpace(os.Getenv("EMAIL_FROM")),
		FromName: getEnvOrDefault("EMAIL_FROM_NAME", "GetActive Kenya"),
		To:       strings.TrimSpace(os.Getenv("EMAIL_TO")),
	}
}

// CalendarConfig describes the Google Calendar OAuth2 settings. The refresh
// token is persisted in the environment; no interactive flow happens here.
type CalendarConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	CalendarID   string
	TimeZone     string
}

// Enabled reports whether booking events can be created.
func (c CalendarConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

func loadCalendarConfig() CalendarConfig {
	return CalendarConfig{
		ClientID:     strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		ClientSecret: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET")),
		RefreshToken: strings.TrimSpace(os.Getenv("GOOGLE_REFRESH_TOKEN")),
		CalendarID:   getEnvOrDefault("GOOGLE_CALENDAR_ID", "primary"),
		TimeZone:     getEnvOrDefault("BOOKING_TIMEZONE", "Africa/Nairobi"),
	}
}

// SessionConfig describes where the widget session is persisted.
type SessionConfig struct {
	DataDir string
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		DataDir: getEnvOrDefault("SESSION_DATA_DIR", "./data"),
	}
}

// FeedbackConfig describes the optional feedback collector.
type FeedbackConfig struct {
	CollectorURL string
}

func loadFeedbackConfig() FeedbackConfig {
	return FeedbackConfig{
		CollectorURL: strings.TrimSpace(os.Getenv("FEEDBACK_COLLECTOR_URL")),
	}
}

// LogConfig describes optional rotating file output for the process log.
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
}

func loadLogConfig() LogConfig {
	maxSize := 10
	if override, err := parseOptionalIntEnv("LOG_MAX_SIZE_MB"); err == nil && override != nil && *override > 0 {
		maxSize = *override
	}
	maxBackups := 3
	if override, err := parseOptionalIntEnv("LOG_MAX_BACKUPS"); err == nil && override != nil && *override >= 0 {
		maxBackups = *override
	}
	return LogConfig{
		File:       strings.TrimSpace(os.Getenv("LOG_FILE")),
		MaxSizeMB:  maxSize,
		MaxBackups: maxBackups,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

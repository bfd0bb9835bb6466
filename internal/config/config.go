// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidValue is returned when an environment variable cannot be parsed.
var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds every setting the service reads at startup.
type Config struct {
	Port        string
	Environment string
	CompanyName string

	UseMemoryStore bool
	Database       DatabaseConfig

	Twilio TwilioConfig

	DefaultPhoneRegion string
	SessionIdleTTL     time.Duration
	SweepInterval      time.Duration

	RedisURL  string
	DedupeTTL time.Duration

	Media MediaConfig
	SMTP  SMTPConfig

	AdminAPIKey        string
	AdminRatePerMinute int
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	Name                   string
	InstanceConnectionName string
}

// TwilioConfig holds the WhatsApp transport credentials.
type TwilioConfig struct {
	AccountSID        string
	AuthToken         string
	WhatsAppFrom      string
	DisableValidation bool
	WebhookPublicURL  string
}

// Configured reports whether outbound WhatsApp messages can be sent.
func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.WhatsAppFrom != ""
}

// MediaConfig selects where quote PDFs are published for Twilio to fetch.
type MediaConfig struct {
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	MinIOBucket    string

	Dir           string
	PublicBaseURL string

	Retention time.Duration
	URLTTL    time.Duration
}

// MinIOEnabled reports whether object storage is configured.
func (m MediaConfig) MinIOEnabled() bool {
	return m.MinIOEndpoint != "" && m.MinIOAccessKey != "" && m.MinIOSecretKey != ""
}

// SMTPConfig holds the archive mailer settings.
type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	ArchiveEmail string
}

// Enabled reports whether quote copies should be mailed to the archive inbox.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != "" && s.ArchiveEmail != ""
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// LoadEnvFiles loads .env files for local development. Missing files are ignored.
func LoadEnvFiles(paths ...string) bool {
	if len(paths) == 0 {
		paths = []string{".env", "environments/.env.development"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return true
		}
	}
	return false
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	p := &parser{}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CompanyName: getEnv("COMPANY_NAME", "Serigraph"),

		UseMemoryStore: p.bool("USE_MEMORY_STORE", false),
		Database: DatabaseConfig{
			Host:                   getEnv("DB_HOST", "localhost"),
			Port:                   p.int("DB_PORT", 5432),
			User:                   getEnv("DB_USER", "postgres"),
			Password:               os.Getenv("DB_PASS"),
			Name:                   getEnv("DB_NAME", "quotebot"),
			InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		},

		Twilio: TwilioConfig{
			AccountSID:        os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:         os.Getenv("TWILIO_AUTH_TOKEN"),
			WhatsAppFrom:      os.Getenv("TWILIO_WHATSAPP_FROM"),
			DisableValidation: p.bool("DISABLE_WEBHOOK_VALIDATION", false),
			WebhookPublicURL:  strings.TrimRight(os.Getenv("WEBHOOK_PUBLIC_URL"), "/"),
		},

		DefaultPhoneRegion: strings.ToUpper(getEnv("DEFAULT_PHONE_REGION", "MX")),
		SessionIdleTTL:     p.duration("SESSION_IDLE_TTL", 0),
		SweepInterval:      p.duration("SWEEP_INTERVAL", 5*time.Minute),

		RedisURL:  os.Getenv("REDIS_URL"),
		DedupeTTL: p.duration("DEDUPE_TTL", 24*time.Hour),

		Media: MediaConfig{
			MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
			MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
			MinIOUseSSL:    p.bool("MINIO_USE_SSL", false),
			MinIOBucket:    getEnv("MINIO_BUCKET", "quotes"),
			Dir:            getEnv("MEDIA_DIR", "temp_pdfs"),
			PublicBaseURL:  strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
			Retention:      p.duration("MEDIA_RETENTION", 24*time.Hour),
			URLTTL:         p.duration("MEDIA_URL_TTL", 24*time.Hour),
		},

		SMTP: SMTPConfig{
			Host:         os.Getenv("SMTP_HOST"),
			Port:         p.int("SMTP_PORT", 587),
			Username:     os.Getenv("SMTP_USER"),
			Password:     os.Getenv("SMTP_PASS"),
			From:         os.Getenv("SMTP_FROM"),
			ArchiveEmail: os.Getenv("QUOTE_ARCHIVE_EMAIL"),
		},

		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		AdminRatePerMinute: p.int("ADMIN_RATE_PER_MINUTE", 60),
	}

	if p.err != nil {
		return nil, p.err
	}
	if cfg.SessionIdleTTL < 0 {
		return nil, fmt.Errorf("%w: SESSION_IDLE_TTL must not be negative", ErrInvalidValue)
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("%w: SWEEP_INTERVAL must be positive", ErrInvalidValue)
	}
	if cfg.AdminRatePerMinute <= 0 {
		return nil, fmt.Errorf("%w: ADMIN_RATE_PER_MINUTE must be positive", ErrInvalidValue)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parser keeps the first parse failure so Load can report it once.
type parser struct {
	err error
}

func (p *parser) fail(key, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, key, raw, err)
	}
}

func (p *parser) bool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) int(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Session store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Port string

	// LINE channel credentials. Opaque to the dialog core.
	ChannelSecret      string
	ChannelAccessToken string

	// Optional outbound integrations.
	SheetsWebhookURL string
	SlackWebhookURL  string

	// Substituted into the privacy-consent prompt.
	PrivacyURL string

	// Session persistence.
	SessionBackend string
	DBPath         string
	RedisAddr      string
	SessionTTL     time.Duration // redis only; 0 = keep forever

	// Local WebSocket chat for driving the dialog without LINE credentials.
	DevChatEnabled bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		ChannelSecret:      getEnv("CHANNEL_SECRET", ""),
		ChannelAccessToken: getEnv("CHANNEL_ACCESS_TOKEN", ""),
		SheetsWebhookURL:   getEnv("SHEETS_WEBHOOK_URL", ""),
		SlackWebhookURL:    getEnv("SLACK_WEBHOOK_URL", ""),
		PrivacyURL:         getEnv("PRIVACY_URL", ""),
		SessionBackend:     getEnv("SESSION_BACKEND", BackendMemory),
		DBPath:             getEnv("DB_PATH", "./data/sessions.db"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 0),
		DevChatEnabled:     getEnvBool("DEV_CHAT_ENABLED", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if !c.DevChatEnabled {
		if c.ChannelSecret == "" {
			return fmt.Errorf("CHANNEL_SECRET is required")
		}
		if c.ChannelAccessToken == "" {
			return fmt.Errorf("CHANNEL_ACCESS_TOKEN is required")
		}
	}
	switch c.SessionBackend {
	case BackendMemory, BackendRedis:
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty with SESSION_BACKEND=sqlite")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}

// HasLINECredentials reports whether the LINE channel can be served.
func (c *Config) HasLINECredentials() bool {
	return c.ChannelSecret != "" && c.ChannelAccessToken != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

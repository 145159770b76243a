// ABOUTME: Deployment configuration from environment variables
// ABOUTME: Loads .env via godotenv when present; env always wins over defaults
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the deployment configuration every command shares.
type Config struct {
	VapiAPIKey    string
	VapiBaseURL   string
	WebhookURL    string
	WebhookSecret string
	SheetID       string
	SheetTab      string
	MailFrom      string
	Port          int
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing required values surface when a command needs
// them, not here, so read-only commands stay usable.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		VapiAPIKey:    os.Getenv("VAPI_API_KEY"),
		VapiBaseURL:   getenv("VAPI_BASE_URL", "https://api.vapi.ai"),
		WebhookURL:    os.Getenv("WEBHOOK_URL"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		SheetID:       os.Getenv("SHEET_ID"),
		SheetTab:      getenv("SHEET_TAB", "Contacts"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		Port:          getenvInt("PORT", 8090),
	}
}

// RequirePlatform checks the platform-client settings.
func (c *Config) RequirePlatform() error {
	if c.VapiAPIKey == "" {
		return fmt.Errorf("VAPI_API_KEY is not set")
	}
	return nil
}

// RequireSheet checks the spreadsheet settings.
func (c *Config) RequireSheet() error {
	if c.SheetID == "" {
		return fmt.Errorf("SHEET_ID is not set")
	}
	return nil
}

// RequireWebhook checks the server-callback settings used when building
// tool and assistant payloads.
func (c *Config) RequireWebhook() error {
	if c.WebhookURL == "" {
		return fmt.Errorf("WEBHOOK_URL is not set")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is not set")
	}
	return nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramBotToken string
	WebhookURL       string
	Port             string

	OCRURL    string
	OCRAPIKey string

	GeminiAPIKey string
	GeminiModel  string

	SessionTimeout time.Duration

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
		Port:             getEnv("PORT", "8000"),

		OCRURL:    os.Getenv("OCR_URL"),
		OCRAPIKey: os.Getenv("OCR_API_KEY"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		SessionTimeout: 60 * time.Second,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if v := os.Getenv("SESSION_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT_SECONDS: %q", v)
		}
		cfg.SessionTimeout = time.Duration(n) * time.Second
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.OCRURL == "" {
		return fmt.Errorf("OCR_URL is required")
	}
	if c.OCRAPIKey == "" {
		return fmt.Errorf("OCR_API_KEY is required")
	}
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

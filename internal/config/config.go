package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ErrMissingAPIKey means the Gemini credential is absent from the
// environment. Nothing can run without it.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

type Config struct {
	APIKey       string
	TextModel    string
	ImageModel   string
	RedisURL     string // optional scene-image cache; empty disables caching
	Locale       string
	Environment  string
	LogLevel     slog.Level
	LogFile      string
	TextTimeout  time.Duration
	ImageTimeout time.Duration
}

func Load() *Config {
	return &Config{
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		TextModel:    getEnv("TEXT_MODEL", "gemini-2.5-flash"),
		ImageModel:   getEnv("IMAGE_MODEL", "imagen-3.0-generate-002"),
		RedisURL:     os.Getenv("REDIS_URL"),
		Locale:       getEnv("CHRONICLER_LANG", "en"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:      getEnv("LOG_FILE", "chronicler.log"),
		TextTimeout:  parseDuration(getEnv("TEXT_TIMEOUT", "60s")),
		ImageTimeout: parseDuration(getEnv("IMAGE_TIMEOUT", "120s")),
	}
}

// Validate checks the required credential up front so misconfiguration
// surfaces at one predictable point instead of on first service use.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

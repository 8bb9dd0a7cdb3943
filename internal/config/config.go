package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port       string
	CORSOrigin string

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string

	// OpenWeather provider settings. BaseURL is overridable for tests and
	// proxies; empty selects the public API.
	OpenWeatherBaseURL string
	OpenWeatherAPIKey  string

	// HTTPTimeout applies to outbound provider calls.
	HTTPTimeout time.Duration

	// UpdateSchedule is the cron expression for the periodic full refresh.
	UpdateSchedule string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "5000")
	cfg.CORSOrigin = getenvDefault("CORS_ORIGIN", "http://localhost:3000")

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.OpenWeatherBaseURL = os.Getenv("OPENWEATHER_API_URL")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Every even hour (0:00, 2:00, 4:00, ...).
	cfg.UpdateSchedule = getenvDefault("UPDATE_SCHEDULE", "0 */2 * * *")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

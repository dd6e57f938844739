// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Postgres
	PostgresDSN string

	// MongoDB
	MongoURI string
	MongoDB  string

	// Friday server (external job scheduler)
	FridayServerURL    string
	FridayServerSecret string
	// Base URL this service is reachable at, used to build callback URLs.
	ClientBaseURL string

	// Flight data provider
	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string
	CarrierCode         string

	// Journal
	OpenAIAPIKey   string
	NoteWebhookURL string

	// Logging
	LogsDirectory string

	// Maintenance
	PurgeSchedule  string
	PurgeRetention time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=checkin port=5432 sslmode=disable"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "checkin"),

		FridayServerURL:    getEnv("FRIDAY_SERVER_URL", ""),
		FridayServerSecret: getEnv("FRIDAY_SERVER_SECRET", ""),
		ClientBaseURL:      getEnv("FRIDAY_CLIENT_URL", "http://localhost:8080"),

		AmadeusBaseURL:      getEnv("AMADEUS_BASE_URL", "https://api.amadeus.com"),
		AmadeusClientID:     getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret: getEnv("AMADEUS_CLIENT_SECRET", ""),
		CarrierCode:         getEnv("CARRIER_CODE", "WN"),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		NoteWebhookURL: getEnv("NOTE_WEBHOOK_URL", ""),

		LogsDirectory: getEnv("LOGS_DIRECTORY", ""),

		PurgeSchedule:  getEnv("PURGE_SCHEDULE", "0 3 * * *"),
		PurgeRetention: time.Duration(getEnvAsInt("PURGE_RETENTION_DAYS", 90)) * 24 * time.Hour,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

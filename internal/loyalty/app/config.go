package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer         string        // Optional: issuer claim for tokens (default: tally)
	DatabaseFile   string        // Optional: path to SQLite database file (default: ./tally.db)
	QueueFeedPath  string        // Optional: path to the gate counter CSV feed (default: ./queue_data.csv)
	HostCodeSecret string        // Optional: base32 TOTP secret for the host QR code
	AccessTokenTTL time.Duration // Optional: access token lifetime (default: 15m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		Issuer:         getEnvOrDefault("TALLY_ISSUER", "tally"),
		DatabaseFile:   getEnvOrDefault("TALLY_DATABASE_FILE", "tally.db"),
		QueueFeedPath:  getEnvOrDefault("TALLY_QUEUE_FEED", "queue_data.csv"),
		HostCodeSecret: getEnvOrDefault("TALLY_HOST_CODE_SECRET", "JBSWY3DPEHPK3PXP"),
		AccessTokenTTL: getEnvDurationOrDefault("TALLY_ACCESS_TOKEN_TTL", 15*time.Minute),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}

package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/emberchat/ember/pkg/jwtx"
)

type Config struct {
	Issuer    string // Issuer claim for session tokens (default: ember-auth)
	JWTSecret string // Required: HMAC secret for session tokens (min 32 bytes)

	GitHubClientID     string // Required: GitHub OAuth app client id
	GitHubClientSecret string // Required: GitHub OAuth app client secret
	GitHubTokenURL     string // Optional: override for GitHub's token endpoint (tests)
	GitHubAPIURL       string // Optional: override for GitHub's API base URL (tests)

	SessionTTL          time.Duration // Optional: session token lifetime (default: 24h)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./auth.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:    getEnvOrDefault("AUTH_ISSUER", "ember-auth"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubTokenURL:     os.Getenv("GITHUB_TOKEN_URL"),
		GitHubAPIURL:       os.Getenv("GITHUB_API_URL"),

		SessionTTL:          getEnvDurationOrDefault("SESSION_TTL", jwtx.DefaultSessionTTL),
		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate catches configuration faults at startup so they never surface as
// per-request failures.
func (c Config) Validate() error {
	if c.GitHubClientID == "" {
		return errors.New("GITHUB_CLIENT_ID is required")
	}
	if c.GitHubClientSecret == "" {
		return errors.New("GITHUB_CLIENT_SECRET is required")
	}
	if len(c.JWTSecret) < jwtx.MinSecretLen {
		return errors.New("JWT_SECRET is required and must be at least 32 bytes")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
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

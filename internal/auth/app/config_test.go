package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Issuer:             "ember-auth",
		JWTSecret:          "0123456789abcdef0123456789abcdef",
		GitHubClientID:     "client-id",
		GitHubClientSecret: "client-secret",
		SessionTTL:         24 * time.Hour,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("accepts a complete config", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("rejects missing github client id", func(t *testing.T) {
		cfg := validConfig()
		cfg.GitHubClientID = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects missing github client secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.GitHubClientSecret = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects a short jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = "too-short"
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects a non-positive session ttl", func(t *testing.T) {
		cfg := validConfig()
		cfg.SessionTTL = 0
		require.Error(t, cfg.Validate())
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"AUTH_ISSUER", "AUTH_DATABASE_FILE", "PORT", "SESSION_TTL", "SHUTDOWN_GRACE_PERIOD",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Equal(t, "ember-auth", cfg.Issuer)
	require.Equal(t, "auth.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

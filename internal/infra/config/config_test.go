package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.App.Env)
	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, "localhost", cfg.Postgres.Host)
	require.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
	require.Equal(t, 100, cfg.Audit.HistoryLimit)
	require.NotZero(t, cfg.Argon2.Memory)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GYM_APP_PORT", "9090")
	t.Setenv("GYM_POSTGRES_DATABASE", "gym_test")
	t.Setenv("GYM_JWT_SIGNING_SECRET", "from-env")
	t.Setenv("GYM_AUDIT_HISTORY_LIMIT", "25")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.App.Port)
	require.Equal(t, "gym_test", cfg.Postgres.Database)
	require.Equal(t, "from-env", cfg.JWT.SigningSecret)
	require.Equal(t, 25, cfg.Audit.HistoryLimit)
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	t.Setenv("GYM_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "signing_secret")
}

func TestValidateProductionWithSecret(t *testing.T) {
	t.Setenv("GYM_APP_ENV", "production")
	t.Setenv("GYM_JWT_SIGNING_SECRET", "sufficiently-long-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.App.Env)
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("GYM_JWT_ACCESS_TOKEN_TTL", "-1h")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "access_token_ttl")
}

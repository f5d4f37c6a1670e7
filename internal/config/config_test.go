package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS256", cfg.Auth.JWTAlgorithm)
	assert.Equal(t, DevJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 480*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.True(t, cfg.Auth.RotateRefreshTokens)
	assert.Equal(t, []string{"https://frontend-kwaka.vercel.app"}, cfg.CORS.Origins)
	assert.Equal(t, "0.0.0.0:8000", cfg.App.Addr())
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, 10, cfg.RateLimit.LoginMax)
	assert.Equal(t, 50, cfg.RateLimit.LoginIPMax)
}

func TestLoadDatabaseURLFallback(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("DATABASE_URL", "postgres://kintai@localhost:5432/kintai")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://kintai@localhost:5432/kintai", cfg.Postgres.DSN)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_ALGORITHM", "HS512")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_CLOCK_SKEW_SECONDS", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RATE_LIMIT_LOGIN_WINDOW_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.Auth.JWTAlgorithm)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 5*time.Second, cfg.Auth.ClockSkew())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins)
	assert.Equal(t, time.Minute, cfg.RateLimit.LoginWindow())
}

func TestLoadRejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_SEED_DEMO_EMPLOYEES", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("AUTH_JWT_SECRET", "a-real-secret")
	_, err = Load()
	require.NoError(t, err)
}

func TestSeedDemoEmployeesDefaultsByEnvironment(t *testing.T) {
	t.Setenv("AUTH_SEED_DEMO_EMPLOYEES", "")
	t.Setenv("AUTH_JWT_SECRET", "a-real-secret")

	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.SeedDemoEmployees)

	t.Setenv("APP_ENV", "Production")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.Auth.SeedDemoEmployees)
}

func TestLoadRejectsDemoSeedingInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "a-real-secret")
	t.Setenv("AUTH_SEED_DEMO_EMPLOYEES", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_SEED_DEMO_EMPLOYEES")
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{AccessTokenTTLMinutes: 0, RefreshTokenTTLDays: 30}}
	require.Error(t, cfg.Validate())

	cfg.Auth.AccessTokenTTLMinutes = 1
	cfg.Auth.RefreshTokenTTLDays = -1
	require.Error(t, cfg.Validate())
}

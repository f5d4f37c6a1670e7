package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kintai-system/attendance-api/internal/config"
)

func TestMigrationURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/kintai?sslmode=disable":   "pgx5://u:p@localhost:5432/kintai?sslmode=disable",
		"postgresql://u:p@localhost:5432/kintai?sslmode=disable": "pgx5://u:p@localhost:5432/kintai?sslmode=disable",
		"pgx5://localhost/kintai":                                "pgx5://localhost/kintai",
	}
	for in, want := range tests {
		assert.Equal(t, want, MigrationURL(in))
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	up, err := migrationFS.ReadFile("migrations/000001_create_employees.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "employee_number CHAR(7)      NOT NULL UNIQUE")
}

func TestDisabledBackends(t *testing.T) {
	logger := zap.NewNop()

	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()

	rdb := NewRedis(config.RedisConfig{}, logger)
	assert.False(t, rdb.Enabled())
	assert.Error(t, rdb.Ping(context.Background()))
	rdb.Close()

	assert.NoError(t, RunMigrations("", logger))
}

func TestPostgresIntegration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	logger := zap.NewNop()

	require.NoError(t, RunMigrations(dsn, logger))
	require.NoError(t, RunMigrations(dsn, logger))

	pg, err := NewPostgres(context.Background(), config.PostgresConfig{DSN: dsn, ConnectAttempts: 2}, logger)
	require.NoError(t, err)
	defer pg.Close()
	assert.True(t, pg.Enabled())
	assert.NoError(t, pg.Ping(context.Background()))
}

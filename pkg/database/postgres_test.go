package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/healthcare-portal/pkg/retry"
)

func TestDefaultPostgresConfig(t *testing.T) {
	cfg := DefaultPostgresConfig()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "healthcare", cfg.Database)
	assert.Empty(t, cfg.Password)
	require.NotNil(t, cfg.Retry)
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := &PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=require", cfg.DSN())
}

func TestNewPostgres_Unreachable(t *testing.T) {
	cfg := DefaultPostgresConfig()
	cfg.Port = 1
	cfg.ConnectTimeout = 200 * time.Millisecond
	cfg.Retry = &retry.Config{MaxRetries: 1, InitialInterval: 10 * time.Millisecond, MaxInterval: 10 * time.Millisecond, Multiplier: 1}

	_, err := NewPostgres(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrMaxRetriesExceeded)
	assert.Contains(t, err.Error(), "localhost:1")
}

func TestMigrate_WrapsErrors(t *testing.T) {
	prev := gooseUp
	t.Cleanup(func() { gooseUp = prev })

	var gotDir string
	gooseUp = func(_ context.Context, _ *PostgresDB, dir string) error {
		gotDir = dir
		return errors.New("boom")
	}

	db := &PostgresDB{}
	err := db.Migrate(context.Background(), fstest.MapFS{})
	require.Error(t, err)
	assert.Equal(t, ".", gotDir)
	assert.Contains(t, err.Error(), "apply migrations")
}

func TestNewPostgres_Integration(t *testing.T) {
	if os.Getenv("TEST_POSTGRES_HOST") == "" {
		t.Skip("TEST_POSTGRES_HOST not set")
	}
	cfg := DefaultPostgresConfig()
	cfg.Host = os.Getenv("TEST_POSTGRES_HOST")
	cfg.Password = os.Getenv("TEST_POSTGRES_PASSWORD")
	if name := os.Getenv("TEST_POSTGRES_DB"); name != "" {
		cfg.Database = name
	}

	db, err := NewPostgres(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck(context.Background()))
}

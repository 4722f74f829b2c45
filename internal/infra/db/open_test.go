package db

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestLoadConnectionConfig(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		wantDriver   string
		wantDSN      string
		wantMaxOpen  int
		wantFallback bool
	}{
		{
			name:        "defaults",
			env:         map[string]string{"DATABASE_URL": "postgres://x"},
			wantDriver:  DriverPostgres,
			wantDSN:     "postgres://x",
			wantMaxOpen: 25,
		},
		{
			name:        "sqlite without url uses default path",
			env:         map[string]string{"DB_DRIVER": "sqlite"},
			wantDriver:  DriverSQLite,
			wantDSN:     DefaultSQLitePath,
			wantMaxOpen: 25,
		},
		{
			name:         "unknown driver and bad pool size fall back",
			env:          map[string]string{"DB_DRIVER": "mysql", "DB_MAX_OPEN_CONNS": "-3", "DATABASE_URL": "postgres://y"},
			wantDriver:   DriverPostgres,
			wantDSN:      "postgres://y",
			wantMaxOpen:  25,
			wantFallback: true,
		},
		{
			name:        "custom pool size",
			env:         map[string]string{"DB_MAX_OPEN_CONNS": "50"},
			wantDriver:  DriverPostgres,
			wantMaxOpen: 50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"DB_DRIVER", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, c := LoadConnectionConfig(slog.Default())

			assert.Equal(t, tt.wantDriver, cfg.Driver)
			assert.Equal(t, tt.wantDSN, cfg.DSN)
			assert.Equal(t, tt.wantMaxOpen, cfg.MaxOpenConns)
			assert.Equal(t, tt.wantFallback, len(c.Warnings) > 0)
		})
	}
}

func TestOpen_SQLite(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Driver = DriverSQLite
	cfg.DSN = filepath.Join(t.TempDir(), "test.db")

	store, err := Open(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.NoError(t, store.Ping(context.Background()))
	n, err := store.Cryptocurrencies.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), ConnectionConfig{Driver: "oracle"}, slog.Default())
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")

	_, err = Open(context.Background(), ConnectionConfig{Driver: DriverPostgres}, slog.Default())
	assert.ErrorContains(t, err, "DATABASE_URL not set")
}

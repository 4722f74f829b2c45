// Package db opens the configured storage backend and hands out its repositories.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crypto-feed/internal/infra/adapter/persistence/postgres"
	"crypto-feed/internal/infra/adapter/persistence/sqlite"
	"crypto-feed/internal/pkg/config"
	"crypto-feed/internal/repository"
)

// Supported DB_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultSQLitePath is used when DB_DRIVER=sqlite and DATABASE_URL is unset.
const DefaultSQLitePath = "crypto-feed.db"

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		Driver:          DriverPostgres,
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// LoadConnectionConfig reads DB_DRIVER, DATABASE_URL and the pool settings from the
// environment. Invalid pool values fall back to the defaults.
func LoadConnectionConfig(log *slog.Logger) (ConnectionConfig, *config.Collector) {
	def := DefaultConnectionConfig()
	c := &config.Collector{}
	positive := func(v int) error { return config.ValidateIntRange(v, 1, 10000) }

	cfg := ConnectionConfig{
		Driver: config.Track(c, "db_driver",
			config.LoadEnvWithFallback("DB_DRIVER", def.Driver, config.OneOf(DriverPostgres, DriverSQLite))),
		DSN:          config.LoadEnvString("DATABASE_URL", ""),
		MaxOpenConns: config.Track(c, "db_max_open_conns", config.LoadEnvInt("DB_MAX_OPEN_CONNS", def.MaxOpenConns, positive)),
		MaxIdleConns: config.Track(c, "db_max_idle_conns", config.LoadEnvInt("DB_MAX_IDLE_CONNS", def.MaxIdleConns, positive)),
		ConnMaxLifetime: config.Track(c, "db_conn_max_lifetime",
			config.LoadEnvDuration("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime, config.ValidatePositiveDuration)),
		ConnMaxIdleTime: config.Track(c, "db_conn_max_idle_time",
			config.LoadEnvDuration("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime, config.ValidatePositiveDuration)),
	}
	if cfg.Driver == DriverSQLite && cfg.DSN == "" {
		cfg.DSN = DefaultSQLitePath
	}
	for _, w := range c.Warnings {
		log.Warn("Configuration fallback applied", slog.String("warning", w))
	}
	return cfg, c
}

// Store bundles the repositories of one open backend.
type Store struct {
	Driver           string
	Cryptocurrencies repository.CryptocurrencyRepository
	News             repository.NewsRepository

	sqlDB *sql.DB
}

// Ping verifies the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.sqlDB.Close()
}

// Open connects to the backend named by cfg.Driver, applies the schema and returns
// its repositories.
func Open(ctx context.Context, cfg ConnectionConfig, log *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return openPostgres(ctx, cfg, log)
	case DriverSQLite:
		return openSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg ConnectionConfig, log *slog.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("DATABASE_URL not set")
	}
	sqlDB, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	applyPool(sqlDB, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := MigrateUp(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}

	log.Info("database connection established",
		slog.String("driver", DriverPostgres),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	return &Store{
		Driver:           DriverPostgres,
		Cryptocurrencies: postgres.NewCryptocurrencyRepo(sqlDB),
		News:             postgres.NewNewsRepo(sqlDB),
		sqlDB:            sqlDB,
	}, nil
}

func openSQLite(ctx context.Context, cfg ConnectionConfig, log *slog.Logger) (*Store, error) {
	gdb, err := gorm.Open(gormsqlite.Open(cfg.DSN), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer; one connection avoids "database is locked" churn.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlite.Migrate(gdb.WithContext(ctx)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	log.Info("database connection established",
		slog.String("driver", DriverSQLite),
		slog.String("path", cfg.DSN))

	return &Store{
		Driver:           DriverSQLite,
		Cryptocurrencies: sqlite.NewCryptocurrencyRepo(gdb),
		News:             sqlite.NewNewsRepo(gdb),
		sqlDB:            sqlDB,
	}, nil
}

func applyPool(db *sql.DB, cfg ConnectionConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// postgresSchema is applied in order; every statement is idempotent.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS cryptocurrencies (
    id                          BIGSERIAL PRIMARY KEY,
    symbol                      VARCHAR(32) NOT NULL,
    name                        TEXT NOT NULL,
    current_price               NUMERIC,
    market_cap                  NUMERIC,
    market_cap_rank             INTEGER,
    total_volume                NUMERIC,
    price_change_24h            NUMERIC,
    price_change_percentage_24h NUMERIC,
    circulating_supply          NUMERIC,
    total_supply                NUMERIC,
    max_supply                  NUMERIC,
    last_updated                TIMESTAMPTZ NOT NULL,
    created_at                  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at                  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_cryptocurrencies_symbol ON cryptocurrencies (UPPER(symbol))`,
	`CREATE INDEX IF NOT EXISTS idx_cryptocurrencies_market_cap_rank ON cryptocurrencies (market_cap_rank)`,
	`CREATE TABLE IF NOT EXISTS news_articles (
    id              BIGSERIAL PRIMARY KEY,
    article_id      VARCHAR(64) NOT NULL UNIQUE,
    title           TEXT NOT NULL,
    link            TEXT NOT NULL,
    keywords        JSONB,
    creators        JSONB,
    video_url       TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    content         TEXT NOT NULL DEFAULT '',
    pub_date        TIMESTAMPTZ NOT NULL,
    source_icon     TEXT NOT NULL DEFAULT '',
    source_name     TEXT NOT NULL DEFAULT '',
    source_url      TEXT NOT NULL DEFAULT '',
    source_priority INTEGER,
    country         JSONB,
    category        JSONB,
    language        VARCHAR(16) NOT NULL DEFAULT '',
    coin_mentioned  JSONB,
    sentiment       VARCHAR(32) NOT NULL DEFAULT '',
    sentiment_score DOUBLE PRECISION,
    ai_tag          JSONB,
    duplicate       BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_news_articles_pub_date ON news_articles (pub_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_news_articles_coin_mentioned ON news_articles USING gin (coin_mentioned)`,
}

// MigrateUp applies the postgres schema.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for i, stmt := range postgresSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}

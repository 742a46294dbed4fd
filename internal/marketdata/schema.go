package marketdata

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the market data tables when they do not exist.
// Called once at startup so a fresh database works out of the box.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS fundamentals_snapshots (
			id             BIGSERIAL PRIMARY KEY,
			ticker         TEXT NOT NULL,
			snapshot_at    TIMESTAMPTZ NOT NULL,
			sector         TEXT,
			industry       TEXT,
			last_price     DOUBLE PRECISION,
			market_cap     DOUBLE PRECISION,
			year_high      DOUBLE PRECISION,
			year_low       DOUBLE PRECISION,
			volume         DOUBLE PRECISION,
			eps            DOUBLE PRECISION,
			pe_ratio       DOUBLE PRECISION,
			roe            DOUBLE PRECISION,
			debt_to_equity DOUBLE PRECISION,
			profit_margin  DOUBLE PRECISION,
			current_ratio  DOUBLE PRECISION,
			total_revenue  DOUBLE PRECISION,
			volatility     DOUBLE PRECISION,
			liquidity      DOUBLE PRECISION,
			UNIQUE (ticker, snapshot_at)
		);
		CREATE INDEX IF NOT EXISTS idx_fundamentals_ticker_at
			ON fundamentals_snapshots (ticker, snapshot_at DESC);

		CREATE TABLE IF NOT EXISTS sentiment_documents (
			id         BIGSERIAL PRIMARY KEY,
			ticker     TEXT NOT NULL,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_sentiment_ticker
			ON sentiment_documents (ticker);
	`

	_, err := pool.Exec(ctx, ddl)
	return err
}

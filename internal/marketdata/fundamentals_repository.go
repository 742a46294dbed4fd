package marketdata

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpulse/backend/internal/contracts"
)

// ErrNotFound is returned when no snapshot exists for a ticker.
var ErrNotFound = errors.New("not found")

// FundamentalsRepository stores fundamentals snapshots. Snapshots are
// append-only; reads serve the latest per ticker.
type FundamentalsRepository struct {
	pool *pgxpool.Pool
}

// NewFundamentalsRepository creates a new fundamentals repository.
func NewFundamentalsRepository(pool *pgxpool.Pool) *FundamentalsRepository {
	return &FundamentalsRepository{pool: pool}
}

const fundamentalsColumns = `
	ticker, snapshot_at, sector, industry,
	last_price, market_cap, year_high, year_low, volume,
	eps, pe_ratio, roe, debt_to_equity, profit_margin,
	current_ratio, total_revenue, volatility, liquidity
`

// Save upserts a snapshot for the ticker at its snapshot time.
func (r *FundamentalsRepository) Save(ctx context.Context, f *contracts.Fundamentals) error {
	query := `
		INSERT INTO fundamentals_snapshots (` + fundamentalsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (ticker, snapshot_at) DO UPDATE SET
			sector = EXCLUDED.sector,
			industry = EXCLUDED.industry,
			last_price = EXCLUDED.last_price,
			market_cap = EXCLUDED.market_cap,
			year_high = EXCLUDED.year_high,
			year_low = EXCLUDED.year_low,
			volume = EXCLUDED.volume,
			eps = EXCLUDED.eps,
			pe_ratio = EXCLUDED.pe_ratio,
			roe = EXCLUDED.roe,
			debt_to_equity = EXCLUDED.debt_to_equity,
			profit_margin = EXCLUDED.profit_margin,
			current_ratio = EXCLUDED.current_ratio,
			total_revenue = EXCLUDED.total_revenue,
			volatility = EXCLUDED.volatility,
			liquidity = EXCLUDED.liquidity
	`

	_, err := r.pool.Exec(ctx, query,
		f.Ticker, f.Timestamp, f.Sector, f.Industry,
		f.LastPrice, f.MarketCap, f.YearHigh, f.YearLow, f.Volume,
		f.EPS, f.PERatio, f.ROE, f.DebtToEquity, f.ProfitMargin,
		f.CurrentRatio, f.TotalRevenue, f.Volatility, f.Liquidity,
	)
	return err
}

// GetLatestByTicker retrieves the most recent snapshot for a ticker.
func (r *FundamentalsRepository) GetLatestByTicker(ctx context.Context, ticker string) (*contracts.Fundamentals, error) {
	query := `
		SELECT ` + fundamentalsColumns + `
		FROM fundamentals_snapshots
		WHERE ticker = $1
		ORDER BY snapshot_at DESC
		LIMIT 1
	`

	f, err := scanFundamentals(r.pool.QueryRow(ctx, query, ticker))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListLatest retrieves the most recent snapshot of every ticker, ordered
// by ticker.
func (r *FundamentalsRepository) ListLatest(ctx context.Context) ([]contracts.Fundamentals, error) {
	query := `
		SELECT DISTINCT ON (ticker) ` + fundamentalsColumns + `
		FROM fundamentals_snapshots
		ORDER BY ticker, snapshot_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []contracts.Fundamentals
	for rows.Next() {
		f, err := scanFundamentals(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func scanFundamentals(row pgx.Row) (*contracts.Fundamentals, error) {
	var f contracts.Fundamentals
	err := row.Scan(
		&f.Ticker, &f.Timestamp, &f.Sector, &f.Industry,
		&f.LastPrice, &f.MarketCap, &f.YearHigh, &f.YearLow, &f.Volume,
		&f.EPS, &f.PERatio, &f.ROE, &f.DebtToEquity, &f.ProfitMargin,
		&f.CurrentRatio, &f.TotalRevenue, &f.Volatility, &f.Liquidity,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

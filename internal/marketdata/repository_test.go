package marketdata

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/database"
)

// newTestDB connects to the database named by DATABASE_URL, or skips.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(db.Close)

	if err := EnsureSchema(context.Background(), db.Pool); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return db
}

func TestFundamentalsRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewFundamentalsRepository(db.Pool)
	ctx := context.Background()

	price := 123.45
	vol := 0.31
	f := &contracts.Fundamentals{
		Ticker:     "ITEST",
		Timestamp:  time.Now().UTC().Truncate(time.Microsecond),
		LastPrice:  &price,
		Volatility: &vol,
	}

	if err := repo.Save(ctx, f); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Saving the same snapshot again must upsert, not duplicate.
	if err := repo.Save(ctx, f); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, err := repo.GetLatestByTicker(ctx, "ITEST")
	if err != nil {
		t.Fatalf("GetLatestByTicker failed: %v", err)
	}
	if got.LastPrice == nil || *got.LastPrice != price {
		t.Errorf("LastPrice = %v, want %v", got.LastPrice, price)
	}
	if got.MarketCap != nil {
		t.Errorf("MarketCap = %v, want nil", *got.MarketCap)
	}

	if _, err := repo.GetLatestByTicker(ctx, "NOSUCH"); err != ErrNotFound {
		t.Errorf("GetLatestByTicker(NOSUCH) error = %v, want ErrNotFound", err)
	}
}

func TestSentimentRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewSentimentRepository(db.Pool)
	ctx := context.Background()

	if _, err := repo.DeleteByTicker(ctx, "ITEST"); err != nil {
		t.Fatalf("DeleteByTicker failed: %v", err)
	}

	doc := contracts.SentimentDocument{
		"ticker": "ITEST",
		"sentiment": map[string]interface{}{
			"sentiment_score": 0.7,
		},
	}
	if err := repo.Save(ctx, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	docs, err := repo.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}

	found := false
	for _, d := range docs {
		if d.Ticker() == "ITEST" {
			found = true
			// jsonb round trip must keep the nested shape intact
			if _, ok := d["sentiment"].(map[string]interface{}); !ok {
				t.Error("nested sentiment group lost in round trip")
			}
		}
	}
	if !found {
		t.Error("stored document missing from ListDocuments")
	}

	if err := repo.Save(ctx, contracts.SentimentDocument{"company": "no ticker"}); err == nil {
		t.Error("Save without ticker should fail")
	}

	if _, err := repo.DeleteByTicker(ctx, "ITEST"); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
}

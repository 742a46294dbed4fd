package marketdata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpulse/backend/internal/contracts"
)

// SentimentRepository stores analyst sentiment documents as raw jsonb.
// Documents keep whatever shape the producer wrote; normalization
// happens at read time in the enrichment layer.
type SentimentRepository struct {
	pool *pgxpool.Pool
}

// NewSentimentRepository creates a new sentiment repository.
func NewSentimentRepository(pool *pgxpool.Pool) *SentimentRepository {
	return &SentimentRepository{pool: pool}
}

// Save inserts a sentiment document. Multiple documents per ticker are
// allowed; join resolution picks the first in insertion order.
func (r *SentimentRepository) Save(ctx context.Context, doc contracts.SentimentDocument) error {
	ticker := doc.Ticker()
	if ticker == "" {
		return fmt.Errorf("sentiment document has no ticker")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal sentiment document: %w", err)
	}

	query := `
		INSERT INTO sentiment_documents (ticker, doc)
		VALUES ($1, $2)
	`

	_, err = r.pool.Exec(ctx, query, ticker, data)
	return err
}

// ListDocuments retrieves all sentiment documents in insertion order.
func (r *SentimentRepository) ListDocuments(ctx context.Context) ([]contracts.SentimentDocument, error) {
	query := `
		SELECT doc
		FROM sentiment_documents
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []contracts.SentimentDocument
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		var doc contracts.SentimentDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal sentiment document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// CountByTicker returns the number of documents stored for a ticker.
func (r *SentimentRepository) CountByTicker(ctx context.Context, ticker string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM sentiment_documents WHERE ticker = $1`, ticker).Scan(&count)
	return count, err
}

// DeleteByTicker removes all documents for a ticker, used before a
// re-ingest replaces them.
func (r *SentimentRepository) DeleteByTicker(ctx context.Context, ticker string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sentiment_documents WHERE ticker = $1`, ticker)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

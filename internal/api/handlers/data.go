package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/marketdata/collector"
	"github.com/stockpulse/backend/pkg/logger"
)

// Refresher triggers a fundamentals refresh over a ticker universe.
type Refresher interface {
	RefreshAll(ctx context.Context, tickers []string, cfg collector.Config) ([]collector.FetchResult, error)
}

// DataHandler handles ingestion endpoints.
type DataHandler struct {
	refresher Refresher
	sentiment SentimentStore
	universe  []string
	logger    *logger.Logger
}

// NewDataHandler creates a new data handler.
func NewDataHandler(refresher Refresher, sentiment SentimentStore, universe []string, log *logger.Logger) *DataHandler {
	return &DataHandler{
		refresher: refresher,
		sentiment: sentiment,
		universe:  universe,
		logger:    log,
	}
}

// CollectRequest optionally narrows the refresh to specific tickers.
type CollectRequest struct {
	Tickers []string `json:"tickers"`
}

// CollectResponse summarizes a refresh run.
type CollectResponse struct {
	Requested int      `json:"requested"`
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// Collect triggers a fundamentals refresh. Without a body, the full
// configured universe is refreshed.
// POST /api/data/collect
func (h *DataHandler) Collect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// An empty body means the full universe.
	var req CollectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tickers := req.Tickers
	if len(tickers) == 0 {
		tickers = h.universe
	}

	results, err := h.refresher.RefreshAll(ctx, tickers, collector.Config{})
	if err != nil {
		h.logger.WithError(err).Error("Refresh failed")
		respondError(w, http.StatusInternalServerError, "Failed to collect data")
		return
	}

	resp := CollectResponse{Requested: len(tickers)}
	for _, res := range results {
		if res.Error != nil {
			resp.Failed = append(resp.Failed, res.Ticker)
		} else {
			resp.Succeeded++
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    resp,
	})
}

// SaveSentiment stores one raw sentiment document. The body is kept as
// written; shape normalization happens at read time.
// POST /api/data/sentiment
func (h *DataHandler) SaveSentiment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var doc contracts.SentimentDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if doc.Ticker() == "" {
		respondError(w, http.StatusBadRequest, "document ticker is required")
		return
	}

	if err := h.sentiment.Save(ctx, doc); err != nil {
		h.logger.WithError(err).Error("Failed to save sentiment document")
		respondError(w, http.StatusInternalServerError, "Failed to save sentiment document")
		return
	}

	// Duplicates are allowed; the join resolves them by first match. Log
	// so producers notice unintended double ingestion.
	if count, err := h.sentiment.CountByTicker(ctx, doc.Ticker()); err == nil && count > 1 {
		h.logger.WithFields(map[string]interface{}{
			"ticker": doc.Ticker(),
			"count":  count,
		}).Warn("Multiple sentiment documents for ticker")
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
	})
}

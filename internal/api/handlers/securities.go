package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/enrich"
	"github.com/stockpulse/backend/internal/marketdata"
	"github.com/stockpulse/backend/pkg/logger"
)

// FundamentalsStore is the read surface handlers need from the
// fundamentals repository.
type FundamentalsStore interface {
	ListLatest(ctx context.Context) ([]contracts.Fundamentals, error)
	GetLatestByTicker(ctx context.Context, ticker string) (*contracts.Fundamentals, error)
}

// SentimentStore is the read/write surface handlers need from the
// sentiment repository.
type SentimentStore interface {
	ListDocuments(ctx context.Context) ([]contracts.SentimentDocument, error)
	Save(ctx context.Context, doc contracts.SentimentDocument) error
	CountByTicker(ctx context.Context, ticker string) (int, error)
}

// SecurityHandler serves enriched security endpoints.
type SecurityHandler struct {
	fundamentals FundamentalsStore
	sentiment    SentimentStore
	assembler    *enrich.Assembler
	logger       *logger.Logger
}

// NewSecurityHandler creates a new security handler.
func NewSecurityHandler(fundamentals FundamentalsStore, sentiment SentimentStore, assembler *enrich.Assembler, log *logger.Logger) *SecurityHandler {
	return &SecurityHandler{
		fundamentals: fundamentals,
		sentiment:    sentiment,
		assembler:    assembler,
		logger:       log,
	}
}

// List returns every security, enriched with sentiment.
// GET /api/securities
func (h *SecurityHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stocks, err := h.fundamentals.ListLatest(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list fundamentals")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve securities")
		return
	}

	docs, err := h.sentiment.ListDocuments(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sentiment documents")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve securities")
		return
	}

	securities := make([]contracts.EnrichedSecurity, len(stocks))
	for i, f := range stocks {
		securities[i] = h.assembler.Enrich(f, docs)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    securities,
	})
}

// Get returns one enriched security.
// GET /api/securities/{ticker}
func (h *SecurityHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	f, err := h.fundamentals.GetLatestByTicker(ctx, ticker)
	if errors.Is(err, marketdata.ErrNotFound) {
		respondError(w, http.StatusNotFound, "security not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get fundamentals")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve security")
		return
	}

	docs, err := h.sentiment.ListDocuments(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sentiment documents")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve security")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.assembler.Enrich(*f, docs),
	})
}

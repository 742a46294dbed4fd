package handlers

import (
	"net/http"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/enrich"
	"github.com/stockpulse/backend/pkg/logger"
)

// DashboardHandler serves the combined dashboard payload.
type DashboardHandler struct {
	fundamentals FundamentalsStore
	sentiment    SentimentStore
	assembler    *enrich.Assembler
	logger       *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(fundamentals FundamentalsStore, sentiment SentimentStore, assembler *enrich.Assembler, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		fundamentals: fundamentals,
		sentiment:    sentiment,
		assembler:    assembler,
		logger:       log,
	}
}

// Get returns the raw dashboard payload.
// GET /api/dashboard
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := h.assemble(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    dashboard,
	})
}

// GetFormatted returns the dashboard with display strings in place of
// raw numbers.
// GET /api/dashboard/formatted
func (h *DashboardHandler) GetFormatted(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := h.assemble(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.assembler.FormatDashboard(dashboard),
	})
}

func (h *DashboardHandler) assemble(w http.ResponseWriter, r *http.Request) (*contracts.Dashboard, bool) {
	ctx := r.Context()

	stocks, err := h.fundamentals.ListLatest(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list fundamentals")
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return nil, false
	}

	docs, err := h.sentiment.ListDocuments(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sentiment documents")
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return nil, false
	}

	return h.assembler.Assemble(stocks, docs), true
}

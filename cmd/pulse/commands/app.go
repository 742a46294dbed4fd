package commands

import (
	"context"
	"fmt"

	"github.com/stockpulse/backend/internal/enrich"
	"github.com/stockpulse/backend/internal/external/yahoo"
	"github.com/stockpulse/backend/internal/marketdata"
	"github.com/stockpulse/backend/internal/marketdata/collector"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/database"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
	"github.com/stockpulse/backend/pkg/redis"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg       *config.Config
	logger    *logger.Logger
	db        *database.DB
	redis     *redis.Client
	assembler *enrich.Assembler

	fundamentalsRepo *marketdata.FundamentalsRepository
	sentimentRepo    *marketdata.SentimentRepository
	collector        *collector.Collector
}

// newApp loads config and wires the full dependency graph.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := marketdata.EnsureSchema(ctx, db.Pool); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	cache := redis.NewCache(redisClient, "stockpulse")

	httpClient := httputil.New(log).
		WithRateLimit(cfg.Market.RequestsPerSecond)
	if redisClient.Enabled() {
		limiter := redis.NewRateLimiter(redisClient, "stockpulse")
		httpClient = httpClient.WithSharedRateLimit(limiter, redis.QuoteRateLimit)
	}

	yahooClient := yahoo.NewClient(cfg, httpClient, cache, log)

	fundamentalsRepo := marketdata.NewFundamentalsRepository(db.Pool)
	sentimentRepo := marketdata.NewSentimentRepository(db.Pool)

	return &app{
		cfg:    cfg,
		logger: log,
		db:     db,
		redis:  redisClient,
		assembler: enrich.NewAssembler(enrich.Config{
			ScoreFallback:       cfg.Enrich.ScoreFallback,
			RevenueHistoryYears: cfg.Enrich.RevenueHistoryYears,
		}),
		fundamentalsRepo: fundamentalsRepo,
		sentimentRepo:    sentimentRepo,
		collector:        collector.NewCollector(yahooClient, fundamentalsRepo, log),
	}, nil
}

// close releases all connections.
func (a *app) close() {
	a.db.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close redis")
	}
}

package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
	"github.com/stockpulse/backend/pkg/redis"
)

// Client handles communication with the Yahoo Finance endpoints. All
// upstream quote, profile and history calls go through this client.
type Client struct {
	httpClient     *httputil.Client
	cache          *redis.Cache
	logger         *logger.Logger
	quoteBaseURL   string
	profileBaseURL string
}

// NewClient creates a Yahoo Finance client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		cache:          cache,
		logger:         log,
		quoteBaseURL:   cfg.Market.QuoteBaseURL,
		profileBaseURL: cfg.Market.ProfileBaseURL,
	}
}

// getJSON performs a GET request with a browser User-Agent and decodes
// the JSON response. Yahoo rejects requests without one.
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

// rawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper. Only
// the raw value is used.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v *rawValue) value() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

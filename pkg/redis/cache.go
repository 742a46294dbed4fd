package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache provides typed caching for raw upstream responses. Derived values
// are never cached; enrichment recomputes them on every read.
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a cache helper with a key prefix.
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a cached value. A miss (or disabled Redis) returns
// (false, nil).
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	data, err := c.client.Redis().Get(ctx, c.fullKey(key)).Bytes()
	if err != nil {
		// Key not found is not an error
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value with a TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	return c.client.Redis().Set(ctx, c.fullKey(key), data, ttl).Err()
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	return c.client.Redis().Del(ctx, c.fullKey(key)).Err()
}

func (c *Cache) fullKey(key string) string {
	return fmt.Sprintf("%s:cache:%s", c.prefix, key)
}

// Cache TTLs per data class.
const (
	// TTLQuote covers intraday quote basics.
	TTLQuote = 5 * time.Minute
	// TTLProfile covers sector/industry profile data.
	TTLProfile = 24 * time.Hour
	// TTLHistory covers the 1y price history used for volatility.
	TTLHistory = 6 * time.Hour
)

// QuoteKey builds the cache key for quote basics.
func QuoteKey(ticker string) string {
	return fmt.Sprintf("quote:%s", ticker)
}

// ProfileKey builds the cache key for a company profile.
func ProfileKey(ticker string) string {
	return fmt.Sprintf("profile:%s", ticker)
}

// HistoryKey builds the cache key for price history.
func HistoryKey(ticker string) string {
	return fmt.Sprintf("history:%s", ticker)
}

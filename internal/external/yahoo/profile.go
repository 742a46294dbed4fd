package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/stockpulse/backend/pkg/redis"
)

// CompanyProfile holds the scraped sector and industry classification.
type CompanyProfile struct {
	Ticker   string  `json:"ticker"`
	Sector   *string `json:"sector"`
	Industry *string `json:"industry"`
}

// FetchProfile scrapes sector and industry from the company profile
// page. Classification data is not exposed on the JSON endpoints.
func (c *Client) FetchProfile(ctx context.Context, ticker string) (*CompanyProfile, error) {
	cacheKey := redis.ProfileKey(ticker)
	var cached CompanyProfile
	if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	url := fmt.Sprintf("%s/quote/%s/profile", c.profileBaseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse profile page failed: %w", err)
	}

	profile := &CompanyProfile{Ticker: ticker}

	// The profile card labels each classification field. Match on the
	// label text so layout shuffles do not break the scrape.
	doc.Find("dl div, p, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if profile.Sector == nil {
			if v := labeledValue(s, "Sector"); v != "" {
				profile.Sector = &v
			}
		}
		if profile.Industry == nil {
			if v := labeledValue(s, "Industry"); v != "" {
				profile.Industry = &v
			}
		}
		return profile.Sector == nil || profile.Industry == nil
	})

	if profile.Sector == nil && profile.Industry == nil {
		c.logger.WithField("ticker", ticker).Warn("Profile page had no classification data")
	}

	if err := c.cache.Set(ctx, cacheKey, profile, redis.TTLProfile); err != nil {
		c.logger.WithError(err).Warn("Failed to cache company profile")
	}

	return profile, nil
}

// labeledValue extracts the value following a "<label>:" prefix, or the
// sibling link text when the label sits in its own node.
func labeledValue(s *goquery.Selection, label string) string {
	text := strings.TrimSpace(s.Text())
	prefix := label + ":"
	if strings.HasPrefix(text, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}
	if text == prefix || text == label {
		if v := strings.TrimSpace(s.Next().Text()); v != "" {
			return v
		}
	}
	return ""
}

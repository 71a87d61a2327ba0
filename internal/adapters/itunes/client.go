// Package itunes is the catalog-search adapter. It queries the iTunes
// Search API and maps raw results into domain candidates; callers treat a
// failed call as zero results for that (query, country) pair.
package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
)

const (
	defaultBaseURL = "https://itunes.apple.com"
	defaultTimeout = 8 * time.Second
)

// Client is an HTTP client for the iTunes Search API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.CatalogSearcher = (*Client)(nil)

// NewClient constructs a catalog client. A nil httpClient gets a client
// with a per-call timeout so one slow pair cannot stall a whole fetch.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		// The search API throttles aggressively; stay well under its limit.
		limiter:     rate.NewLimiter(rate.Every(250*time.Millisecond), 4),
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBackoff,
	}
}

// SetRateLimit overrides the outbound request budget.
func (c *Client) SetRateLimit(limit rate.Limit, burst int) {
	c.limiter = rate.NewLimiter(limit, burst)
}

// Search issues one catalog query for songs in the given storefront.
func (c *Client) Search(ctx context.Context, query, country string, limit int) ([]domain.Candidate, error) {
	if limit <= 0 {
		limit = 200
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("itunes adapter: rate limit wait: %w", err)
	}

	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("itunes adapter: invalid search url: %w", err)
	}
	q := searchURL.Query()
	q.Set("term", query)
	q.Set("country", country)
	q.Set("media", "music")
	q.Set("entity", "song")
	q.Set("limit", strconv.Itoa(limit))
	searchURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("itunes adapter: build request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("itunes adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("itunes adapter: search status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("itunes adapter: decode response: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(body.Results))
	for _, r := range body.Results {
		candidates = append(candidates, r.toCandidate())
	}
	return candidates, nil
}

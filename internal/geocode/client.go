package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// API Docs: https://www.bigdatacloud.com/free-api/free-reverse-geocode-to-city-api
// Sample request: https://api.bigdatacloud.net/data/reverse-geocode-client?latitude=38.7&longitude=-9.1
const DefaultBaseURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"

// Result is the part of the reverse-geocode response the creation form uses
type Result struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
	City        string `json:"city"`
	Locality    string `json:"locality"`
}

// PlaceName is the best available settlement name
func (r Result) PlaceName() string {
	if r.City != "" {
		return r.City
	}
	return r.Locality
}

// Options tunes the client
type Options struct {
	BaseURL       string
	RatePerSecond float64
	CacheTTL      time.Duration
	Timeout       time.Duration
}

// Client resolves coordinates to a country and place name
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	cache      *cache.Cache
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		limiter:    rate.NewLimiter(limit, 1),
		cache:      cache.New(opts.CacheTTL, 2*opts.CacheTTL),
	}
}

// Lookup reverse-geocodes p. Results are cached per ~100 m cell.
func (c *Client) Lookup(ctx context.Context, p model.Position) (*Result, error) {
	key := cacheKey(p)
	if cached, found := c.cache.Get(key); found {
		res := cached.(Result)
		return &res, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", p.Lat))
	q.Set("longitude", fmt.Sprintf("%f", p.Lng))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.cache.Set(key, res, cache.DefaultExpiration)
	return &res, nil
}

func cacheKey(p model.Position) string {
	return fmt.Sprintf("%.3f,%.3f", p.Lat, p.Lng)
}

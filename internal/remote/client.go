package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexivanou/worldwise/internal/model"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for non-2xx responses
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the REST city store
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the store at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client with a custom http.Client
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ListCities handles GET /cities
func (c *Client) ListCities(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	if err := c.do(ctx, http.MethodGet, "/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// GetCity handles GET /cities/{id}
func (c *Client) GetCity(ctx context.Context, id int) (*model.City, error) {
	var city model.City
	if err := c.do(ctx, http.MethodGet, cityPath(id), nil, &city); err != nil {
		return nil, err
	}
	return &city, nil
}

// CreateCity handles POST /cities
func (c *Client) CreateCity(ctx context.Context, draft model.Draft) (*model.City, error) {
	var city model.City
	if err := c.do(ctx, http.MethodPost, "/cities", draft, &city); err != nil {
		return nil, err
	}
	if city.IsEmpty() {
		return nil, fmt.Errorf("create city: response carries no id")
	}
	return &city, nil
}

// DeleteCity handles DELETE /cities/{id}. Any response body is ignored.
func (c *Client) DeleteCity(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, cityPath(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func cityPath(id int) string {
	return "/cities/" + strconv.Itoa(id)
}

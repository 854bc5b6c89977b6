// ABOUTME: Client for the external nutrition lookup HTTP API.
// ABOUTME: Returns macro data for a free text food query.
package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public nutrition API endpoint.
const DefaultBaseURL = "https://api.calorieninjas.com"

// ErrNoResults is returned when the API knows no food matching the query.
var ErrNoResults = errors.New("no nutrition results")

// ErrEmptyQuery is returned for blank queries without calling the API.
var ErrEmptyQuery = errors.New("nutrition query is empty")

// Item is one food match returned by the API.
type Item struct {
	Name          string  `json:"name"`
	Calories      float64 `json:"calories"`
	ServingSizeG  float64 `json:"serving_size_g"`
	ProteinG      float64 `json:"protein_g"`
	CarbohydrateG float64 `json:"carbohydrates_total_g"`
	FatG          float64 `json:"fat_total_g"`
	SugarG        float64 `json:"sugar_g"`
	FiberG        float64 `json:"fiber_g"`
	SodiumMG      float64 `json:"sodium_mg"`
}

type response struct {
	Items []Item `json:"items"`
}

// StatusError reports a non-2xx reply from the API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nutrition API returned status %d", e.StatusCode)
}

// Client queries the nutrition API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns every item matching query.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	endpoint := c.baseURL + "/v1/nutrition?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query nutrition API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode nutrition response: %w", err)
	}
	return body.Items, nil
}

// Lookup returns the first item matching query.
func (c *Client) Lookup(ctx context.Context, query string) (*Item, error) {
	items, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoResults
	}
	return &items[0], nil
}

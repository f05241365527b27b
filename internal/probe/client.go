// Package probe talks to a running mlbview service from the command line.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/mlbview/internal/adapters/search"
	service "github.com/okian/mlbview/internal/app"
)

// Config holds the probe's connection settings.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
	Workers int           // Concurrent requests during verify
	Verbose bool
}

// Client wraps http.Client with the service's base URL.
type Client struct {
	base   string
	client *http.Client
}

// NewClient creates a client for the service at base.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// SelectParams mirrors the /selection query string.
type SelectParams struct {
	Dataset   string
	Player    string
	Stat      string
	From      string
	To        string
	Threshold *float64
	Reversed  *bool
}

func (p SelectParams) values() url.Values {
	v := url.Values{}
	v.Set("dataset", p.Dataset)
	v.Set("player", p.Player)
	v.Set("stat", p.Stat)
	if p.From != "" {
		v.Set("from", p.From)
	}
	if p.To != "" {
		v.Set("to", p.To)
	}
	if p.Threshold != nil {
		v.Set("threshold", strconv.FormatFloat(*p.Threshold, 'f', -1, 64))
	}
	if p.Reversed != nil {
		v.Set("reversed", strconv.FormatBool(*p.Reversed))
	}
	return v
}

// Health checks /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil, nil)
}

// Players lists or searches a dataset's players.
func (c *Client) Players(ctx context.Context, dataset, query string, limit int) ([]search.Match, error) {
	v := url.Values{}
	v.Set("dataset", dataset)
	if query != "" {
		v.Set("q", query)
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out []search.Match
	if err := c.get(ctx, "/players", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Select fetches a classified selection.
func (c *Client) Select(ctx context.Context, p SelectParams) (service.Selection, error) {
	var sel service.Selection
	err := c.get(ctx, "/selection", p.values(), &sel)
	return sel, err
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &eb) == nil {
			apiErr.Code, apiErr.Message = eb.Code, eb.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

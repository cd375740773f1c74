package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/vista/internal/state"
)

// Source yields the latest player state as a patch.
type Source interface {
	Fetch(ctx context.Context) (state.Patch, error)
}

var (
	_ Source = (*Client)(nil)
	_ Source = (*File)(nil)
)

// Client talks to the player's HTTP status API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "vista/0.1"
	requestTimeout   = 5 * time.Second
	statePath        = "/api/state"
	maxBody          = 1 << 20
)

// NewClient builds a Client for a host:port or URL.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// Fetch retrieves the player state from GET /api/state.
func (c *Client) Fetch(ctx context.Context) (state.Patch, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: statePath})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api %s returned status %d", statePath, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return state.DecodePatch(body)
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		return nil, fmt.Errorf("player api address is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse player_api %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

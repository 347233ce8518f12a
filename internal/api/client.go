package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danijuhaeni22/idx-signal-web/internal/model"
)

// ResolveError aggregates a fetch that failed against every candidate base.
type ResolveError struct {
	Path     string
	LastBase string
	Attempts int
	Err      error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("all %d API bases failed for %s: last base %s: %v",
		e.Attempts, e.Path, e.LastBase, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Client issues JSON requests against the resolved API base.
type Client struct {
	HTTP     *http.Client
	Resolver *Resolver
	Days     int
	Universe string
}

// NewClient creates a client with optional proxy support.
func NewClient(r *Resolver, proxyURL string, days int, universe string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Resolver: r,
		Days:     days,
		Universe: universe,
	}
}

// GetJSON tries each candidate base in order and decodes the first 2xx
// response into out. The base that answered becomes the resolver's
// preferred base. When every base fails the error is a *ResolveError
// carrying the last attempted base and the last underlying failure.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	candidates := c.Resolver.Candidates()

	var lastErr error
	var lastBase string
	for _, base := range candidates {
		lastBase = base
		body, err := c.get(ctx, base+path)
		if err != nil {
			lastErr = err
			continue
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		c.Resolver.Remember(base)
		return nil
	}
	return &ResolveError{Path: path, LastBase: lastBase, Attempts: len(candidates), Err: lastErr}
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, detail)
	}
	return body, nil
}

// NormalizeTicker trims and uppercases a user-entered ticker symbol.
func NormalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// MarketRegime fetches the market-wide regime snapshot.
func (c *Client) MarketRegime(ctx context.Context) (*model.RegimeReading, error) {
	var out model.RegimeReading
	if err := c.GetJSON(ctx, "/api/market-regime", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OHLCV fetches daily bars for a ticker over the configured lookback.
func (c *Client) OHLCV(ctx context.Context, ticker string) ([]model.Bar, error) {
	path := fmt.Sprintf("/api/ohlcv?ticker=%s&days=%d",
		url.QueryEscape(NormalizeTicker(ticker)), c.Days)
	var out model.OHLCVResponse
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Bars, nil
}

// TickerSignal fetches the trade plan for a ticker.
func (c *Client) TickerSignal(ctx context.Context, ticker string) (*model.Signal, error) {
	path := fmt.Sprintf("/api/signal?ticker=%s&days=%d",
		url.QueryEscape(NormalizeTicker(ticker)), c.Days)
	var out model.SignalResponse
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out.Signal, nil
}

// Screener fetches the ranked candidate list for the configured universe.
func (c *Client) Screener(ctx context.Context) (*model.ScreenerResult, error) {
	path := fmt.Sprintf("/api/screener?universe=%s&days=%d",
		url.QueryEscape(c.Universe), c.Days)
	var out model.ScreenerResult
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches the backend liveness payload.
func (c *Client) Health(ctx context.Context) (*model.HealthStatus, error) {
	var out model.HealthStatus
	if err := c.GetJSON(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

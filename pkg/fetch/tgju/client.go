// Package tgju implements the fetch.Adapter contract on top of tgju.org for
// the currency, gold, cryptocurrency, and Iranian market categories.
package tgju

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
)

const (
	defaultBaseURL          = "https://www.tgju.org"
	defaultAPIBase          = "https://api.tgju.org"
	defaultHTTPTimeout      = 10 * time.Second
	defaultMaxRetries       = 3
	defaultRetryBackoffBase = 150 * time.Millisecond
)

// Client talks to tgju.org for one asset category.
type Client struct {
	category   fetch.Category
	baseURL    string
	apiBase    string
	httpClient *http.Client
	maxRetries int
	symbols    map[string]symbolInfo
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the live-quote page base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithAPIBase overrides the history API base URL.
func WithAPIBase(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.apiBase = u
		}
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// WithSymbols replaces the built-in symbol mapping.
func WithSymbols(symbols map[string]symbolInfo) Option {
	return func(c *Client) {
		if symbols != nil {
			c.symbols = symbols
		}
	}
}

// NewClient constructs a tgju client for the given category.
func NewClient(category fetch.Category, opts ...Option) *Client {
	client := &Client{
		category:   category,
		baseURL:    defaultBaseURL,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries: defaultMaxRetries,
		symbols:    defaultSymbols(category),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

func init() {
	fetch.RegisterAdapter("tgju", func(category fetch.Category, cfg *fetch.AdapterConfig) (fetch.Adapter, error) {
		opts := []Option{
			WithBaseURL(cfg.BaseURL),
			WithAPIBase(cfg.APIBase),
		}
		if cfg.MaxRetries > 0 {
			opts = append(opts, WithMaxRetries(cfg.MaxRetries))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		return NewClient(category, opts...), nil
	})
}

// lookup resolves a registry keyword to its tgju mapping. Iranian categories
// address the instrument endpoint by the Persian name itself.
func (c *Client) lookup(symbol string) (symbolInfo, bool) {
	if info, ok := c.symbols[symbol]; ok {
		return info, true
	}
	switch c.category {
	case fetch.CategoryIranIndex:
		return symbolInfo{Display: symbol, Slug: symbol, Market: "index", Scale: 1, Unit: "واحد"}, true
	case fetch.CategoryIranSymbol:
		return symbolInfo{Display: symbol, Slug: symbol, Market: "stock", Scale: 0.1, Unit: "تومان"}, true
	}
	return symbolInfo{}, false
}

// historyURL builds the instrument history endpoint for a symbol.
func (c *Client) historyURL(info symbolInfo) string {
	return fmt.Sprintf("%s/v1/stocks/instrument/history-data/%s?order_dir=desc&market=%s&lang=fa",
		c.apiBase, url.PathEscape(info.Slug), url.QueryEscape(info.Market))
}

// getJSON fetches a URL with retries and decodes the JSON body into result.
func (c *Client) getJSON(ctx context.Context, rawURL string, result interface{}) error {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("tgju: decode %s: %w", rawURL, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("tgju: build request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = readErr
			case resp.StatusCode == http.StatusOK:
				return body, nil
			case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
				lastErr = fmt.Errorf("tgju: status %d from %s", resp.StatusCode, rawURL)
			default:
				return nil, fmt.Errorf("tgju: status %d from %s", resp.StatusCode, rawURL)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		logx.WithContext(ctx).Slowf("tgju: retrying %s after error: %v", rawURL, lastErr)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("tgju: request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Package alphavantage implements the fetch.Adapter contract for American
// stocks using the Alpha Vantage TIME_SERIES_DAILY endpoint.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/jalali"
)

const (
	defaultBaseURL     = "https://www.alphavantage.co"
	defaultHTTPTimeout = 10 * time.Second
)

// defaultTickers maps Persian company names to exchange tickers.
var defaultTickers = map[string]string{
	"اپل":        "AAPL",
	"گوگل":       "GOOGL",
	"آمازون":     "AMZN",
	"مایکروسافت": "MSFT",
	"تسلا":       "TSLA",
}

// Client queries Alpha Vantage for daily stock series.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	tickers    map[string]string
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

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTickers replaces the built-in name-to-ticker mapping.
func WithTickers(tickers map[string]string) Option {
	return func(c *Client) {
		if tickers != nil {
			c.tickers = tickers
		}
	}
}

// NewClient constructs an Alpha Vantage client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		tickers:    defaultTickers,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func init() {
	fetch.RegisterAdapter("alphavantage", func(category fetch.Category, cfg *fetch.AdapterConfig) (fetch.Adapter, error) {
		opts := []Option{WithBaseURL(cfg.BaseURL)}
		if cfg.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		return NewClient(cfg.APIKey, opts...), nil
	})
}

type dailyResponse struct {
	Series map[string]map[string]string `json:"Time Series (Daily)"`
}

func (c *Client) fetchDaily(ctx context.Context, ticker string) (map[string]map[string]string, error) {
	endpoint := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(ticker), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage: read body: %w", err)
	}
	var parsed dailyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("alphavantage: decode: %w", err)
	}
	if len(parsed.Series) == 0 {
		return nil, fmt.Errorf("alphavantage: no daily series for %s (rate limited or unknown symbol)", ticker)
	}
	return parsed.Series, nil
}

// LiveQuote reports the latest close with its day-over-day change.
func (c *Client) LiveQuote(ctx context.Context, symbol string) fetch.QuoteResult {
	ticker, ok := c.tickers[symbol]
	if !ok {
		return fetch.QuoteResult{
			Status:  fetch.QuoteNotFound,
			Message: "❌ نام شرکت معتبر نیست!",
		}
	}

	series, err := c.fetchDaily(ctx, ticker)
	if err != nil {
		return fetch.QuoteResult{
			Status:  fetch.QuoteSourceError,
			Message: fmt.Sprintf("⛔️ داده‌ای برای نماد %s پیدا نشد یا منبع محدود شده.", ticker),
		}
	}

	dates := sortedDatesDesc(series)
	if len(dates) < 2 {
		return fetch.QuoteResult{
			Status:  fetch.QuoteSourceError,
			Message: "⛔️ تعداد روزهای معاملاتی کافی نیست.",
		}
	}

	todayClose := parseField(series[dates[0]], "4. close")
	yesterdayClose := parseField(series[dates[1]], "4. close")

	changePct := 0.0
	if yesterdayClose != 0 {
		changePct = (todayClose - yesterdayClose) / yesterdayClose * 100
	}

	var changeText string
	switch {
	case changePct > 0:
		changeText = fmt.Sprintf("که افزایش %.2f%% نسبت به روز قبل داشته است.", changePct)
	case changePct < 0:
		changeText = fmt.Sprintf("که کاهش %.2f%% نسبت به روز قبل داشته است.", -changePct)
	default:
		changeText = "و نسبت به روز قبل بدون تغییر بوده است."
	}

	day, _ := time.Parse("2006-01-02", dates[0])
	message := fmt.Sprintf("قیمت سهام %s در تاریخ %s برابر با %s بوده است.\n%s",
		symbol, jalali.FromGregorian(day), fetch.FormatPrice(todayClose, "دلار"), changeText)

	return fetch.QuoteResult{
		Status:    fetch.QuoteOK,
		Message:   message,
		Price:     todayClose,
		UpdatedAt: dates[0],
	}
}

// FullHistory returns the daily series oldest first.
func (c *Client) FullHistory(ctx context.Context, symbol string) ([]fetch.Row, error) {
	ticker, ok := c.tickers[symbol]
	if !ok {
		return nil, fmt.Errorf("alphavantage: unknown company %q: %w", symbol, fetch.ErrSymbolNotFound)
	}

	series, err := c.fetchDaily(ctx, ticker)
	if err != nil {
		return nil, err
	}

	rows := make([]fetch.Row, 0, len(series))
	for dateStr, fields := range series {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		rows = append(rows, fetch.Row{
			GregorianDate: day,
			JalaliDate:    jalali.FromGregorian(day),
			Open:          parseField(fields, "1. open"),
			High:          parseField(fields, "2. high"),
			Low:           parseField(fields, "3. low"),
			Close:         parseField(fields, "4. close"),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].GregorianDate.Before(rows[j].GregorianDate)
	})
	return rows, nil
}

func sortedDatesDesc(series map[string]map[string]string) []string {
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

func parseField(fields map[string]string, key string) float64 {
	v, _ := strconv.ParseFloat(fields[key], 64)
	return v
}

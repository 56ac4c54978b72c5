package tgju

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/jalali"
)

var (
	changeValuePattern = regexp.MustCompile(`<span class="(low|high)"[^>]*>([\d,]+)<`)
	changePctPattern   = regexp.MustCompile(`<span class="(low|high)"[^>]*>([\d.]+)%<`)
)

// FullHistory fetches the complete daily series for symbol, oldest first,
// with a synthetic row for today taken from the live quote.
func (c *Client) FullHistory(ctx context.Context, symbol string) ([]fetch.Row, error) {
	info, ok := c.lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("tgju: unknown symbol %q for category %s: %w", symbol, c.category, fetch.ErrSymbolNotFound)
	}

	var resp historyResponse
	if err := c.getJSON(ctx, c.historyURL(info), &resp); err != nil {
		return nil, err
	}

	rows := make([]fetch.Row, 0, len(resp.Data)+1)
	for _, entry := range resp.Data {
		row, err := parseHistoryEntry(entry, info.Scale)
		if err != nil {
			logx.WithContext(ctx).Slowf("tgju: skipping malformed history entry for %s: %v", symbol, err)
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].GregorianDate.Before(rows[j].GregorianDate)
	})

	// The history endpoint lags one day; top the series up with the live
	// quote so "today" lookups hit the freshest close.
	if quote := c.LiveQuote(ctx, symbol); quote.OK() {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if len(rows) == 0 || rows[len(rows)-1].GregorianDate.Before(today) {
			rows = append(rows, fetch.Row{
				GregorianDate: today,
				JalaliDate:    jalali.FromGregorian(today),
				Close:         quote.Price,
			})
		}
	}

	return rows, nil
}

func parseHistoryEntry(entry []string, scale float64) (fetch.Row, error) {
	if len(entry) < 8 {
		return fetch.Row{}, fmt.Errorf("entry has %d fields", len(entry))
	}

	parsePrice := func(s string) (float64, error) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
		if err != nil {
			return 0, err
		}
		return v * scale, nil
	}

	open, err := parsePrice(entry[0])
	if err != nil {
		return fetch.Row{}, fmt.Errorf("open: %w", err)
	}
	low, err := parsePrice(entry[1])
	if err != nil {
		return fetch.Row{}, fmt.Errorf("low: %w", err)
	}
	high, err := parsePrice(entry[2])
	if err != nil {
		return fetch.Row{}, fmt.Errorf("high: %w", err)
	}
	closePrice, err := parsePrice(entry[3])
	if err != nil {
		return fetch.Row{}, fmt.Errorf("close: %w", err)
	}

	change := 0.0
	if m := changeValuePattern.FindStringSubmatch(entry[4]); m != nil {
		v, err := parsePrice(m[2])
		if err == nil {
			if m[1] == "low" {
				v = -v
			}
			change = v
		}
	}

	changePct := 0.0
	if m := changePctPattern.FindStringSubmatch(entry[5]); m != nil {
		v, err := strconv.ParseFloat(m[2], 64)
		if err == nil {
			if m[1] == "low" {
				v = -v
			}
			changePct = v
		}
	}

	gregorian, err := parseGregorian(entry[6])
	if err != nil {
		// Some instruments report only the Jalali date reliably.
		gregorian, err = jalali.ToGregorian(entry[7])
		if err != nil {
			return fetch.Row{}, fmt.Errorf("date: %w", err)
		}
	}

	return fetch.Row{
		GregorianDate: gregorian,
		JalaliDate:    strings.TrimSpace(entry[7]),
		Open:          open,
		Low:           low,
		High:          high,
		Close:         closePrice,
		Change:        change,
		ChangePct:     changePct,
	}, nil
}

func parseGregorian(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}

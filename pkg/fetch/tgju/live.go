package tgju

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
)

var (
	priceCellPattern = regexp.MustCompile(`<td[^>]*>([\d,.]+)</td>`)
	changePattern    = regexp.MustCompile(`<span class="(low|high)">\(?([\d.]+)%?\)?\s*([\d,]*)</span>`)
	timeCellPattern  = regexp.MustCompile(`<td[^>]*>(\d{2}:\d{2}:\d{2})</td>`)
)

func (c *Client) pagePath() string {
	switch c.category {
	case fetch.CategoryGold:
		return "/gold-chart"
	case fetch.CategoryCrypto:
		return "/crypto"
	case fetch.CategoryIranIndex, fetch.CategoryIranSymbol:
		return "/indexes"
	default:
		return "/currency"
	}
}

// LiveQuote scrapes the category's live page for the symbol's row and builds
// a user-facing message. Failures are reported in the result, never raised.
func (c *Client) LiveQuote(ctx context.Context, symbol string) fetch.QuoteResult {
	info, ok := c.lookup(symbol)
	if !ok {
		return fetch.QuoteResult{
			Status:  fetch.QuoteNotFound,
			Message: fmt.Sprintf("نماد %s پیدا نشد.", symbol),
		}
	}

	body, err := c.get(ctx, c.baseURL+c.pagePath())
	if err != nil {
		return fetch.QuoteResult{
			Status:  fetch.QuoteSourceError,
			Message: fmt.Sprintf("❌ دریافت قیمت %s از منبع ممکن نشد.", info.Display),
		}
	}

	rowPattern := regexp.MustCompile(`(?s)<tr[^>]*>\s*<th[^>]*>\s*` + regexp.QuoteMeta(info.Display) + `\s*</th>(.*?)</tr>`)
	rowMatch := rowPattern.FindStringSubmatch(string(body))
	if rowMatch == nil {
		return fetch.QuoteResult{
			Status:  fetch.QuoteNotFound,
			Message: fmt.Sprintf("نماد %s پیدا نشد.", info.Display),
		}
	}
	row := rowMatch[1]

	rawPrice := "0"
	if m := priceCellPattern.FindStringSubmatch(row); m != nil {
		rawPrice = m[1]
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(rawPrice, ",", ""), 64)
	if err != nil {
		return fetch.QuoteResult{
			Status:  fetch.QuoteSourceError,
			Message: fmt.Sprintf("❌ قیمت %s از منبع قابل خواندن نبود.", info.Display),
		}
	}
	price *= info.Scale

	changePct := 0.0
	direction := ""
	if m := changePattern.FindStringSubmatch(row); m != nil {
		changePct, _ = strconv.ParseFloat(m[2], 64)
		if m[1] == "high" {
			direction = "افزایش"
		} else {
			direction = "کاهش"
		}
	}

	updatedAt := "نامشخص"
	if m := timeCellPattern.FindStringSubmatch(row); m != nil {
		updatedAt = m[1]
	}

	formatted := fetch.FormatPrice(price, info.Unit)
	var message string
	if changePct == 0 {
		message = fmt.Sprintf("قیمت %s امروز %s است و نسبت به دیروز بدون تغییر بوده است. (آخرین بروزرسانی: %s)",
			info.Display, formatted, updatedAt)
	} else {
		message = fmt.Sprintf("قیمت %s امروز %s است و %.2f%% تغییر داشته که نسبت به دیروز %s یافته است. (آخرین بروزرسانی: %s)",
			info.Display, formatted, changePct, direction, updatedAt)
	}

	return fetch.QuoteResult{
		Status:    fetch.QuoteOK,
		Message:   message,
		Price:     price,
		UpdatedAt: updatedAt,
	}
}

// Package fetch defines the adapter contract for obtaining live quotes and
// full historical series per asset category, plus the table-name convention
// that routes a persisted table back to its adapter.
package fetch

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrSymbolNotFound reports that an adapter does not know the requested
// symbol; callers can distinguish it from transient source failures.
var ErrSymbolNotFound = errors.New("fetch: symbol not found")

// Category identifies one asset family. The value doubles as the persisted
// table-name prefix.
type Category string

const (
	CategoryCurrency     Category = "currency"
	CategoryGold         Category = "gold"
	CategoryCrypto       Category = "cryptocurrency"
	CategoryIranSymbol   Category = "iran_symbol"
	CategoryIranIndex    Category = "iran_index"
	CategoryAmericaStock Category = "america_stock"
)

// Categories lists all known categories in routing order.
var Categories = []Category{
	CategoryCurrency,
	CategoryGold,
	CategoryCrypto,
	CategoryIranSymbol,
	CategoryIranIndex,
	CategoryAmericaStock,
}

// Row is one dated observation of a symbol. Close is always present; the
// other numeric fields depend on the category.
type Row struct {
	GregorianDate time.Time `db:"gregorian_date"`
	JalaliDate    string    `db:"jalali_date"`
	Open          float64   `db:"open"`
	Low           float64   `db:"low"`
	High          float64   `db:"high"`
	Close         float64   `db:"close"`
	Change        float64   `db:"change"`
	ChangePct     float64   `db:"change_pct"`
}

// QuoteStatus tags the outcome of a live quote lookup.
type QuoteStatus int

const (
	// QuoteOK means Message and Price are both usable.
	QuoteOK QuoteStatus = iota
	// QuoteNotFound means the source answered but does not know the symbol.
	QuoteNotFound
	// QuoteSourceError means the source was unreachable or malformed.
	QuoteSourceError
)

// QuoteResult is the tagged live-quote outcome. Message is always a complete
// user-facing sentence, including for the failure cases, so callers may
// surface it verbatim.
type QuoteResult struct {
	Status    QuoteStatus
	Message   string
	Price     float64
	UpdatedAt string
}

// OK reports whether the quote carries a usable price.
func (q QuoteResult) OK() bool { return q.Status == QuoteOK }

// Adapter obtains market data for the symbols of one category.
type Adapter interface {
	// LiveQuote returns the current quote. Failures are reported through
	// the result's status and message, never as an error.
	LiveQuote(ctx context.Context, symbol string) QuoteResult
	// FullHistory returns the complete historical series, newest data
	// included, ordered oldest first. An error or empty slice means the
	// fetch failed and any cached data should be kept.
	FullHistory(ctx context.Context, symbol string) ([]Row, error)
}

// TableName builds the persisted table name for a category and symbol.
func TableName(category Category, symbol string) string {
	return string(category) + "_" + symbol
}

// ParseTable splits a table name into category and symbol using the prefix
// convention. ok is false when no known prefix matches.
func ParseTable(table string) (Category, string, bool) {
	for _, category := range Categories {
		prefix := string(category) + "_"
		if strings.HasPrefix(table, prefix) {
			return category, strings.TrimPrefix(table, prefix), true
		}
	}
	return "", "", false
}

// Unit returns the display unit for prices of a category.
func Unit(category Category) string {
	switch category {
	case CategoryAmericaStock, CategoryCrypto:
		return "دلار"
	case CategoryIranIndex:
		return "واحد"
	default:
		return "تومان"
	}
}

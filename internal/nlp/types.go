// Package nlp turns free-form Persian questions into structured queries: the
// temporal resolver maps time expressions to concrete dates and the feature
// extractor scans text against the keyword registry.
package nlp

import "time"

// AssetType classifies the query's instrument family.
type AssetType string

const (
	AssetCurrency AssetType = "currency"
	AssetGold     AssetType = "gold"
	AssetCrypto   AssetType = "cryptocurrency"
	AssetStock    AssetType = "stock"
)

// StockSubType narrows AssetStock to its market.
type StockSubType string

const (
	SubAmericaStock StockSubType = "america_stock"
	SubIranIndex    StockSubType = "iran_index"
	SubIranSymbol   StockSubType = "iran_symbol"
)

// TimeTag records whether the query asks about today (live quote path) or an
// unknown/historical point in time.
type TimeTag string

const (
	TimeToday   TimeTag = "today"
	TimeUnknown TimeTag = "unknown"
)

// Query is the structured form of one user request. Symbols keeps first-match
// order with duplicates suppressed. An empty Asset means no registry entry
// matched and the request is unrecognized.
type Query struct {
	Symbols []string
	Asset   AssetType
	Sub     StockSubType
	Date    time.Time
	Time    TimeTag

	Compare  bool
	Change   bool
	Chart    bool
	Forecast bool
}

// Recognized reports whether extraction matched at least one symbol.
func (q Query) Recognized() bool {
	return q.Asset != "" && len(q.Symbols) > 0
}

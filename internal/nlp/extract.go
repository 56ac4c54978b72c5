package nlp

import (
	"strings"
	"time"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/registry"
)

const iranSymbolMarker = "سهام"

var (
	compareWords = []string{"مقایسه", "بازدهی"}
	changeWords  = []string{"تغییر", "نسبت به", "بازده", "عملکرد"}
	chartWords   = []string{"چارت", "نمودار"}
)

// Extractor scans text against the keyword registry and produces a Query.
type Extractor struct {
	reg      *registry.Registry
	resolver *Resolver
}

// NewExtractor builds an extractor sharing the resolver's clock.
func NewExtractor(reg *registry.Registry, resolver *Resolver) *Extractor {
	if resolver == nil {
		resolver = NewResolver(reg, nil)
	}
	return &Extractor{reg: reg, resolver: resolver}
}

// Extract produces the structured query for text. It always returns a Query;
// when nothing matched, Asset stays empty and the caller reports the request
// as unrecognized.
//
// Categories are scanned in order currency, gold, stock, crypto. Matches
// accumulate in Symbols, while Asset is overwritten by the last category that
// matched. That overwrite mirrors the historical behavior and is covered by a
// regression test; do not reorder the scans without revisiting it.
func (e *Extractor) Extract(text string) Query {
	q := Query{}

	match := func(words []string, hit func(word string)) {
		for _, word := range registry.LongestFirst(words) {
			if containsWholeWord(text, word) && !containsSymbol(q.Symbols, word) {
				hit(word)
			}
		}
	}

	match(e.reg.Currency, func(w string) {
		q.Asset = AssetCurrency
		q.Symbols = append(q.Symbols, w)
	})
	match(e.reg.Gold, func(w string) {
		q.Asset = AssetGold
		q.Symbols = append(q.Symbols, w)
	})

	for _, generic := range e.reg.StockGenerics {
		if !strings.Contains(text, generic) {
			continue
		}
		q.Asset = AssetStock
		match(e.reg.AmericaStocks, func(w string) {
			q.Sub = SubAmericaStock
			q.Symbols = append(q.Symbols, w)
		})
		match(e.reg.IranIndexes, func(w string) {
			q.Sub = SubIranIndex
			q.Symbols = append(q.Symbols, w)
		})
		if strings.Contains(text, iranSymbolMarker) {
			// Company tickers are common Persian words; only treat them as
			// symbols when the text literally talks about shares.
			match(e.reg.IranSymbols, func(w string) {
				q.Sub = SubIranSymbol
				q.Symbols = append(q.Symbols, w)
			})
		}
	}

	match(e.reg.Crypto, func(w string) {
		q.Asset = AssetCrypto
		q.Symbols = append(q.Symbols, w)
	})

	q.Symbols = e.dropGenerics(q.Symbols)

	q.Date = e.resolver.Resolve(text)
	if q.Date.Equal(e.resolver.Today()) {
		q.Time = TimeToday
	} else {
		q.Time = TimeUnknown
	}

	q.Compare = containsAny(text, compareWords) && len(q.Symbols) >= 2
	q.Change = containsAny(text, changeWords)
	q.Chart = containsAny(text, chartWords)
	q.Forecast = containsAny(text, e.reg.ForecastWords)

	return q
}

// dropGenerics removes the generic family keyword when a more specific one of
// the same family matched (e.g. "بورس" next to "شاخص کل", "سکه" next to
// "سکه امامی").
func (e *Extractor) dropGenerics(symbols []string) []string {
	specificIndex := false
	specificCoin := false
	for _, s := range symbols {
		if s != "بورس" && e.reg.IsIranIndex(s) {
			specificIndex = true
		}
		if s != "سکه" && e.reg.IsGold(s) && strings.Contains(s, "سکه") {
			specificCoin = true
		}
	}

	filtered := symbols[:0]
	for _, s := range symbols {
		if s == "بورس" && specificIndex {
			continue
		}
		if s == "سکه" && specificCoin {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

func containsSymbol(symbols []string, w string) bool {
	for _, s := range symbols {
		if s == w {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// ResolveDate exposes the resolver for callers that only need a date.
func (e *Extractor) ResolveDate(text string) time.Time {
	return e.resolver.Resolve(text)
}

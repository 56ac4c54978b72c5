// Package registry holds the static keyword tables the chatbot matches user
// text against: asset keywords per category, command words, fixed date
// phrases, and Persian number words. Tables are built once at startup and
// treated as read-only afterwards.
package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DateTag is the symbolic value a fixed date phrase resolves to.
type DateTag string

const (
	TagToday     DateTag = "today"
	TagYesterday DateTag = "yesterday"
	TagLastWeek  DateTag = "last_week"
	TagLastMonth DateTag = "last_month"
	TagLastYear  DateTag = "last_year"
)

// Registry is the full keyword table set. Construct via Default or Load and
// do not mutate afterwards; the extractor and resolver share one instance.
type Registry struct {
	Currency      []string
	Gold          []string
	Crypto        []string
	StockGenerics []string
	AmericaStocks []string
	IranIndexes   []string
	IranSymbols   []string

	// GoldAliases maps a gold keyword to its canonical table symbol
	// (e.g. both spellings of بهار آزادی collapse to one table).
	GoldAliases map[string]string
	// AmericaTickers maps the Persian company name to its exchange ticker.
	AmericaTickers map[string]string

	FixedDates    map[string]DateTag
	NumberWords   map[string]int
	ForecastWords []string
}

type registryFile struct {
	Currency       []string           `yaml:"currency"`
	Gold           []string           `yaml:"gold"`
	Crypto         []string           `yaml:"crypto"`
	StockGenerics  []string           `yaml:"stock_generics"`
	AmericaStocks  []string           `yaml:"america_stocks"`
	IranIndexes    []string           `yaml:"iran_indexes"`
	IranSymbols    []string           `yaml:"iran_symbols"`
	GoldAliases    map[string]string  `yaml:"gold_aliases"`
	AmericaTickers map[string]string  `yaml:"america_tickers"`
	FixedDates     map[string]DateTag `yaml:"fixed_dates"`
	NumberWords    map[string]int     `yaml:"number_words"`
	ForecastWords  []string           `yaml:"forecast_words"`
}

// Load reads a YAML keyword file and overlays it on the built-in defaults.
// Only non-empty sections replace their default counterpart.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("registry: unmarshal %s: %w", path, err)
	}

	reg := Default()
	overlay := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	overlay(&reg.Currency, file.Currency)
	overlay(&reg.Gold, file.Gold)
	overlay(&reg.Crypto, file.Crypto)
	overlay(&reg.StockGenerics, file.StockGenerics)
	overlay(&reg.AmericaStocks, file.AmericaStocks)
	overlay(&reg.IranIndexes, file.IranIndexes)
	overlay(&reg.IranSymbols, file.IranSymbols)
	overlay(&reg.ForecastWords, file.ForecastWords)
	if len(file.GoldAliases) > 0 {
		reg.GoldAliases = file.GoldAliases
	}
	if len(file.AmericaTickers) > 0 {
		reg.AmericaTickers = file.AmericaTickers
	}
	if len(file.FixedDates) > 0 {
		reg.FixedDates = file.FixedDates
	}
	if len(file.NumberWords) > 0 {
		reg.NumberWords = file.NumberWords
	}
	return reg, nil
}

// MustLoad loads the keyword file or panics.
func MustLoad(path string) *Registry {
	reg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return reg
}

// LongestFirst returns a copy of words sorted by descending rune length, so
// that multi-word keywords are tried before the shorter keywords they contain.
func LongestFirst(words []string) []string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len([]rune(sorted[i])) > len([]rune(sorted[j]))
	})
	return sorted
}

// GoldSymbol resolves a gold keyword to its canonical table symbol.
func (r *Registry) GoldSymbol(keyword string) string {
	if canonical, ok := r.GoldAliases[keyword]; ok {
		return canonical
	}
	return keyword
}

func contains(words []string, w string) bool {
	for _, word := range words {
		if word == w {
			return true
		}
	}
	return false
}

// Membership checks used by the comparison reducer to resolve a symbol's
// category without re-running extraction.

func (r *Registry) IsCurrency(w string) bool     { return contains(r.Currency, w) }
func (r *Registry) IsGold(w string) bool         { return contains(r.Gold, w) }
func (r *Registry) IsCrypto(w string) bool       { return contains(r.Crypto, w) }
func (r *Registry) IsIranIndex(w string) bool    { return contains(r.IranIndexes, w) }
func (r *Registry) IsIranSymbol(w string) bool   { return contains(r.IranSymbols, w) }
func (r *Registry) IsAmericaStock(w string) bool { return contains(r.AmericaStocks, w) }

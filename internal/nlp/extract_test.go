package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/registry"
)

func newTestExtractor() *Extractor {
	reg := registry.Default()
	return NewExtractor(reg, NewResolver(reg, func() time.Time { return testNow }))
}

func TestExtractSingleCurrency(t *testing.T) {
	e := newTestExtractor()
	q := e.Extract("قیمت دلار امروز چنده")

	require.Equal(t, AssetCurrency, q.Asset)
	require.Equal(t, []string{"دلار"}, q.Symbols)
	require.Equal(t, TimeToday, q.Time)
	require.False(t, q.Compare)
	require.False(t, q.Change)
	require.False(t, q.Chart)
	require.True(t, q.Recognized())
}

func TestExtractWholeWordNotSubstring(t *testing.T) {
	e := newTestExtractor()
	// "دلاری" must not match the keyword "دلار".
	q := e.Extract("پرداخت دلاری انجام شد")
	require.Empty(t, q.Symbols)
	require.False(t, q.Recognized())
}

func TestExtractCoinPrecedence(t *testing.T) {
	e := newTestExtractor()
	q := e.Extract("قیمت سکه و سکه امامی")

	require.Equal(t, AssetGold, q.Asset)
	require.NotContains(t, q.Symbols, "سکه")
	require.Contains(t, q.Symbols, "سکه امامی")
}

func TestExtractIndexGenericDropped(t *testing.T) {
	e := newTestExtractor()
	q := e.Extract("وضعیت بورس و شاخص کل")

	require.Equal(t, AssetStock, q.Asset)
	require.Equal(t, SubIranIndex, q.Sub)
	require.NotContains(t, q.Symbols, "بورس")
	require.Contains(t, q.Symbols, "شاخص کل")
}

func TestExtractIranSymbolNeedsShareWord(t *testing.T) {
	e := newTestExtractor()

	q := e.Extract("قیمت سهام فولاد در بورس")
	require.Equal(t, SubIranSymbol, q.Sub)
	require.Contains(t, q.Symbols, "فولاد")

	// Without the literal share word the ticker is not extracted.
	q = e.Extract("قیمت فولاد در بورس")
	require.NotContains(t, q.Symbols, "فولاد")
}

func TestExtractCategoryOverwrite(t *testing.T) {
	// Historical behavior: symbols accumulate across categories but the
	// asset type is whatever matched last in scan order. A text with both a
	// currency and a crypto keyword therefore ends up typed as crypto.
	e := newTestExtractor()
	q := e.Extract("مقایسه دلار و بیت کوین")

	require.ElementsMatch(t, []string{"دلار", "بیت کوین"}, q.Symbols)
	require.Equal(t, AssetCrypto, q.Asset)
}

func TestExtractCompareNeedsTwoSymbols(t *testing.T) {
	e := newTestExtractor()

	q := e.Extract("مقایسه دلار و طلا")
	require.True(t, q.Compare)

	q = e.Extract("مقایسه دلار")
	require.False(t, q.Compare)
}

func TestExtractCommandFlags(t *testing.T) {
	e := newTestExtractor()

	q := e.Extract("تغییر قیمت دلار نسبت به هفته گذشته")
	require.True(t, q.Change)
	require.Equal(t, TimeUnknown, q.Time)

	q = e.Extract("نمودار قیمت طلا یکماهه")
	require.True(t, q.Chart)

	q = e.Extract("پیش بینی قیمت بیت کوین")
	require.True(t, q.Forecast)
}

func TestExtractUnrecognized(t *testing.T) {
	e := newTestExtractor()
	q := e.Extract("سلام حالت چطوره")

	require.False(t, q.Recognized())
	require.Empty(t, q.Symbols)
	require.Equal(t, TimeToday, q.Time)
}

func TestExtractSymbolOrderAndDedup(t *testing.T) {
	e := newTestExtractor()
	q := e.Extract("مقایسه یورو و دلار و یورو")

	require.Equal(t, 2, len(q.Symbols))
	require.ElementsMatch(t, []string{"دلار", "یورو"}, q.Symbols)
}

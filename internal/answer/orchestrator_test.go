package answer

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	_ "modernc.org/sqlite"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/nlp"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/registry"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/store"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/llm"
)

var testNow = time.Date(2025, time.August, 29, 15, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2025, time.August, 29, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

type stubAdapter struct {
	quote      fetch.QuoteResult
	quoteCalls int32
	history    []fetch.Row
	historyErr error
}

func (s *stubAdapter) LiveQuote(ctx context.Context, symbol string) fetch.QuoteResult {
	atomic.AddInt32(&s.quoteCalls, 1)
	return s.quote
}

func (s *stubAdapter) FullHistory(ctx context.Context, symbol string) ([]fetch.Row, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return s.history, nil
}

func rowsEnding(last time.Time, n int, base float64) []fetch.Row {
	rows := make([]fetch.Row, 0, n)
	for i := n - 1; i >= 0; i-- {
		rows = append(rows, fetch.Row{
			GregorianDate: last.AddDate(0, 0, -i),
			JalaliDate:    "1404/06/07",
			Close:         base + float64(n-1-i),
			Change:        1,
			ChangePct:     0.5,
		})
	}
	return rows
}

type fixture struct {
	orch     *Orchestrator
	store    *store.Store
	currency *stubAdapter
	crypto   *stubAdapter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := registry.Default()
	resolver := nlp.NewResolver(reg, func() time.Time { return testNow })
	extractor := nlp.NewExtractor(reg, resolver)

	conn := sqlx.NewSqlConn("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	unavailable := fetch.QuoteResult{Status: fetch.QuoteSourceError, Message: "منبع در دسترس نیست."}
	currency := &stubAdapter{quote: unavailable}
	crypto := &stubAdapter{quote: unavailable}
	adapters := map[fetch.Category]fetch.Adapter{
		fetch.CategoryCurrency: currency,
		fetch.CategoryCrypto:   crypto,
	}
	st := store.New(conn, adapters, store.WithClock(func() time.Time { return testNow }))

	return &fixture{
		orch:     New(reg, extractor, st, adapters),
		store:    st,
		currency: currency,
		crypto:   crypto,
	}
}

func TestHandleUnrecognized(t *testing.T) {
	f := newFixture(t)
	res := f.orch.Handle(context.Background(), nlp.Query{})
	assert.Equal(t, msgUnknown, res.Text)
}

func TestAnswerUnrecognizedQuestion(t *testing.T) {
	f := newFixture(t)
	res := f.orch.Answer(context.Background(), "سلام حالت چطوره", nil)
	assert.Equal(t, msgUnknown, res.Text)
}

func TestLiveQuoteToday(t *testing.T) {
	f := newFixture(t)
	f.currency.quote = fetch.QuoteResult{
		Status:  fetch.QuoteOK,
		Message: "قیمت دلار برابر با 98,500 تومان است.",
		Price:   98500,
	}

	res := f.orch.Answer(context.Background(), "قیمت دلار امروز چنده", nil)
	assert.Equal(t, "قیمت دلار برابر با 98,500 تومان است.", res.Text)
	assert.Nil(t, res.Chart)
}

func TestLiveQuoteMemoized(t *testing.T) {
	f := newFixture(t)
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteOK, Message: "پیام", Price: 1}

	ctx := context.Background()
	f.orch.Answer(ctx, "قیمت دلار امروز", nil)
	f.orch.Answer(ctx, "قیمت دلار امروز", nil)
	assert.EqualValues(t, 1, atomic.LoadInt32(&f.currency.quoteCalls))
}

func TestLiveQuoteSourceErrorFallsBackToStore(t *testing.T) {
	f := newFixture(t)
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteSourceError, Message: "خطا"}
	f.currency.history = rowsEnding(day(0), 5, 90000)

	res := f.orch.Answer(context.Background(), "قیمت دلار امروز", nil)
	assert.Contains(t, res.Text, "قیمت دلار در تاریخ")
	assert.Contains(t, res.Text, "90,004")
}

func TestPointInTimeHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := fetch.TableName(fetch.CategoryCurrency, "دلار")
	require.NoError(t, f.store.Save(ctx, table, rowsEnding(day(-2), 5, 95000)))

	res := f.orch.Answer(ctx, "قیمت دلار ۳ روز پیش", nil)
	assert.Contains(t, res.Text, "قیمت دلار در تاریخ 1404/06/07")
	// closest row to three days ago is day(-3), one step below the newest
	assert.Contains(t, res.Text, "95,003")
}

func TestPointInTimeMissTriggersRefresh(t *testing.T) {
	f := newFixture(t)
	f.currency.history = rowsEnding(day(0), 40, 90000)

	res := f.orch.Answer(context.Background(), "قیمت دلار هفته گذشته", nil)
	assert.Contains(t, res.Text, "قیمت دلار در تاریخ")
}

func TestPointInTimeMissAndFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.currency.historyErr = errors.New("upstream down")

	res := f.orch.Answer(context.Background(), "قیمت دلار هفته گذشته", nil)
	assert.Contains(t, res.Text, "متاسفانه داده‌ای برای دلار")
}

func TestChangeTodayServesLiveQuote(t *testing.T) {
	f := newFixture(t)
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteOK, Message: "قیمت دلار برابر با 98,500 تومان است.", Price: 98500}

	// "today" wins over the change command word
	res := f.orch.Answer(context.Background(), "تغییر قیمت دلار امروز", nil)
	assert.Equal(t, "قیمت دلار برابر با 98,500 تومان است.", res.Text)
}

func TestChangeComparesPastCloseAgainstLiveQuote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteOK, Message: "قیمت دلار برابر با 110 تومان است.", Price: 110}
	table := fetch.TableName(fetch.CategoryCurrency, "دلار")
	require.NoError(t, f.store.Save(ctx, table, rowsEnding(day(-7), 1, 100)))

	res := f.orch.Answer(ctx, "تغییر قیمت دلار نسبت به هفته گذشته", nil)
	assert.Contains(t, res.Text, "افزایش")
	assert.Contains(t, res.Text, "10.00%")
	assert.Contains(t, res.Text, "از 100 به 110 تومان")
}

func TestChangeZeroPastPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteOK, Message: "پیام", Price: 110}
	table := fetch.TableName(fetch.CategoryCurrency, "دلار")
	require.NoError(t, f.store.Save(ctx, table, rowsEnding(day(-7), 1, 0)))

	res := f.orch.Answer(ctx, "تغییر قیمت دلار نسبت به هفته گذشته", nil)
	assert.Contains(t, res.Text, "قیمت اولیه دلار صفر بوده")
}

func TestCompareRanksReturnsAcrossCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gold := &stubAdapter{quote: fetch.QuoteResult{Status: fetch.QuoteOK, Message: "قیمت انس طلا برابر با 100 دلار است.", Price: 100}}
	f.orch.adapters[fetch.CategoryGold] = gold
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteOK, Message: "قیمت دلار برابر با 110 تومان است.", Price: 110}

	require.NoError(t, f.store.Save(ctx, fetch.TableName(fetch.CategoryCurrency, "دلار"), rowsEnding(day(-7), 1, 100)))
	require.NoError(t, f.store.Save(ctx, fetch.TableName(fetch.CategoryGold, "انس طلا"), rowsEnding(day(-7), 1, 200)))

	res := f.orch.Answer(ctx, "مقایسه بازدهی دلار و طلا نسبت به هفته گذشته", nil)
	assert.Contains(t, res.Text, "مقایسه بازدهی دارایی‌ها")
	// signed ranking: +10% beats -50% even though |50| > |10|
	assert.Contains(t, res.Text, "🔝 بیشترین بازده: دلار 10.00+%")
	assert.Contains(t, res.Text, "🔻 کمترین بازده: انس طلا 50.00-%")
	assert.NotContains(t, res.Text, "داده‌ای پیدا نشد")
}

func TestCompareReportsSymbolsWithoutData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteOK, Message: "پیام", Price: 110}
	require.NoError(t, f.store.Save(ctx, fetch.TableName(fetch.CategoryCurrency, "دلار"), rowsEnding(day(-7), 1, 100)))
	// no gold table and the gold adapter's history fails
	f.orch.adapters[fetch.CategoryGold] = &stubAdapter{
		quote:      fetch.QuoteResult{Status: fetch.QuoteSourceError, Message: "خطا"},
		historyErr: errors.New("upstream down"),
	}

	res := f.orch.Answer(ctx, "مقایسه بازدهی دلار و طلا نسبت به هفته گذشته", nil)
	assert.Contains(t, res.Text, "دلار: 10.00+%")
	assert.Contains(t, res.Text, "⚠️ برای انس طلا داده‌ای پیدا نشد.")
}

func TestCompareWinsOverChart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, fetch.TableName(fetch.CategoryCurrency, "دلار"), rowsEnding(day(0), 3, 98000)))
	require.NoError(t, f.store.Save(ctx, fetch.TableName(fetch.CategoryCurrency, "یورو"), rowsEnding(day(0), 3, 105000)))

	q := nlp.Query{
		Symbols: []string{"دلار", "یورو"},
		Asset:   nlp.AssetCurrency,
		Date:    day(0),
		Time:    nlp.TimeToday,
		Compare: true,
		Chart:   true,
	}
	res := f.orch.Handle(ctx, q)
	assert.Nil(t, res.Chart)
	assert.Contains(t, res.Text, "مقایسه بازدهی")
}

func TestChartRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := fetch.TableName(fetch.CategoryCurrency, "دلار")
	require.NoError(t, f.store.Save(ctx, table, rowsEnding(day(0), 10, 95000)))

	res := f.orch.Answer(ctx, "نمودار قیمت دلار هفته گذشته", nil)
	require.NotNil(t, res.Chart)
	assert.Equal(t, "دلار", res.Chart.Symbol)
	// seven-day window over a ten-day series
	assert.Len(t, res.Chart.Points, 8)
	assert.Contains(t, res.Text, "نمودار قیمت دلار")
}

func TestForecastQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := fetch.TableName(fetch.CategoryCrypto, "بیت کوین")
	require.NoError(t, f.store.Save(ctx, table, rowsEnding(day(0), 20, 60000)))

	res := f.orch.Answer(ctx, "پیش بینی قیمت بیت کوین", nil)
	assert.Contains(t, res.Text, "پیش‌بینی می‌شود قیمت بیت کوین")
	assert.Contains(t, res.Text, "صعودی")
}

func TestGoldAliasResolvesTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gold := &stubAdapter{quote: fetch.QuoteResult{Status: fetch.QuoteOK, Message: "قیمت انس طلا ...", Price: 1}}
	f.orch.adapters[fetch.CategoryGold] = gold

	res := f.orch.Answer(ctx, "قیمت طلا امروز", nil)
	assert.Equal(t, "قیمت انس طلا ...", res.Text)
}

func TestAnswerRewritesWithResponder(t *testing.T) {
	f := newFixture(t)
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteOK, Message: "قیمت دلار برابر با 98,500 تومان است.", Price: 98500}
	f.orch.responder = llm.NewResponder(chatterFunc(func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
		return chatReply("دلار الان ۹۸٬۵۰۰ تومانه!"), nil
	}))

	res := f.orch.Answer(context.Background(), "قیمت دلار امروز چنده", nil)
	assert.Equal(t, "دلار الان ۹۸٬۵۰۰ تومانه!", res.Text)
}

func TestAnswerCorrectsMisspelledQuestion(t *testing.T) {
	f := newFixture(t)
	f.currency.quote = fetch.QuoteResult{Status: fetch.QuoteOK, Message: "قیمت دلار برابر با 98,500 تومان است.", Price: 98500}

	// first call corrects the question, second rewrites the answer
	var calls int32
	f.orch.responder = llm.NewResponder(chatterFunc(func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return chatReply("قیمت دلار امروز چنده"), nil
		}
		return chatReply("دلار الان ۹۸٬۵۰۰ تومانه!"), nil
	}))

	res := f.orch.Answer(context.Background(), "قیمت دلا امروز چنده", nil)
	assert.Equal(t, "دلار الان ۹۸٬۵۰۰ تومانه!", res.Text)
	assert.EqualValues(t, 1, atomic.LoadInt32(&f.currency.quoteCalls))
}

type chatterFunc func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)

func (f chatterFunc) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	return f(ctx, req)
}

func chatReply(text string) *llm.ChatResponse {
	return &llm.ChatResponse{Choices: []llm.Choice{{Message: llm.Message{Content: text}}}}
}

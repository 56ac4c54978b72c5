// Package answer turns a structured query into a Persian reply. The
// orchestrator routes each query through the decision tree the bot supports:
// comparison, chart, forecast, daily change, live quote, and point-in-time
// lookup, backed by the series store and the live fetch adapters.
package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/nlp"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/registry"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/store"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/chart"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/forecast"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/llm"
)

// DefaultQuoteTTL bounds how long a live quote is reused before the source
// page is scraped again.
const DefaultQuoteTTL = 2 * time.Minute

// Result is one answered query. Chart is set only for chart requests; Text
// always carries a displayable reply.
type Result struct {
	Text  string
	Chart *chart.Payload
}

// Orchestrator answers structured queries.
type Orchestrator struct {
	reg       *registry.Registry
	extractor *nlp.Extractor
	store     *store.Store
	adapters  map[fetch.Category]fetch.Adapter
	responder *llm.Responder
	quotes    *gocache.Cache
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithResponder enables LLM rewriting of template answers.
func WithResponder(r *llm.Responder) Option {
	return func(o *Orchestrator) { o.responder = r }
}

// WithQuoteTTL overrides the live quote memoization window.
func WithQuoteTTL(ttl time.Duration) Option {
	return func(o *Orchestrator) {
		o.quotes = gocache.New(ttl, 2*ttl)
	}
}

// New wires an orchestrator over the registry, extractor, store and adapters.
func New(reg *registry.Registry, extractor *nlp.Extractor, st *store.Store, adapters map[fetch.Category]fetch.Adapter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		reg:       reg,
		extractor: extractor,
		store:     st,
		adapters:  adapters,
		quotes:    gocache.New(DefaultQuoteTTL, 2*DefaultQuoteTTL),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Answer extracts a query from question, resolves it, and optionally rewrites
// the reply conversationally. history feeds the LLM only; the decision tree
// sees a single question at a time.
func (o *Orchestrator) Answer(ctx context.Context, question string, history []llm.HistoryTurn) Result {
	q := o.extractor.Extract(question)
	if !q.Recognized() && o.responder.Enabled() {
		// a typo in an asset name defeats keyword matching; one correction
		// pass gives extraction a second chance
		if fixed := o.responder.Correct(ctx, question); fixed != question {
			q = o.extractor.Extract(fixed)
		}
	}
	result := o.Handle(ctx, q)

	// chart payloads carry exact numbers; only prose answers get rewritten
	if o.responder != nil && o.responder.Enabled() && result.Chart == nil && result.Text != msgUnknown {
		result.Text = o.responder.Respond(ctx, question, result.Text, history)
	}
	return result
}

// Handle resolves a structured query. Comparison wins over chart when a
// question asks for both; chart wins over the per-symbol paths.
func (o *Orchestrator) Handle(ctx context.Context, q nlp.Query) Result {
	if !q.Recognized() {
		return Result{Text: msgUnknown}
	}

	switch {
	case q.Compare && len(q.Symbols) >= 2:
		return Result{Text: o.compare(ctx, q)}
	case q.Chart:
		return o.chartResult(ctx, q)
	}

	answers := make([]string, 0, len(q.Symbols))
	for _, symbol := range q.Symbols {
		answers = append(answers, o.answerOne(ctx, q, symbol))
	}
	return Result{Text: strings.Join(answers, "\n\n")}
}

func (o *Orchestrator) answerOne(ctx context.Context, q nlp.Query, symbol string) string {
	category, ok := o.categoryFor(q)
	if !ok {
		return msgUnknown
	}
	canonical := o.canonicalSymbol(category, symbol)
	table := fetch.TableName(category, canonical)
	unit := fetch.Unit(category)

	// a question about today gets the live quote no matter what other
	// command words appeared; change and forecast apply to the past only
	switch {
	case q.Time == nlp.TimeToday && !q.Forecast:
		return o.liveAnswer(ctx, category, canonical, table, unit)

	case q.Change:
		return o.changeAnswer(ctx, category, canonical, table, unit, q.Date)

	case q.Forecast:
		rows := o.store.GetOrRefresh(ctx, table)
		pred, err := forecast.Predict(canonical, unit, rows)
		if err != nil {
			logx.WithContext(ctx).Slowf("answer: forecast %s: %v", table, err)
			return formatNoData(canonical, q.Date)
		}
		return formatForecast(pred)

	default:
		row, ok := o.closestWithRefresh(ctx, table, q.Date)
		if !ok {
			return formatNoData(canonical, q.Date)
		}
		return formatPriceAtDate(canonical, row, unit)
	}
}

// changeAnswer reports the percent move from the close nearest to date up to
// today's price. A zero past close makes the percentage undefined and gets a
// descriptive message instead.
func (o *Orchestrator) changeAnswer(ctx context.Context, category fetch.Category, symbol, table, unit string, date time.Time) string {
	past, found := o.closestWithRefresh(ctx, table, date)
	if !found {
		return formatNoData(symbol, date)
	}
	if past.Close == 0 {
		return formatZeroBase(symbol)
	}
	today, ok := o.todayPrice(ctx, category, symbol, table)
	if !ok {
		return formatNoData(symbol, time.Now())
	}
	pct := (today - past.Close) / past.Close * 100
	return formatReturnSince(symbol, date, past.Close, today, pct, unit)
}

// todayPrice is the live quote when the source answers; otherwise the newest
// cached close stands in.
func (o *Orchestrator) todayPrice(ctx context.Context, category fetch.Category, symbol, table string) (float64, bool) {
	if quote := o.liveQuote(ctx, category, symbol); quote.OK() {
		return quote.Price, true
	}
	rows := o.store.GetOrRefresh(ctx, table)
	if len(rows) == 0 {
		return 0, false
	}
	return rows[len(rows)-1].Close, true
}

// liveAnswer serves today's price from the source page, memoized for a short
// window. When the source fails the cached series stands in for the quote.
func (o *Orchestrator) liveAnswer(ctx context.Context, category fetch.Category, symbol, table, unit string) string {
	result := o.liveQuote(ctx, category, symbol)
	switch result.Status {
	case fetch.QuoteOK:
		return result.Message
	case fetch.QuoteNotFound:
		return result.Message
	default:
		rows := o.store.GetOrRefresh(ctx, table)
		if len(rows) == 0 {
			return formatNoData(symbol, time.Now())
		}
		last := rows[len(rows)-1]
		return formatPriceAtDate(symbol, last, unit)
	}
}

func (o *Orchestrator) liveQuote(ctx context.Context, category fetch.Category, symbol string) fetch.QuoteResult {
	key := string(category) + "|" + symbol
	if cached, ok := o.quotes.Get(key); ok {
		return cached.(fetch.QuoteResult)
	}

	adapter, ok := o.adapters[category]
	if !ok {
		return fetch.QuoteResult{Status: fetch.QuoteSourceError, Message: formatNoData(symbol, time.Now())}
	}
	result := adapter.LiveQuote(ctx, symbol)
	if result.Status != fetch.QuoteSourceError {
		o.quotes.SetDefault(key, result)
	}
	return result
}

// closestWithRefresh looks up the nearest persisted row and, on a miss,
// refreshes the table once and retries. A historical question is the only
// path that forces a fetch for data the staleness check would not.
func (o *Orchestrator) closestWithRefresh(ctx context.Context, table string, target time.Time) (fetch.Row, bool) {
	if row, ok := o.store.ClosestRow(ctx, table, target, store.DefaultThresholdDays); ok {
		return row, true
	}
	if _, err := o.store.Refresh(ctx, table); err != nil {
		logx.WithContext(ctx).Errorf("answer: refresh %s: %v", table, err)
		return fetch.Row{}, false
	}
	return o.store.ClosestRow(ctx, table, target, store.DefaultThresholdDays)
}

// compare ranks the symbols by their return from q.Date to today. Each symbol
// resolves its own category, so a comparison can span families the extractor
// collapsed into one asset type.
func (o *Orchestrator) compare(ctx context.Context, q nlp.Query) string {
	var returns []assetReturn
	var missing []string
	for _, symbol := range q.Symbols {
		category, ok := o.symbolCategory(symbol)
		if !ok {
			missing = append(missing, symbol)
			continue
		}
		canonical := o.canonicalSymbol(category, symbol)
		table := fetch.TableName(category, canonical)

		past, found := o.closestWithRefresh(ctx, table, q.Date)
		if !found {
			missing = append(missing, canonical)
			continue
		}
		today, ok := o.todayPrice(ctx, category, canonical, table)
		if !ok {
			missing = append(missing, canonical)
			continue
		}

		var pct float64
		if past.Close != 0 {
			pct = (today - past.Close) / past.Close * 100
		}
		returns = append(returns, assetReturn{Symbol: canonical, Pct: pct})
	}
	return formatReturns(returns, missing)
}

func (o *Orchestrator) chartResult(ctx context.Context, q nlp.Query) Result {
	category, ok := o.categoryFor(q)
	if !ok {
		return Result{Text: msgUnknown}
	}
	symbol := o.canonicalSymbol(category, q.Symbols[0])
	table := fetch.TableName(category, symbol)

	rows := o.store.GetOrRefresh(ctx, table)
	payload, err := chart.Build(symbol, fetch.Unit(category), rows, q.Date)
	if err != nil {
		logx.WithContext(ctx).Slowf("answer: chart %s: %v", table, err)
		return Result{Text: formatNoData(symbol, q.Date)}
	}

	text, err := chart.TextRenderer{}.Render(payload)
	if err != nil {
		text = fmt.Sprintf("نمودار قیمت %s آماده شد.", symbol)
	}
	return Result{Text: text, Chart: &payload}
}

// symbolCategory resolves one symbol's family by registry membership,
// independent of what the rest of the question matched.
func (o *Orchestrator) symbolCategory(symbol string) (fetch.Category, bool) {
	switch {
	case o.reg.IsCurrency(symbol):
		return fetch.CategoryCurrency, true
	case o.reg.IsGold(symbol):
		return fetch.CategoryGold, true
	case o.reg.IsCrypto(symbol):
		return fetch.CategoryCrypto, true
	case o.reg.IsIranIndex(symbol):
		return fetch.CategoryIranIndex, true
	case o.reg.IsIranSymbol(symbol):
		return fetch.CategoryIranSymbol, true
	case o.reg.IsAmericaStock(symbol):
		return fetch.CategoryAmericaStock, true
	}
	return "", false
}

func (o *Orchestrator) categoryFor(q nlp.Query) (fetch.Category, bool) {
	switch q.Asset {
	case nlp.AssetCurrency:
		return fetch.CategoryCurrency, true
	case nlp.AssetGold:
		return fetch.CategoryGold, true
	case nlp.AssetCrypto:
		return fetch.CategoryCrypto, true
	case nlp.AssetStock:
		switch q.Sub {
		case nlp.SubAmericaStock:
			return fetch.CategoryAmericaStock, true
		case nlp.SubIranIndex:
			return fetch.CategoryIranIndex, true
		case nlp.SubIranSymbol:
			return fetch.CategoryIranSymbol, true
		}
	}
	return "", false
}

func (o *Orchestrator) canonicalSymbol(category fetch.Category, symbol string) string {
	if category == fetch.CategoryGold {
		return o.reg.GoldSymbol(symbol)
	}
	return symbol
}

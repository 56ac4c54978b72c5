package scheduler

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	_ "modernc.org/sqlite"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/store"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
)

type countingAdapter struct {
	calls int32
	rows  []fetch.Row
}

func (c *countingAdapter) LiveQuote(ctx context.Context, symbol string) fetch.QuoteResult {
	return fetch.QuoteResult{Status: fetch.QuoteNotFound}
}

func (c *countingAdapter) FullHistory(ctx context.Context, symbol string) ([]fetch.Row, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.rows, nil
}

func TestRunOnceRefreshesStaleTablesOnly(t *testing.T) {
	now := time.Date(2025, time.August, 29, 12, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.August, 29, 0, 0, 0, 0, time.UTC)

	adapter := &countingAdapter{rows: []fetch.Row{{GregorianDate: today, Close: 100}}}
	conn := sqlx.NewSqlConn("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	st := store.New(conn,
		map[fetch.Category]fetch.Adapter{fetch.CategoryCurrency: adapter},
		store.WithClock(func() time.Time { return now }))

	ctx := context.Background()
	stale := fetch.TableName(fetch.CategoryCurrency, "دلار")
	fresh := fetch.TableName(fetch.CategoryCurrency, "یورو")
	require.NoError(t, st.Save(ctx, stale, []fetch.Row{{GregorianDate: today.AddDate(0, 0, -4), Close: 90}}))
	require.NoError(t, st.Save(ctx, fresh, []fetch.Row{{GregorianDate: today, Close: 110}}))

	visited := New(st, "").RunOnce(ctx)
	assert.Equal(t, 2, visited)
	assert.EqualValues(t, 1, atomic.LoadInt32(&adapter.calls))
}

func TestRunOnceEmptyDatabase(t *testing.T) {
	conn := sqlx.NewSqlConn("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	st := store.New(conn, nil)
	assert.Zero(t, New(st, "").RunOnce(context.Background()))
}

func TestStartRejectsBadSpec(t *testing.T) {
	conn := sqlx.NewSqlConn("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	st := store.New(conn, nil)
	assert.Error(t, New(st, "not a spec").Start())
}

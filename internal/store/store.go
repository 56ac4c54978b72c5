// Package store owns the persisted per-symbol time series tables. One table
// per (category, symbol) holds the full daily history; a refresh replaces
// the table wholesale. The store decides whether persisted data answers a
// query or whether the category's fetch adapter must be invoked.
package store

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
)

// DefaultThresholdDays is the maximum day-distance within which a historical
// lookup counts as a hit.
const DefaultThresholdDays = 3

const dateLayout = "2006-01-02"

// Store reads and replaces per-symbol series tables.
type Store struct {
	conn     sqlx.SqlConn
	adapters map[fetch.Category]fetch.Adapter
	now      func() time.Time

	// bindVar renders the placeholder for the n-th statement parameter;
	// sqlite takes ?, postgres takes $N.
	bindVar func(n int) string

	// refreshes for the same table are collapsed so concurrent stale
	// queries trigger a single external fetch.
	sf singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects a custom clock for staleness checks (tests).
func WithClock(nowFn func() time.Time) Option {
	return func(s *Store) {
		if nowFn != nil {
			s.now = nowFn
		}
	}
}

// WithDriver adapts statement placeholders to the configured driver. pgx and
// postgres use numbered $N parameters; everything else keeps ?.
func WithDriver(driver string) Option {
	return func(s *Store) {
		switch strings.ToLower(driver) {
		case "pgx", "postgres":
			s.bindVar = func(n int) string { return "$" + strconv.Itoa(n) }
		}
	}
}

// New constructs a Store over conn routing refreshes to adapters.
func New(conn sqlx.SqlConn, adapters map[fetch.Category]fetch.Adapter, opts ...Option) *Store {
	s := &Store{
		conn:     conn,
		adapters: adapters,
		now:      time.Now,
		bindVar:  func(int) string { return "?" },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// rowRecord is the persisted shape; dates are stored as text so the schema
// works identically on sqlite and postgres.
type rowRecord struct {
	GregorianDate string  `db:"gregorian_date"`
	JalaliDate    string  `db:"jalali_date"`
	Open          float64 `db:"open"`
	Low           float64 `db:"low"`
	High          float64 `db:"high"`
	Close         float64 `db:"close"`
	Change        float64 `db:"change"`
	ChangePct     float64 `db:"change_pct"`
}

func toRecord(r fetch.Row) rowRecord {
	return rowRecord{
		GregorianDate: r.GregorianDate.Format(dateLayout),
		JalaliDate:    r.JalaliDate,
		Open:          r.Open,
		Low:           r.Low,
		High:          r.High,
		Close:         r.Close,
		Change:        r.Change,
		ChangePct:     r.ChangePct,
	}
}

func fromRecord(rec rowRecord) (fetch.Row, error) {
	day, err := time.Parse(dateLayout, rec.GregorianDate)
	if err != nil {
		return fetch.Row{}, fmt.Errorf("store: malformed date %q: %w", rec.GregorianDate, err)
	}
	return fetch.Row{
		GregorianDate: day,
		JalaliDate:    rec.JalaliDate,
		Open:          rec.Open,
		Low:           rec.Low,
		High:          rec.High,
		Close:         rec.Close,
		Change:        rec.Change,
		ChangePct:     rec.ChangePct,
	}, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *Store) insertStatement(ident string) string {
	marks := make([]string, 8)
	for i := range marks {
		marks[i] = s.bindVar(i + 1)
	}
	return fmt.Sprintf(`INSERT INTO %s (gregorian_date, jalali_date, "open", low, high, "close", "change", change_pct) VALUES (%s)`,
		ident, strings.Join(marks, ", "))
}

// readAll returns the table's rows ordered by date. A missing table and an
// empty table are the same empty result.
func (s *Store) readAll(ctx context.Context, table string) []fetch.Row {
	query := fmt.Sprintf(`SELECT gregorian_date, jalali_date, "open", low, high, "close", "change", change_pct FROM %s ORDER BY gregorian_date`, quoteIdent(table))

	var records []rowRecord
	if err := s.conn.QueryRowsCtx(ctx, &records, query); err != nil {
		// Missing tables surface as a query error; treat them as empty.
		logx.WithContext(ctx).Debugf("store: read %s: %v", table, err)
		return nil
	}

	rows := make([]fetch.Row, 0, len(records))
	for _, rec := range records {
		row, err := fromRecord(rec)
		if err != nil {
			logx.WithContext(ctx).Slowf("store: skipping row in %s: %v", table, err)
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// ClosestRow finds the persisted row nearest to target. It reports a miss
// when the table is missing, empty, or the nearest row is further than
// thresholdDays away; the three cases are indistinguishable to the caller.
func (s *Store) ClosestRow(ctx context.Context, table string, target time.Time, thresholdDays int) (fetch.Row, bool) {
	rows := s.readAll(ctx, table)
	if len(rows) == 0 {
		return fetch.Row{}, false
	}

	best := rows[0]
	bestDist := dayDistance(best.GregorianDate, target)
	for _, row := range rows[1:] {
		if d := dayDistance(row.GregorianDate, target); d < bestDist {
			best, bestDist = row, d
		}
	}
	if bestDist > thresholdDays {
		logx.WithContext(ctx).Debugf("store: closest row in %s is %d days from %s, beyond threshold",
			table, bestDist, target.Format(dateLayout))
		return fetch.Row{}, false
	}
	return best, true
}

// Save replaces the table wholesale with rows. It is the only mutation path
// besides creation and is idempotent for identical input.
func (s *Store) Save(ctx context.Context, table string, rows []fetch.Row) error {
	ident := quoteIdent(table)
	return s.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		if _, err := session.ExecCtx(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, ident)); err != nil {
			return fmt.Errorf("store: drop %s: %w", table, err)
		}
		ddl := fmt.Sprintf(`CREATE TABLE %s (
			gregorian_date TEXT NOT NULL,
			jalali_date TEXT,
			"open" REAL,
			low REAL,
			high REAL,
			"close" REAL NOT NULL,
			"change" REAL,
			change_pct REAL
		)`, ident)
		if _, err := session.ExecCtx(ctx, ddl); err != nil {
			return fmt.Errorf("store: create %s: %w", table, err)
		}
		insert := s.insertStatement(ident)
		for _, row := range rows {
			rec := toRecord(row)
			if _, err := session.ExecCtx(ctx, insert,
				rec.GregorianDate, rec.JalaliDate, rec.Open, rec.Low, rec.High, rec.Close, rec.Change, rec.ChangePct); err != nil {
				return fmt.Errorf("store: insert into %s: %w", table, err)
			}
		}
		return nil
	})
}

// GetOrRefresh returns the table's full series, refreshing it from the
// category's adapter when the table is absent, empty, or its newest row is
// older than today. A failed refresh returns the previously persisted series
// instead of an error; staleness is a best-effort refresh, never a hard
// requirement.
func (s *Store) GetOrRefresh(ctx context.Context, table string) []fetch.Row {
	rows := s.readAll(ctx, table)

	stale := len(rows) == 0
	if !stale {
		maxDate := rows[len(rows)-1].GregorianDate
		stale = s.today().Sub(maxDate) > 0
	}
	if !stale {
		return rows
	}

	fresh, err := s.Refresh(ctx, table)
	if err != nil {
		logx.WithContext(ctx).Errorf("store: refresh %s failed, serving cached data: %v", table, err)
		return rows
	}
	return fresh
}

// Refresh forces a full fetch for the table and replaces it. Concurrent
// refreshes for the same table share one external call.
func (s *Store) Refresh(ctx context.Context, table string) ([]fetch.Row, error) {
	result, err, _ := s.sf.Do(table, func() (interface{}, error) {
		category, symbol, ok := fetch.ParseTable(table)
		if !ok {
			return nil, fmt.Errorf("store: table %q matches no category prefix", table)
		}
		adapter, ok := s.adapters[category]
		if !ok {
			return nil, fmt.Errorf("store: no adapter configured for category %s", category)
		}

		rows, err := adapter.FullHistory(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("store: fetch history for %s: %w", table, err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("store: empty history for %s", table)
		}
		if err := s.Save(ctx, table, rows); err != nil {
			return nil, err
		}
		logx.WithContext(ctx).Infof("store: refreshed %s with %d rows", table, len(rows))
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]fetch.Row), nil
}

// Tables lists the persisted series tables, sqlite catalog first and the
// postgres information schema as fallback. Non-series tables are skipped.
func (s *Store) Tables(ctx context.Context) []string {
	var names []string
	if err := s.conn.QueryRowsCtx(ctx, &names,
		`SELECT name FROM sqlite_master WHERE type = 'table'`); err != nil {
		names = names[:0]
		if err := s.conn.QueryRowsCtx(ctx, &names,
			`SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'`); err != nil {
			logx.WithContext(ctx).Errorf("store: list tables: %v", err)
			return nil
		}
	}

	tables := names[:0]
	for _, name := range names {
		if _, _, ok := fetch.ParseTable(name); ok {
			tables = append(tables, name)
		}
	}
	return tables
}

func (s *Store) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func dayDistance(a, b time.Time) int {
	hours := a.Sub(b).Hours()
	return int(math.Abs(math.Round(hours / 24)))
}

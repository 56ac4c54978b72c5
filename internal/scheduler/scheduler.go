// Package scheduler keeps the series cache warm: on a cron schedule it walks
// every persisted table and refreshes the stale ones, so interactive queries
// rarely pay for a full history fetch.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/store"
)

// DefaultSpec refreshes at half past every hour.
const DefaultSpec = "0 30 * * * *"

// Refresher schedules background cache refreshes.
type Refresher struct {
	store *store.Store
	spec  string
	cron  *cron.Cron
}

// New builds a refresher over st; an empty spec uses DefaultSpec.
func New(st *store.Store, spec string) *Refresher {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Refresher{
		store: st,
		spec:  spec,
		cron:  cron.New(cron.WithSeconds()),
	}
}

// Start registers the refresh job and starts the cron loop.
func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, func() {
		r.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	r.cron.Start()
	logx.Infof("scheduler: refresh job scheduled with spec %q", r.spec)
	return nil
}

// Stop halts scheduling and waits for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// RunOnce refreshes every stale table now and reports how many tables were
// visited. Fetch failures are logged and skipped; one bad source must not
// starve the rest of the cache.
func (r *Refresher) RunOnce(ctx context.Context) int {
	tables := r.store.Tables(ctx)
	start := time.Now()
	for _, table := range tables {
		r.store.GetOrRefresh(ctx, table)
	}
	logx.WithContext(ctx).Infof("scheduler: visited %d tables in %s", len(tables), time.Since(start))
	return len(tables)
}

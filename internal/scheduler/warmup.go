// Package scheduler keeps the aggregation cache warm so that user requests
// rarely pay for a full provider fan-out.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"jobboard/internal/metrics"
	"jobboard/internal/usecase"

	"github.com/robfig/cron/v3"
)

const runTimeout = 2 * time.Minute

type Invalidator interface {
	InvalidateAggregates(ctx context.Context) (int, error)
}

type UpdateNotifier interface {
	NotifyJobsUpdated(keyword, source string, breakdown map[string]int)
}

type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

type Warmup struct {
	cron        *cron.Cron
	spec        string
	queries     []string
	jobs        usecase.JobSearchUsecase
	internships usecase.InternshipUsecase
	cache       Invalidator
	notifier    UpdateNotifier
	sweeper     Sweeper
	logger      *log.Logger

	running atomic.Bool
	cancel  context.CancelFunc
}

// NewWarmup fires every intervalMinutes. queries are the upstream query
// shapes to pre-aggregate; "" is the unfiltered listing.
func NewWarmup(intervalMinutes int, queries []string, jobs usecase.JobSearchUsecase, internships usecase.InternshipUsecase, cache Invalidator, notifier UpdateNotifier, logger *log.Logger) *Warmup {
	if intervalMinutes <= 0 {
		intervalMinutes = 30
	}
	if len(queries) == 0 {
		queries = []string{""}
	}
	cronLogger := cron.DefaultLogger
	if logger != nil {
		cronLogger = cron.PrintfLogger(logger)
	}
	return &Warmup{
		cron:        cron.New(cron.WithLogger(cronLogger), cron.WithChain(cron.SkipIfStillRunning(cronLogger))),
		spec:        fmt.Sprintf("@every %dm", intervalMinutes),
		queries:     queries,
		jobs:        jobs,
		internships: internships,
		cache:       cache,
		notifier:    notifier,
		logger:      logger,
	}
}

// WithSweeper runs s after every warm-up pass.
func (w *Warmup) WithSweeper(s Sweeper) *Warmup {
	w.sweeper = s
	return w
}

// Start registers the job, starts the cron loop and runs once immediately
// without blocking.
func (w *Warmup) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	if _, err := w.cron.AddFunc(w.spec, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	w.cron.Start()
	w.logf("[Warmup] cron started spec=%s queries=%d", w.spec, len(w.queries))

	go w.RunOnce(ctx)
	return nil
}

func (w *Warmup) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	<-w.cron.Stop().Done()
	w.logf("[Warmup] cron stopped")
}

// RunOnce drops the cached aggregates and rebuilds them. Overlapping calls
// return immediately.
func (w *Warmup) RunOnce(ctx context.Context) {
	if !w.running.CompareAndSwap(false, true) {
		w.logf("[Warmup] skipped: previous run still active")
		return
	}
	defer w.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	start := time.Now()
	if w.cache != nil {
		n, err := w.cache.InvalidateAggregates(ctx)
		if err != nil {
			w.logf("[Warmup] invalidate error=%v", err)
		} else {
			w.logf("[Warmup] invalidated keys=%d", n)
		}
	}

	failures := 0
	for _, q := range w.queries {
		if w.jobs == nil {
			break
		}
		res, err := w.jobs.SearchJobs(ctx, usecase.JobSearchParams{Query: q})
		if err != nil {
			failures++
			w.logf("[Warmup] query=%q error=%v", q, err)
			continue
		}
		w.logf("[Warmup] query=%q jobs=%d", q, res.TotalResults)
		if w.notifier != nil {
			w.notifier.NotifyJobsUpdated(keywordFor(q), "warmup", breakdownLabels(res))
		}
	}

	if w.internships != nil {
		if _, err := w.internships.SearchInternships(ctx, usecase.InternshipParams{}); err != nil {
			failures++
			w.logf("[Warmup] internships error=%v", err)
		}
	}

	if w.sweeper != nil {
		if _, err := w.sweeper.Sweep(ctx); err != nil {
			failures++
		}
	}

	outcome := "ok"
	if failures > 0 {
		outcome = "partial"
	}
	metrics.WarmupRunsTotal.WithLabelValues(outcome).Inc()
	w.logf("[Warmup] run complete outcome=%s elapsed=%s", outcome, time.Since(start).Round(time.Millisecond))
}

func keywordFor(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return "all"
	}
	return q
}

func breakdownLabels(res usecase.JobSearchResult) map[string]int {
	out := make(map[string]int, len(res.Breakdown))
	for src, n := range res.Breakdown {
		out[string(src)] = n
	}
	return out
}

func (w *Warmup) logf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf(format, args...)
	}
}

package usecase

import (
	"context"
	"log"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/metrics"
	"jobboard/internal/search"
	"jobboard/internal/service"
)

const (
	aggregateLockTTL = 30 * time.Second
	lockWaitBase     = 300 * time.Millisecond
)

// SearchCache stores aggregates as JSON and guards a cold key with a short
// SETNX lock. *cache.Redis satisfies it; a nil SearchCache disables caching.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// cachedAggregate is the deduplicated, recency-sorted union of one upstream
// query shape. It is what gets stored under AggregateCacheKey.
type cachedAggregate struct {
	Jobs      []job.Job          `json:"jobs"`
	Breakdown map[job.Source]int `json:"breakdown"`
	Failed    []job.Source       `json:"failed"`
	FetchedAt time.Time          `json:"fetched_at"`
}

type aggregateRunner func(ctx context.Context) (service.AggregateResult, error)

// loadAggregate serves key from the cache when present. On a miss one caller
// takes the lock and aggregates; a caller that loses the race waits briefly,
// re-reads, and falls back to aggregating itself.
func loadAggregate(ctx context.Context, c SearchCache, logger *log.Logger, key string, run aggregateRunner) (cachedAggregate, bool, error) {
	if c != nil {
		if v, hit := readAggregate(ctx, c, key); hit {
			logf(logger, "[Jobs] Cache HIT: %s", key)
			metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
			return v, true, nil
		}
		logf(logger, "[Jobs] Cache MISS: %s", key)
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
	}

	lockKey := AggregateLockKey(key)
	lockAcquired := false
	if c != nil {
		ok, err := c.SetIfNotExists(ctx, lockKey, "1", aggregateLockTTL)
		if err == nil && ok {
			lockAcquired = true
			logf(logger, "[Jobs] Lock acquired: %s", lockKey)
		} else if err == nil && !ok {
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			t := time.NewTimer(lockWaitBase + jitter)
			select {
			case <-ctx.Done():
				t.Stop()
				return cachedAggregate{}, false, ctx.Err()
			case <-t.C:
			}
			if v, hit := readAggregate(ctx, c, key); hit {
				logf(logger, "[Jobs] Cache HIT: %s", key)
				metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
				return v, true, nil
			}
			logf(logger, "[Jobs] Lock wait fallback: %s", lockKey)
		}
	}
	if lockAcquired {
		defer func() { _ = c.Delete(context.WithoutCancel(ctx), lockKey) }()
	}

	res, err := run(ctx)
	if err != nil {
		return cachedAggregate{}, false, err
	}

	out := cachedAggregate{
		Jobs:      search.Dedup(res.Jobs),
		Breakdown: res.Breakdown,
		Failed:    res.Failed,
		FetchedAt: time.Now().UTC(),
	}
	if c != nil {
		if err := c.SetJSON(ctx, key, out, 0); err == nil {
			logf(logger, "[Jobs] Cache SET: %s", key)
		}
	}
	return out, false, nil
}

func readAggregate(ctx context.Context, c SearchCache, key string) (cachedAggregate, bool) {
	var v cachedAggregate
	hit, err := c.GetJSON(ctx, key, &v)
	if err != nil || !hit {
		return cachedAggregate{}, false
	}
	if v.Jobs == nil {
		v.Jobs = []job.Job{}
	}
	return v, true
}

func logf(logger *log.Logger, format string, args ...any) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}

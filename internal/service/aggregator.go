package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/metrics"
	"jobboard/internal/provider"
)

var ErrAllSourcesFailed = errors.New("all sources failed")

const DefaultSourceTimeout = 20 * time.Second

type AggregateResult struct {
	Jobs      []job.Job
	Breakdown map[job.Source]int
	Failed    []job.Source
}

type Aggregator interface {
	Aggregate(ctx context.Context, params provider.Params) (AggregateResult, error)
}

// DefaultAggregator fans a query out to every provider and waits for all of
// them. A failing source contributes nothing; no retries happen here.
type DefaultAggregator struct {
	providers []provider.Provider
	timeout   time.Duration
	logger    *log.Logger
}

func NewAggregator(logger *log.Logger, timeout time.Duration, providers ...provider.Provider) *DefaultAggregator {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	return &DefaultAggregator{providers: providers, timeout: timeout, logger: logger}
}

func (a *DefaultAggregator) Providers() []provider.Provider {
	if a == nil {
		return nil
	}
	return a.providers
}

func (a *DefaultAggregator) Aggregate(ctx context.Context, params provider.Params) (AggregateResult, error) {
	out := AggregateResult{Jobs: []job.Job{}, Breakdown: map[job.Source]int{}, Failed: []job.Source{}}
	if a == nil || len(a.providers) == 0 {
		return out, nil
	}

	results := make([]provider.FetchResult, len(a.providers))
	wg := sync.WaitGroup{}

	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			results[i] = a.fetchOne(ctx, p, params)
		}(i, p)
	}
	wg.Wait()

	attempted, okCount := 0, 0
	var lastErr error
	for i, r := range results {
		src := a.providers[i].Name()
		if _, seen := out.Breakdown[src]; !seen {
			out.Breakdown[src] = 0
		}

		if errors.Is(r.Err, provider.ErrProviderDisabled) {
			metrics.ProviderFetchTotal.WithLabelValues(string(src), "disabled").Inc()
			continue
		}
		attempted++
		if r.Err != nil {
			lastErr = r.Err
			out.Failed = append(out.Failed, src)
			metrics.ProviderFetchTotal.WithLabelValues(string(src), "failed").Inc()
			a.logf("aggregate source=%s error=%v", src, r.Err)
			continue
		}

		okCount++
		metrics.ProviderFetchTotal.WithLabelValues(string(src), "ok").Inc()
		metrics.ProviderJobs.WithLabelValues(string(src)).Set(float64(len(r.Jobs)))
		a.logf("aggregate source=%s jobs=%d", src, len(r.Jobs))

		out.Jobs = append(out.Jobs, r.Jobs...)
		out.Breakdown[src] += len(r.Jobs)
	}

	if attempted > 0 && okCount == 0 {
		return out, fmt.Errorf("%w: %v", ErrAllSourcesFailed, lastErr)
	}
	return out, nil
}

func (a *DefaultAggregator) fetchOne(ctx context.Context, p provider.Provider, params provider.Params) (res provider.FetchResult) {
	src := p.Name()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res = provider.FetchResult{Jobs: []job.Job{}, Source: src, Err: fmt.Errorf("panic: %v", r)}
		}
		metrics.ProviderFetchDuration.WithLabelValues(string(src)).Observe(time.Since(start).Seconds())
	}()

	ctx2, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res = p.Fetch(ctx2, params)
	fetchedAt := time.Now()
	stamped := make([]job.Job, len(res.Jobs))
	for i, j := range res.Jobs {
		j.StampFetchTime(fetchedAt)
		stamped[i] = j
	}
	res.Jobs = stamped
	return res
}

// Lookup asks the provider registered for src to resolve a native id.
func (a *DefaultAggregator) Lookup(ctx context.Context, src job.Source, nativeID string) (job.Job, bool) {
	if a == nil {
		return job.Job{}, false
	}
	for _, p := range a.providers {
		if p.Name() != src {
			continue
		}
		f, ok := p.(provider.Finder)
		if !ok {
			return job.Job{}, false
		}
		ctx2, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		j, found := f.Lookup(ctx2, nativeID)
		if found {
			j.StampFetchTime(time.Now())
		}
		return j, found
	}
	return job.Job{}, false
}

func (a *DefaultAggregator) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}

var _ Aggregator = (*DefaultAggregator)(nil)

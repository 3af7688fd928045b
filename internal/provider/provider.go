package provider

import (
	"context"

	"jobboard/internal/domain/job"
)

// Params is the normalized query handed to every adapter.
type Params struct {
	Query          string
	Category       string
	Country        string
	Page           int
	EmploymentType string
}

// FetchResult is what an adapter hands back. Err is informational: the
// adapter already swallowed it and Jobs is empty.
type FetchResult struct {
	Jobs         []job.Job
	TotalResults int
	Source       job.Source
	HasMore      bool
	Err          error
}

// Provider fetches one page of jobs from an external board. Fetch never
// returns an error outward.
type Provider interface {
	Name() job.Source
	Fetch(ctx context.Context, p Params) FetchResult
}

// Finder resolves a single job by the source's native id.
type Finder interface {
	Lookup(ctx context.Context, nativeID string) (job.Job, bool)
}

func failed(src job.Source, err error) FetchResult {
	return FetchResult{Jobs: []job.Job{}, Source: src, Err: err}
}

func ok(src job.Source, jobs []job.Job, total int, hasMore bool) FetchResult {
	if jobs == nil {
		jobs = []job.Job{}
	}
	return FetchResult{Jobs: jobs, TotalResults: total, Source: src, HasMore: hasMore}
}

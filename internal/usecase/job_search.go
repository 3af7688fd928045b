package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/profile"
	"jobboard/internal/provider"
	"jobboard/internal/search"
	"jobboard/internal/service"
)

const scopeJobs = "jobs"

type JobSearchParams struct {
	Query      string
	Country    string
	Category   string
	Type       string
	Experience string
	Remote     bool
	Page       int
	Limit      int

	// Profile, when set, attaches a match result to every returned job.
	Profile *profile.UserProfile
}

type JobSearchResult struct {
	Jobs         []job.Job
	Scores       map[string]matching.Result
	TotalResults int
	Page         int
	Limit        int
	TotalPages   int
	HasMore      bool
	Breakdown    map[job.Source]int
	Failed       []job.Source
	Cached       bool
}

type JobSearchUsecase interface {
	SearchJobs(ctx context.Context, params JobSearchParams) (JobSearchResult, error)
}

type JobSearch struct {
	agg    service.Aggregator
	cache  SearchCache
	engine *search.Engine
	vocab  []string
	logger *log.Logger
}

func NewJobSearchUsecase(agg service.Aggregator, cache SearchCache, engine *search.Engine, logger *log.Logger) *JobSearch {
	if engine == nil {
		engine = search.NewEngine(nil, nil)
	}
	return &JobSearch{agg: agg, cache: cache, engine: engine, vocab: matching.DefaultSkillVocabulary, logger: logger}
}

func (u *JobSearch) SearchJobs(ctx context.Context, params JobSearchParams) (res JobSearchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logf(u.logger, "[Jobs] search panic: %v", r)
			res, err = JobSearchResult{}, fmt.Errorf("%w: panic: %v", ErrAggregationFailed, r)
		}
	}()

	if u == nil || u.agg == nil {
		return JobSearchResult{}, ErrAggregationFailed
	}

	page, limit := search.NormalizePage(params.Page, params.Limit)
	upstream := provider.Params{
		Query:    strings.TrimSpace(params.Query),
		Country:  upstreamCountry(params.Country),
		Category: strings.TrimSpace(params.Category),
		Page:     1,
	}

	key := AggregateCacheKey(scopeJobs, upstream.Query, upstream.Country, upstream.Category)
	agg, cached, err := loadAggregate(ctx, u.cache, u.logger, key, func(ctx context.Context) (service.AggregateResult, error) {
		return u.agg.Aggregate(ctx, upstream)
	})
	if err != nil {
		logf(u.logger, "[Jobs] aggregate error: %v", err)
		return JobSearchResult{}, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}

	filtered := u.engine.Apply(agg.Jobs, search.Filter{
		Query:      params.Query,
		Country:    params.Country,
		Category:   params.Category,
		RemoteOnly: params.Remote,
		Type:       params.Type,
		Experience: params.Experience,
	})
	pg := search.Paginate(filtered, page, limit)

	res = JobSearchResult{
		Jobs:         pg.Jobs,
		TotalResults: pg.TotalResults,
		Page:         pg.Page,
		Limit:        pg.Limit,
		TotalPages:   pg.TotalPages,
		HasMore:      pg.HasMore,
		Breakdown:    agg.Breakdown,
		Failed:       agg.Failed,
		Cached:       cached,
	}
	if params.Profile != nil {
		res.Scores = make(map[string]matching.Result, len(pg.Jobs))
		for _, j := range pg.Jobs {
			res.Scores[j.ExternalID] = matching.Score(*params.Profile, j, u.vocab)
		}
	}
	return res, nil
}

// upstreamCountry maps the "all" sentinel to no country for the providers.
func upstreamCountry(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "all" {
		return ""
	}
	return c
}

var _ JobSearchUsecase = (*JobSearch)(nil)

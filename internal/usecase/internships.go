package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/provider"
	"jobboard/internal/search"
	"jobboard/internal/service"
)

const scopeInternships = "internships"

var internshipTitleWords = []string{"intern", "trainee", "graduate"}

type InternshipParams struct {
	Query   string
	Country string
	Remote  bool
	Page    int
	Limit   int
}

type InternshipUsecase interface {
	SearchInternships(ctx context.Context, params InternshipParams) (JobSearchResult, error)
}

// Internships runs an aggregator whose providers are already narrowed to
// internship queries (see provider.InternshipParams).
type Internships struct {
	agg    service.Aggregator
	cache  SearchCache
	engine *search.Engine
	logger *log.Logger
}

func NewInternshipUsecase(agg service.Aggregator, cache SearchCache, engine *search.Engine, logger *log.Logger) *Internships {
	if engine == nil {
		engine = search.NewEngine(nil, nil)
	}
	return &Internships{agg: agg, cache: cache, engine: engine, logger: logger}
}

func (u *Internships) SearchInternships(ctx context.Context, params InternshipParams) (res JobSearchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logf(u.logger, "[Internships] panic: %v", r)
			res, err = JobSearchResult{}, fmt.Errorf("%w: panic: %v", ErrAggregationFailed, r)
		}
	}()

	if u == nil || u.agg == nil {
		return JobSearchResult{}, ErrAggregationFailed
	}

	page, limit := search.NormalizePage(params.Page, params.Limit)
	upstream := provider.Params{
		Query:   strings.TrimSpace(params.Query),
		Country: upstreamCountry(params.Country),
		Page:    1,
	}

	key := AggregateCacheKey(scopeInternships, upstream.Query, upstream.Country, "")
	agg, cached, err := loadAggregate(ctx, u.cache, u.logger, key, func(ctx context.Context) (service.AggregateResult, error) {
		return u.agg.Aggregate(ctx, upstream)
	})
	if err != nil {
		logf(u.logger, "[Internships] aggregate error: %v", err)
		return JobSearchResult{}, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}

	kept := KeepInternships(agg.Jobs)
	filtered := u.engine.Apply(kept, search.Filter{
		Country:    params.Country,
		RemoteOnly: params.Remote,
	})
	pg := search.Paginate(filtered, page, limit)

	return JobSearchResult{
		Jobs:         pg.Jobs,
		TotalResults: pg.TotalResults,
		Page:         pg.Page,
		Limit:        pg.Limit,
		TotalPages:   pg.TotalPages,
		HasMore:      pg.HasMore,
		Breakdown:    agg.Breakdown,
		Failed:       agg.Failed,
		Cached:       cached,
	}, nil
}

// KeepInternships drops general listings from boards that cannot filter by
// employment type upstream, then marks every survivor as an internship.
// JSearch results are already restricted to INTERN.
func KeepInternships(jobs []job.Job) []job.Job {
	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Source != job.SourceJSearch && j.Type != job.TypeInternship && !titleLooksLikeInternship(j.Title) {
			continue
		}
		j.Type = job.TypeInternship
		out = append(out, j)
	}
	return out
}

func titleLooksLikeInternship(title string) bool {
	t := strings.ToLower(title)
	for _, w := range internshipTitleWords {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

var _ InternshipUsecase = (*Internships)(nil)

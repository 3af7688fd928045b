package provider

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"jobboard/internal/domain/job"
)

const (
	DefaultArbeitnowBaseURL = "https://www.arbeitnow.com"

	arbeitnowPerPage     = 20
	arbeitnowLookupPages = 5
)

type arbeitnowResponse struct {
	Data  []arbeitnowJob `json:"data"`
	Links struct {
		Next *string `json:"next"`
	} `json:"links"`
}

type arbeitnowJob struct {
	Slug        string   `json:"slug" validate:"required"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	Location    string   `json:"location"`
	CreatedAt   int64    `json:"created_at"`
}

type Arbeitnow struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
	retry   RetryPolicy
}

func NewArbeitnow(baseURL string, client *http.Client, logger *log.Logger) *Arbeitnow {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultArbeitnowBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Arbeitnow{baseURL: baseURL, client: client, logger: logger, retry: DefaultRetryPolicy}
}

func (a *Arbeitnow) WithRetryPolicy(rp RetryPolicy) *Arbeitnow {
	if a != nil {
		a.retry = rp
	}
	return a
}

func (a *Arbeitnow) Name() job.Source { return job.SourceArbeitnow }

// Fetch returns a single page. Arbeitnow has no server-side search.
func (a *Arbeitnow) Fetch(ctx context.Context, p Params) FetchResult {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return a.FetchPage(ctx, page)
}

func (a *Arbeitnow) FetchPage(ctx context.Context, page int) FetchResult {
	if a == nil {
		return failed(job.SourceArbeitnow, nil)
	}
	u := fmt.Sprintf("%s/api/job-board-api?page=%d", a.baseURL, page)

	var payload arbeitnowResponse
	if err := getJSON(ctx, a.client, a.retry, u, nil, &payload); err != nil {
		if a.logger != nil {
			a.logger.Printf("[Arbeitnow] page=%d error=%v", page, err)
		}
		return failed(job.SourceArbeitnow, err)
	}

	jobs := make([]job.Job, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if !validItem(raw) {
			continue
		}
		jobs = append(jobs, transformArbeitnow(raw))
	}
	return ok(job.SourceArbeitnow, jobs, len(jobs), payload.Links.Next != nil)
}

// Lookup scans the first few pages for the slug.
func (a *Arbeitnow) Lookup(ctx context.Context, nativeID string) (job.Job, bool) {
	want := job.ExternalID(job.SourceArbeitnow, nativeID)
	for page := 1; page <= arbeitnowLookupPages; page++ {
		res := a.FetchPage(ctx, page)
		for _, j := range res.Jobs {
			if j.ExternalID == want {
				return j, true
			}
		}
		if res.Err != nil || !res.HasMore {
			break
		}
	}
	return job.Job{}, false
}

func transformArbeitnow(raw arbeitnowJob) job.Job {
	tags := nonEmpty(raw.Tags)
	category := "General"
	if len(tags) > 0 {
		category = tags[0]
	}

	var posted time.Time
	if raw.CreatedAt > 0 {
		posted = time.Unix(raw.CreatedAt, 0).UTC()
	}

	j := job.Job{
		ExternalID:  job.ExternalID(job.SourceArbeitnow, raw.Slug),
		Source:      job.SourceArbeitnow,
		Title:       raw.Title,
		Description: raw.Description,
		Company:     job.Company{Name: raw.CompanyName},
		Location:    job.Location{City: raw.Location, Country: "Germany", IsRemote: raw.Remote},
		Type:        job.TypeFullTime,
		Category:    category,
		ApplyURL:    raw.URL,
		PostedAt:    posted,
		Tags:        tags,
		IsActive:    true,
	}
	j.Normalize()
	return j
}

// ArbeitnowWalker crawls pages sequentially until it has Target jobs or the
// board runs out of pages.
type ArbeitnowWalker struct {
	source *Arbeitnow
	target int
	delay  time.Duration
	logger *log.Logger
}

func NewArbeitnowWalker(source *Arbeitnow, target int, delay time.Duration, logger *log.Logger) *ArbeitnowWalker {
	if target <= 0 {
		target = 1000
	}
	if delay < 0 {
		delay = 0
	}
	return &ArbeitnowWalker{source: source, target: target, delay: delay, logger: logger}
}

func (w *ArbeitnowWalker) Name() job.Source { return job.SourceArbeitnow }

func (w *ArbeitnowWalker) Fetch(ctx context.Context, _ Params) FetchResult {
	if w == nil || w.source == nil {
		return failed(job.SourceArbeitnow, nil)
	}

	maxPages := (w.target + arbeitnowPerPage - 1) / arbeitnowPerPage
	all := make([]job.Job, 0, w.target)
	hasMore := true
	var firstErr error

	for page := 1; page <= maxPages && hasMore; page++ {
		res := w.source.FetchPage(ctx, page)
		if res.Err != nil {
			firstErr = res.Err
			break
		}
		if len(res.Jobs) == 0 {
			hasMore = false
			break
		}
		all = append(all, res.Jobs...)
		hasMore = res.HasMore

		if page%10 == 0 && w.logger != nil {
			w.logger.Printf("[Arbeitnow] page=%d jobs=%d", page, len(all))
		}
		if len(all) >= w.target || !hasMore || page == maxPages {
			break
		}

		if w.delay > 0 {
			t := time.NewTimer(w.delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ok(job.SourceArbeitnow, all, len(all), true)
			case <-t.C:
			}
		}
	}

	if len(all) == 0 && firstErr != nil {
		return failed(job.SourceArbeitnow, firstErr)
	}
	return ok(job.SourceArbeitnow, all, len(all), hasMore)
}

func (w *ArbeitnowWalker) Lookup(ctx context.Context, nativeID string) (job.Job, bool) {
	if w == nil || w.source == nil {
		return job.Job{}, false
	}
	return w.source.Lookup(ctx, nativeID)
}

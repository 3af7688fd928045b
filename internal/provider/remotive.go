package provider

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/job"
)

const DefaultRemotiveBaseURL = "https://remotive.com"

// RemotiveCategories are the board's category slugs. An unscoped fetch
// walks all of them because the unfiltered listing is truncated.
var RemotiveCategories = []string{
	"software-dev",
	"customer-support",
	"design",
	"sales",
	"marketing",
	"product",
	"business",
	"data",
	"devops",
	"finance",
	"legal",
	"management",
	"qa",
	"writing",
	"all-others",
}

type remotiveResponse struct {
	JobCount int           `json:"job-count"`
	Jobs     []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID                        int64    `json:"id" validate:"required"`
	URL                       string   `json:"url"`
	Title                     string   `json:"title" validate:"required"`
	CompanyName               string   `json:"company_name"`
	CompanyLogo               string   `json:"company_logo"`
	Category                  string   `json:"category"`
	Tags                      []string `json:"tags"`
	JobType                   string   `json:"job_type"`
	PublicationDate           string   `json:"publication_date"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	Salary                    string   `json:"salary"`
	Description               string   `json:"description"`
}

type Remotive struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
	retry   RetryPolicy

	workers int
	rps     int
}

func NewRemotive(baseURL string, client *http.Client, logger *log.Logger) *Remotive {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultRemotiveBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Remotive{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
		retry:   DefaultRetryPolicy,
		workers: 4,
		rps:     10,
	}
}

func (r *Remotive) WithRetryPolicy(rp RetryPolicy) *Remotive {
	if r != nil {
		r.retry = rp
	}
	return r
}

func (r *Remotive) Name() job.Source { return job.SourceRemotive }

func (r *Remotive) Fetch(ctx context.Context, p Params) FetchResult {
	if r == nil {
		return failed(job.SourceRemotive, nil)
	}

	category := strings.ToLower(strings.TrimSpace(p.Category))
	query := strings.TrimSpace(p.Query)
	if query != "" || isRemotiveCategory(category) {
		if !isRemotiveCategory(category) {
			category = ""
		}
		jobs, err := r.fetch(ctx, category, query)
		if err != nil {
			r.logf("[Remotive] fetch category=%s search=%s error=%v", category, query, err)
			return failed(job.SourceRemotive, err)
		}
		return ok(job.SourceRemotive, jobs, len(jobs), false)
	}

	return r.fetchAllCategories(ctx)
}

func (r *Remotive) fetchAllCategories(ctx context.Context) FetchResult {
	pool := NewWorkerPool(r.workers, len(RemotiveCategories))
	pool.SetRateLimit(r.rps)
	errs := pool.Run(ctx)

	var (
		mu      sync.Mutex
		all     []job.Job
		lastErr error
	)
	for _, c := range RemotiveCategories {
		category := c
		pool.Submit(func(ctx context.Context) error {
			jobs, err := r.fetch(ctx, category, "")
			if err != nil {
				r.logf("[Remotive] category=%s error=%v", category, err)
				return err
			}
			mu.Lock()
			all = append(all, jobs...)
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	failures := 0
	for err := range errs {
		if err != nil {
			failures++
			lastErr = err
		}
	}
	if failures == len(RemotiveCategories) {
		return failed(job.SourceRemotive, lastErr)
	}

	seen := make(map[string]struct{}, len(all))
	unique := make([]job.Job, 0, len(all))
	for _, j := range all {
		if _, dup := seen[j.ExternalID]; dup {
			continue
		}
		seen[j.ExternalID] = struct{}{}
		unique = append(unique, j)
	}
	r.logf("[Remotive] categories=%d failed=%d jobs=%d", len(RemotiveCategories), failures, len(unique))
	return ok(job.SourceRemotive, unique, len(unique), false)
}

// Lookup scans the unfiltered listing for the native id.
func (r *Remotive) Lookup(ctx context.Context, nativeID string) (job.Job, bool) {
	if r == nil {
		return job.Job{}, false
	}
	jobs, err := r.fetch(ctx, "", "")
	if err != nil {
		r.logf("[Remotive] lookup id=%s error=%v", nativeID, err)
		return job.Job{}, false
	}
	want := job.ExternalID(job.SourceRemotive, nativeID)
	for _, j := range jobs {
		if j.ExternalID == want {
			return j, true
		}
	}
	return job.Job{}, false
}

func (r *Remotive) fetch(ctx context.Context, category, search string) ([]job.Job, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	u := r.baseURL + "/api/remote-jobs"
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	var payload remotiveResponse
	if err := getJSON(ctx, r.client, r.retry, u, nil, &payload); err != nil {
		return nil, err
	}

	out := make([]job.Job, 0, len(payload.Jobs))
	for _, raw := range payload.Jobs {
		if !validItem(raw) {
			continue
		}
		out = append(out, transformRemotive(raw))
	}
	return out, nil
}

func transformRemotive(raw remotiveJob) job.Job {
	country := strings.TrimSpace(raw.CandidateRequiredLocation)
	if country == "" {
		country = "Worldwide"
	}

	var salary job.Salary
	if s := strings.TrimSpace(raw.Salary); s != "" {
		lo, hi, _ := strings.Cut(s, "-")
		salary.Min = digitsOnly(lo)
		salary.Max = digitsOnly(hi)
	}
	salary.Currency = job.DefaultCurrency

	j := job.Job{
		ExternalID:  job.ExternalID(job.SourceRemotive, strconv.FormatInt(raw.ID, 10)),
		Source:      job.SourceRemotive,
		Title:       raw.Title,
		Description: raw.Description,
		Company:     job.Company{Name: raw.CompanyName, Logo: raw.CompanyLogo},
		Location:    job.Location{Country: country, IsRemote: true},
		Salary:      salary,
		Type:        job.NormalizeJobType(raw.JobType),
		Category:    raw.Category,
		ApplyURL:    raw.URL,
		PostedAt:    parseTime(raw.PublicationDate),
		Tags:        nonEmpty(raw.Tags),
		IsActive:    true,
	}
	j.Normalize()
	return j
}

func isRemotiveCategory(c string) bool {
	for _, rc := range RemotiveCategories {
		if rc == c {
			return true
		}
	}
	return false
}

func (r *Remotive) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

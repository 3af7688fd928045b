package provider

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/domain/job"
)

const (
	DefaultJSearchBaseURL = "https://jsearch.p.rapidapi.com"
	jsearchHost           = "jsearch.p.rapidapi.com"
	jsearchDefaultQuery   = "software developer"
)

var ErrProviderDisabled = errors.New("provider disabled")

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

type jsearchJob struct {
	JobID                  string   `json:"job_id" validate:"required"`
	JobTitle               string   `json:"job_title" validate:"required"`
	EmployerName           string   `json:"employer_name"`
	EmployerLogo           string   `json:"employer_logo"`
	EmployerWebsite        string   `json:"employer_website"`
	JobCity                string   `json:"job_city"`
	JobState               string   `json:"job_state"`
	JobCountry             string   `json:"job_country"`
	JobIsRemote            bool     `json:"job_is_remote"`
	JobDescription         string   `json:"job_description"`
	JobEmploymentType      string   `json:"job_employment_type"`
	JobApplyLink           string   `json:"job_apply_link"`
	JobPostedAtDatetimeUTC string   `json:"job_posted_at_datetime_utc"`
	JobMinSalary           *float64 `json:"job_min_salary"`
	JobMaxSalary           *float64 `json:"job_max_salary"`
	JobSalaryCurrency      string   `json:"job_salary_currency"`
	JobSalaryPeriod        string   `json:"job_salary_period"`
	JobRequiredSkills      []string `json:"job_required_skills"`
	JobHighlights          struct {
		Qualifications   []string `json:"Qualifications"`
		Responsibilities []string `json:"Responsibilities"`
		Benefits         []string `json:"Benefits"`
	} `json:"job_highlights"`
}

// JSearch talks to the RapidAPI JSearch endpoint. Without an API key it is
// a no-op.
type JSearch struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *log.Logger
	retry   RetryPolicy
}

func NewJSearch(baseURL, apiKey string, client *http.Client, logger *log.Logger) *JSearch {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultJSearchBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &JSearch{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
		logger:  logger,
		retry:   DefaultRetryPolicy,
	}
}

func (s *JSearch) WithRetryPolicy(rp RetryPolicy) *JSearch {
	if s != nil {
		s.retry = rp
	}
	return s
}

func (s *JSearch) Name() job.Source { return job.SourceJSearch }

func (s *JSearch) Enabled() bool { return s != nil && s.apiKey != "" }

func (s *JSearch) Fetch(ctx context.Context, p Params) FetchResult {
	if !s.Enabled() {
		return failed(job.SourceJSearch, ErrProviderDisabled)
	}

	query := strings.TrimSpace(p.Query)
	if query == "" {
		query = jsearchDefaultQuery
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("num_pages", "1")
	if c := strings.ToLower(strings.TrimSpace(p.Country)); c != "" && c != "all" {
		q.Set("country", c)
	}
	if et := strings.TrimSpace(p.EmploymentType); et != "" {
		q.Set("employment_types", strings.ToUpper(et))
	}

	var payload jsearchResponse
	if err := getJSON(ctx, s.client, s.retry, s.baseURL+"/search?"+q.Encode(), s.headers(), &payload); err != nil {
		s.logf("[JSearch] query=%s error=%v", query, err)
		return failed(job.SourceJSearch, err)
	}

	jobs := make([]job.Job, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if !validItem(raw) {
			continue
		}
		jobs = append(jobs, transformJSearch(raw))
	}
	return ok(job.SourceJSearch, jobs, len(jobs), len(jobs) > 0)
}

func (s *JSearch) Lookup(ctx context.Context, nativeID string) (job.Job, bool) {
	if !s.Enabled() || strings.TrimSpace(nativeID) == "" {
		return job.Job{}, false
	}
	u := s.baseURL + "/job-details?job_id=" + url.QueryEscape(nativeID)

	var payload jsearchResponse
	if err := getJSON(ctx, s.client, s.retry, u, s.headers(), &payload); err != nil {
		s.logf("[JSearch] lookup id=%s error=%v", nativeID, err)
		return job.Job{}, false
	}
	if len(payload.Data) == 0 || !validItem(payload.Data[0]) {
		return job.Job{}, false
	}
	return transformJSearch(payload.Data[0]), true
}

func (s *JSearch) headers() map[string]string {
	return map[string]string{
		"X-RapidAPI-Key":  s.apiKey,
		"X-RapidAPI-Host": jsearchHost,
	}
}

func transformJSearch(raw jsearchJob) job.Job {
	period := strings.ToLower(strings.TrimSpace(raw.JobSalaryPeriod))
	switch period {
	case "year":
		period = "yearly"
	case "month":
		period = "monthly"
	case "hour":
		period = "hourly"
	}

	j := job.Job{
		ExternalID:  job.ExternalID(job.SourceJSearch, raw.JobID),
		Source:      job.SourceJSearch,
		Title:       raw.JobTitle,
		Description: raw.JobDescription,
		Company: job.Company{
			Name:    raw.EmployerName,
			Logo:    raw.EmployerLogo,
			Website: raw.EmployerWebsite,
		},
		Location: job.Location{
			City:     raw.JobCity,
			State:    raw.JobState,
			Country:  raw.JobCountry,
			IsRemote: raw.JobIsRemote,
		},
		Requirements:     nonEmpty(raw.JobHighlights.Qualifications),
		Responsibilities: nonEmpty(raw.JobHighlights.Responsibilities),
		Benefits:         nonEmpty(raw.JobHighlights.Benefits),
		Skills:           nonEmpty(raw.JobRequiredSkills),
		Salary: job.Salary{
			Min:      floatToIntPtr(raw.JobMinSalary),
			Max:      floatToIntPtr(raw.JobMaxSalary),
			Currency: strings.ToUpper(strings.TrimSpace(raw.JobSalaryCurrency)),
			Period:   period,
		},
		Type:     jsearchJobType(raw.JobEmploymentType),
		ApplyURL: raw.JobApplyLink,
		PostedAt: parseTime(raw.JobPostedAtDatetimeUTC),
		IsActive: true,
	}
	j.Normalize()
	return j
}

// jsearchJobType maps the API's FULLTIME/PARTTIME/CONTRACTOR/INTERN codes.
func jsearchJobType(raw string) job.JobType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "FULLTIME":
		return job.TypeFullTime
	case "PARTTIME":
		return job.TypePartTime
	case "CONTRACTOR":
		return job.TypeContract
	case "INTERN":
		return job.TypeInternship
	}
	return job.NormalizeJobType(raw)
}

func (s *JSearch) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

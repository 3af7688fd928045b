package provider

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/domain/job"
)

const (
	DefaultAdzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"
	adzunaPerPage        = 50
)

var adzunaCountries = map[string]struct{}{
	"gb": {}, "us": {}, "at": {}, "au": {}, "be": {}, "br": {}, "ca": {}, "ch": {}, "de": {}, "es": {},
	"fr": {}, "in": {}, "it": {}, "mx": {}, "nl": {}, "nz": {}, "pl": {}, "sg": {}, "za": {},
}

type adzunaResponse struct {
	Count   int         `json:"count"`
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID           string   `json:"id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Created      string   `json:"created"`
	RedirectURL  string   `json:"redirect_url"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	ContractTime string   `json:"contract_time"`
	ContractType string   `json:"contract_type"`
	Company      struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string   `json:"display_name"`
		Area        []string `json:"area"`
	} `json:"location"`
	Category struct {
		Label string `json:"label"`
		Tag   string `json:"tag"`
	} `json:"category"`
}

type Adzuna struct {
	baseURL        string
	appID          string
	appKey         string
	defaultCountry string
	client         *http.Client
	logger         *log.Logger
	retry          RetryPolicy
}

func NewAdzuna(baseURL, appID, appKey, defaultCountry string, client *http.Client, logger *log.Logger) *Adzuna {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultAdzunaBaseURL
	}
	defaultCountry = strings.ToLower(strings.TrimSpace(defaultCountry))
	if _, ok := adzunaCountries[defaultCountry]; !ok {
		defaultCountry = "gb"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Adzuna{
		baseURL:        baseURL,
		appID:          strings.TrimSpace(appID),
		appKey:         strings.TrimSpace(appKey),
		defaultCountry: defaultCountry,
		client:         client,
		logger:         logger,
		retry:          DefaultRetryPolicy,
	}
}

func (a *Adzuna) WithRetryPolicy(rp RetryPolicy) *Adzuna {
	if a != nil {
		a.retry = rp
	}
	return a
}

func (a *Adzuna) Name() job.Source { return job.SourceAdzuna }

func (a *Adzuna) Enabled() bool { return a != nil && a.appID != "" && a.appKey != "" }

func (a *Adzuna) Fetch(ctx context.Context, p Params) FetchResult {
	if !a.Enabled() {
		return failed(job.SourceAdzuna, ErrProviderDisabled)
	}

	country := strings.ToLower(strings.TrimSpace(p.Country))
	if _, ok := adzunaCountries[country]; !ok {
		country = a.defaultCountry
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("app_id", a.appID)
	q.Set("app_key", a.appKey)
	q.Set("results_per_page", strconv.Itoa(adzunaPerPage))
	q.Set("content-type", "application/json")
	if what := strings.TrimSpace(p.Query); what != "" {
		q.Set("what", what)
	}
	u := fmt.Sprintf("%s/%s/search/%d?%s", a.baseURL, country, page, q.Encode())

	var payload adzunaResponse
	if err := getJSON(ctx, a.client, a.retry, u, nil, &payload); err != nil {
		if a.logger != nil {
			a.logger.Printf("[Adzuna] country=%s page=%d error=%v", country, page, err)
		}
		return failed(job.SourceAdzuna, err)
	}

	jobs := make([]job.Job, 0, len(payload.Results))
	for _, raw := range payload.Results {
		if !validItem(raw) {
			continue
		}
		jobs = append(jobs, transformAdzuna(raw, country))
	}
	return ok(job.SourceAdzuna, jobs, payload.Count, page*adzunaPerPage < payload.Count)
}

// Lookup has no detail endpoint to call; it points the user at the listing.
func (a *Adzuna) Lookup(_ context.Context, nativeID string) (job.Job, bool) {
	nativeID = strings.TrimSpace(nativeID)
	if nativeID == "" {
		return job.Job{}, false
	}
	j := job.Job{
		ExternalID:  job.ExternalID(job.SourceAdzuna, nativeID),
		Source:      job.SourceAdzuna,
		Title:       "Job from Adzuna",
		Description: "Open the listing on Adzuna for the full description.",
		Company:     job.Company{Name: "Unknown Company"},
		ApplyURL:    "https://www.adzuna.com/details/" + url.PathEscape(nativeID),
		IsActive:    true,
	}
	j.Normalize()
	return j, true
}

func transformAdzuna(raw adzunaJob, country string) job.Job {
	jobType := raw.ContractTime
	if strings.EqualFold(raw.ContractType, "contract") {
		jobType = string(job.TypeContract)
	}

	var tags []string
	if t := strings.TrimSpace(raw.Category.Tag); t != "" {
		tags = []string{t}
	}

	j := job.Job{
		ExternalID:  job.ExternalID(job.SourceAdzuna, raw.ID),
		Source:      job.SourceAdzuna,
		Title:       raw.Title,
		Description: raw.Description,
		Company:     job.Company{Name: raw.Company.DisplayName},
		Location:    job.Location{City: raw.Location.DisplayName, Country: strings.ToUpper(country)},
		Salary: job.Salary{
			Min: floatToIntPtr(raw.SalaryMin),
			Max: floatToIntPtr(raw.SalaryMax),
		},
		Type:     job.NormalizeJobType(jobType),
		Category: raw.Category.Label,
		ApplyURL: raw.RedirectURL,
		PostedAt: parseTime(raw.Created),
		Tags:     tags,
		IsActive: true,
	}
	if c := adzunaCurrency(country); c != "" {
		j.Salary.Currency = c
	}
	j.Normalize()
	return j
}

func adzunaCurrency(country string) string {
	switch country {
	case "gb":
		return "GBP"
	case "de", "at", "fr", "nl", "be", "es", "it":
		return "EUR"
	case "in":
		return "INR"
	case "ca":
		return "CAD"
	case "au":
		return "AUD"
	}
	return ""
}

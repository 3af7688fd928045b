package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"jobboard/internal/domain/job"
)

var fastRetry = RetryPolicy{InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond, MaxRetries: 1}

func TestRemotive_TransformsCategoryFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/remote-jobs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "design" {
			t.Errorf("expected category design, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs":[
			{"id":101,"title":"Product Designer","company_name":"Acme","category":"Design","tags":["figma"],
			 "job_type":"full_time","publication_date":"2025-02-01T10:00:00","candidate_required_location":"",
			 "salary":"$50,000 - $70,000","url":"https://remotive.com/101"},
			{"id":0,"title":"missing id"}
		]}`))
	}))
	defer srv.Close()

	r := NewRemotive(srv.URL, srv.Client(), nil).WithRetryPolicy(fastRetry)
	res := r.Fetch(context.Background(), Params{Category: "design"})
	if res.Err != nil {
		t.Fatalf("unexpected err: %v", res.Err)
	}
	if len(res.Jobs) != 1 {
		t.Fatalf("expected invalid item to be skipped, got %d jobs", len(res.Jobs))
	}
	j := res.Jobs[0]
	if j.ExternalID != "remotive_101" || j.Source != job.SourceRemotive {
		t.Fatalf("unexpected id/source: %s %s", j.ExternalID, j.Source)
	}
	if j.Location.Country != "Worldwide" || !j.Location.IsRemote || j.Location.City != "" {
		t.Fatalf("unexpected location: %+v", j.Location)
	}
	if j.Salary.Min == nil || *j.Salary.Min != 50000 || j.Salary.Max == nil || *j.Salary.Max != 70000 {
		t.Fatalf("unexpected salary: %+v", j.Salary)
	}
	if j.Salary.Currency != "USD" || j.Type != job.TypeFullTime {
		t.Fatalf("unexpected currency/type: %s %s", j.Salary.Currency, j.Type)
	}
	if j.PostedAt.IsZero() {
		t.Fatalf("expected posted date")
	}
}

func TestRemotive_FansOutAcrossCategories(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		c := r.URL.Query().Get("category")
		if c == "design" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// every category returns the same shared job plus one of its own
		fmt.Fprintf(w, `{"jobs":[{"id":1,"title":"Shared"},{"id":%d,"title":"%s"}]}`, 1000+len(c), c)
	}))
	defer srv.Close()

	r := NewRemotive(srv.URL, srv.Client(), nil).WithRetryPolicy(RetryPolicy{InitialInterval: time.Millisecond, MaxRetries: 0})
	r.rps = 0
	res := r.Fetch(context.Background(), Params{})
	if res.Err != nil {
		t.Fatalf("partial category failure must not fail the source: %v", res.Err)
	}
	if int(atomic.LoadInt32(&calls)) != len(RemotiveCategories) {
		t.Fatalf("expected %d calls, got %d", len(RemotiveCategories), calls)
	}
	seen := map[string]bool{}
	for _, j := range res.Jobs {
		if seen[j.ExternalID] {
			t.Fatalf("duplicate %s", j.ExternalID)
		}
		seen[j.ExternalID] = true
	}
	if !seen["remotive_1"] {
		t.Fatalf("expected shared job")
	}
}

func TestRemotive_NonSuccessYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	res := NewRemotive(srv.URL, srv.Client(), nil).WithRetryPolicy(fastRetry).Fetch(context.Background(), Params{Query: "go"})
	if len(res.Jobs) != 0 || res.Jobs == nil {
		t.Fatalf("expected empty non-nil jobs, got %v", res.Jobs)
	}
	var se *StatusError
	if !errors.As(res.Err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("expected status error, got %v", res.Err)
	}
}

func TestGetJSON_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	if err := getJSON(context.Background(), srv.Client(), fastRetry, srv.URL, nil, &out); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !out.OK || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected retry then success, calls=%d", calls)
	}
}

func TestReadAllLimit(t *testing.T) {
	if _, err := readAllLimit(strings.NewReader("abcdef"), 3); !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
	b, err := readAllLimit(strings.NewReader("abc"), 3)
	if err != nil || string(b) != "abc" {
		t.Fatalf("unexpected %q %v", b, err)
	}
}

func arbeitnowServer(t *testing.T, pages int, perPage int, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		var page int
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)

		var items []string
		for i := 0; i < perPage; i++ {
			items = append(items, fmt.Sprintf(`{"slug":"p%d-j%d","title":"Job %d","company_name":"Co","location":"Berlin","remote":%v,"tags":["Backend"],"created_at":1700000000}`, page, i, i, i%2 == 0))
		}
		next := "null"
		if page < pages {
			next = fmt.Sprintf(`"https://x/api?page=%d"`, page+1)
		}
		fmt.Fprintf(w, `{"data":[%s],"links":{"next":%s}}`, strings.Join(items, ","), next)
	}))
}

func TestArbeitnow_Transform(t *testing.T) {
	var calls int32
	srv := arbeitnowServer(t, 1, 2, &calls)
	defer srv.Close()

	res := NewArbeitnow(srv.URL, srv.Client(), nil).Fetch(context.Background(), Params{})
	if len(res.Jobs) != 2 || res.HasMore {
		t.Fatalf("unexpected result: %d jobs has_more=%v", len(res.Jobs), res.HasMore)
	}
	j := res.Jobs[0]
	if j.ExternalID != "arbeitnow_p1-j0" || j.Location.City != "Berlin" || j.Location.Country != "Germany" {
		t.Fatalf("unexpected transform: %+v", j)
	}
	if !j.Location.IsRemote || j.Type != job.TypeFullTime || j.Category != "Backend" {
		t.Fatalf("unexpected fields: %+v", j)
	}
	if !j.PostedAt.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("unexpected posted_at %v", j.PostedAt)
	}
}

func TestArbeitnowWalker_StopsWhenNoNextPage(t *testing.T) {
	var calls int32
	srv := arbeitnowServer(t, 3, 20, &calls)
	defer srv.Close()

	w := NewArbeitnowWalker(NewArbeitnow(srv.URL, srv.Client(), nil), 1000, time.Millisecond, nil)
	res := w.Fetch(context.Background(), Params{})
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 page calls, got %d", calls)
	}
	if len(res.Jobs) != 60 || res.HasMore {
		t.Fatalf("unexpected result: %d jobs has_more=%v", len(res.Jobs), res.HasMore)
	}
}

func TestArbeitnowWalker_StopsAtTarget(t *testing.T) {
	var calls int32
	srv := arbeitnowServer(t, 100, 20, &calls)
	defer srv.Close()

	w := NewArbeitnowWalker(NewArbeitnow(srv.URL, srv.Client(), nil), 50, 0, nil)
	res := w.Fetch(context.Background(), Params{})
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 page calls, got %d", calls)
	}
	if len(res.Jobs) != 60 {
		t.Fatalf("expected 60 jobs, got %d", len(res.Jobs))
	}
}

func TestJSearch_DisabledMakesNoCalls(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	res := NewJSearch(srv.URL, "", srv.Client(), nil).Fetch(context.Background(), Params{Query: "go"})
	if !errors.Is(res.Err, ErrProviderDisabled) || len(res.Jobs) != 0 {
		t.Fatalf("expected disabled result, got %+v", res)
	}
	res = NewAdzuna(srv.URL, "", "", "gb", srv.Client(), nil).Fetch(context.Background(), Params{Query: "go"})
	if !errors.Is(res.Err, ErrProviderDisabled) {
		t.Fatalf("expected adzuna disabled, got %v", res.Err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("expected zero calls, got %d", calls)
	}
}

func TestJSearch_TransformAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-RapidAPI-Key") != "k" || r.Header.Get("X-RapidAPI-Host") != jsearchHost {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path == "/job-details" && r.URL.Query().Get("job_id") != "abc_1" {
			t.Errorf("unexpected job_id %q", r.URL.Query().Get("job_id"))
		}
		if r.URL.Path == "/search" && r.URL.Query().Get("employment_types") != "INTERN" {
			t.Errorf("unexpected employment_types %q", r.URL.Query().Get("employment_types"))
		}
		_, _ = w.Write([]byte(`{"status":"OK","data":[{
			"job_id":"abc_1","job_title":"Go Intern","employer_name":"Gopher Inc","employer_website":"https://gopher.example",
			"job_city":"Austin","job_state":"TX","job_country":"US","job_is_remote":false,
			"job_employment_type":"INTERN","job_min_salary":20.4,"job_max_salary":30,"job_salary_currency":"usd",
			"job_salary_period":"HOUR","job_apply_link":"https://apply","job_posted_at_datetime_utc":"2025-01-02T03:04:05.000Z",
			"job_highlights":{"Qualifications":["Go"],"Responsibilities":["Ship"],"Benefits":["Pizza"]}
		}]}`))
	}))
	defer srv.Close()

	s := NewJSearch(srv.URL, "k", srv.Client(), nil).WithRetryPolicy(fastRetry)
	res := s.Fetch(context.Background(), Params{Query: "internship go", EmploymentType: "intern"})
	if res.Err != nil || len(res.Jobs) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	j := res.Jobs[0]
	if j.ExternalID != "jsearch_abc_1" || j.Type != job.TypeInternship {
		t.Fatalf("unexpected id/type: %s %s", j.ExternalID, j.Type)
	}
	if *j.Salary.Min != 20 || *j.Salary.Max != 30 || j.Salary.Currency != "USD" || j.Salary.Period != "hourly" {
		t.Fatalf("unexpected salary %+v", j.Salary)
	}
	if len(j.Requirements) != 1 || len(j.Responsibilities) != 1 || len(j.Benefits) != 1 {
		t.Fatalf("unexpected highlights %+v", j)
	}

	got, found := s.Lookup(context.Background(), "abc_1")
	if !found || got.Company.Website != "https://gopher.example" {
		t.Fatalf("unexpected lookup: %v %+v", found, got)
	}
}

func TestAdzuna_Transform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/de/search/2" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("app_id") != "id" || q.Get("app_key") != "key" || q.Get("results_per_page") != "50" || q.Get("what") != "golang" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{"count":120,"results":[{"id":"777","title":"Go Dev","company":{"display_name":"Muster GmbH"},
			"location":{"display_name":"Hamburg"},"salary_min":60000,"contract_time":"part_time",
			"created":"2025-03-01T12:00:00Z","redirect_url":"https://adzuna/777","category":{"label":"IT Jobs","tag":"it-jobs"}}]}`))
	}))
	defer srv.Close()

	a := NewAdzuna(srv.URL, "id", "key", "gb", srv.Client(), nil).WithRetryPolicy(fastRetry)
	res := a.Fetch(context.Background(), Params{Query: "golang", Country: "DE", Page: 2})
	if res.Err != nil || len(res.Jobs) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.TotalResults != 120 || !res.HasMore {
		t.Fatalf("unexpected paging %d %v", res.TotalResults, res.HasMore)
	}
	j := res.Jobs[0]
	if j.ExternalID != "adzuna_777" || j.Location.Country != "DE" || j.Type != job.TypePartTime || j.Salary.Currency != "EUR" {
		t.Fatalf("unexpected transform %+v", j)
	}

	placeholder, ok := a.Lookup(context.Background(), "777")
	if !ok || placeholder.ApplyURL != "https://www.adzuna.com/details/777" {
		t.Fatalf("unexpected placeholder %+v", placeholder)
	}
}

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	p := NewWorkerPool(3, 10)
	errs := p.Run(context.Background())
	var done int32
	for i := 0; i < 10; i++ {
		i := i
		p.Submit(func(ctx context.Context) error {
			atomic.AddInt32(&done, 1)
			if i == 4 {
				return errors.New("boom")
			}
			return nil
		})
	}
	p.Close()

	failures := 0
	for err := range errs {
		if err != nil {
			failures++
		}
	}
	if atomic.LoadInt32(&done) != 10 || failures != 1 {
		t.Fatalf("done=%d failures=%d", done, failures)
	}
}

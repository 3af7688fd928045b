package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/domain/job"
	"jobboard/internal/metrics"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/provider"
	"jobboard/internal/service"
	"jobboard/internal/usecase"
)

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", ":9000": ":9000", " 80 ": ":80"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil || got != want {
			t.Fatalf("ListenAddr(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ListenAddr(" "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}

func TestBuildProviders(t *testing.T) {
	set := BuildProviders(config.ProviderConfig{HTTPTimeout: time.Second}, nil)

	names := func(ps []provider.Provider) []job.Source {
		out := make([]job.Source, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name())
		}
		return out
	}

	jobs := names(set.Jobs)
	want := []job.Source{job.SourceRemotive, job.SourceArbeitnow, job.SourceJSearch, job.SourceAdzuna}
	if len(jobs) != len(want) {
		t.Fatalf("unexpected providers %v", jobs)
	}
	for i := range want {
		if jobs[i] != want[i] {
			t.Fatalf("provider %d: got %s want %s", i, jobs[i], want[i])
		}
	}

	interns := names(set.Internships)
	if len(interns) != 3 || interns[0] != job.SourceRemotive || interns[1] != job.SourceJSearch || interns[2] != job.SourceArbeitnow {
		t.Fatalf("unexpected internship providers %v", interns)
	}
}

func TestNew_ServesHealthMetricsAndJobs(t *testing.T) {
	metrics.InitMetrics()
	c := &Container{
		Config:    config.Config{App: config.AppConfig{AppName: "jobboard-test"}},
		Tokens:    jwt.NewHMACService("secret", time.Hour),
		JobSearch: usecase.NewJobSearchUsecase(service.NewAggregator(nil, time.Second), nil, nil, nil),
	}
	a := New(c)

	for _, path := range []string{"/health", "/metrics", "/api/v1/jobs?page=x"} {
		resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("%s: expected 200, got %d %s", path, resp.StatusCode, body)
		}
	}

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "jobboard_http_requests_total") {
		t.Fatalf("expected http metrics to be exported")
	}

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/v1/saved-jobs", nil))
	if err != nil {
		t.Fatalf("saved-jobs: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

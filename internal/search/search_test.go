package search

import (
	"fmt"
	"math"
	"testing"
	"time"

	"jobboard/internal/domain/job"
)

func mkJob(id, title, company string) job.Job {
	return job.Job{ExternalID: id, Title: title, Company: job.Company{Name: company}}
}

func TestDedup_CollapsesTitleCompanyAcrossSources(t *testing.T) {
	in := []job.Job{
		mkJob("remotive_1", "Backend Engineer", "Acme"),
		mkJob("arbeitnow_xyz", "backend engineer", "ACME"),
	}
	out := Dedup(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 job, got %d", len(out))
	}
	if out[0].ExternalID != "remotive_1" {
		t.Fatalf("expected first seen to win, got %s", out[0].ExternalID)
	}
}

func TestDedup_IDPassRunsBeforeTitlePass(t *testing.T) {
	in := []job.Job{
		mkJob("remotive_1", "Backend Engineer", "Acme"),
		mkJob("arbeitnow_x", "backend engineer", "ACME"),
		mkJob("arbeitnow_x", "Designer", "Other"),
	}
	out := Dedup(in)
	if len(out) != 1 || out[0].ExternalID != "remotive_1" {
		t.Fatalf("expected only remotive_1, got %+v", out)
	}
}

func TestDedup_IdempotentAndUniqueIDs(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	in := []job.Job{
		{ExternalID: "jsearch_a", Title: "Go Dev", Company: job.Company{Name: "X"}, PostedAt: now},
		{ExternalID: "jsearch_a", Title: "Go Dev (dup id)", Company: job.Company{Name: "Y"}},
		{ExternalID: "adzuna_1", Title: "  go   dev ", Company: job.Company{Name: "x"}},
		{ExternalID: "adzuna_2", Title: "Rust Dev", Company: job.Company{Name: "X"}, PostedAt: now.Add(time.Hour)},
		{ExternalID: "remotive_9", Title: "QA", Company: job.Company{Name: "Z"}},
	}

	once := Dedup(in)
	twice := Dedup(once)
	if len(once) != len(twice) {
		t.Fatalf("dedup not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ExternalID != twice[i].ExternalID {
			t.Fatalf("order changed at %d: %s vs %s", i, once[i].ExternalID, twice[i].ExternalID)
		}
	}

	seen := map[string]bool{}
	for _, j := range once {
		if seen[j.ExternalID] {
			t.Fatalf("duplicate external id %s", j.ExternalID)
		}
		seen[j.ExternalID] = true
	}
	if len(once) != 3 {
		t.Fatalf("expected 3 survivors, got %d", len(once))
	}
}

func TestDedup_SortsByRecencyMissingLast(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []job.Job{
		{ExternalID: "a", Title: "A"},
		{ExternalID: "b", Title: "B", PostedAt: base},
		{ExternalID: "c", Title: "C", PostedAt: base.Add(48 * time.Hour)},
		{ExternalID: "d", Title: "D"},
		{ExternalID: "e", Title: "E", PostedAt: base.Add(96 * time.Hour), PostedAtEstimated: true},
	}
	out := Dedup(in)
	want := []string{"c", "b", "a", "d", "e"}
	for i, id := range want {
		if out[i].ExternalID != id {
			t.Fatalf("pos %d: got %s want %s", i, out[i].ExternalID, id)
		}
	}
}

func TestFilter_CompositionScenario(t *testing.T) {
	e := NewEngine(nil, nil)
	candidates := []job.Job{
		{ExternalID: "manual_1", Source: job.SourceManual, Type: job.TypeInternship, Location: job.Location{Country: "Germany", IsRemote: true}},
		{ExternalID: "arbeitnow_1", Source: job.SourceArbeitnow, Type: job.TypeInternship, Location: job.Location{Country: "Germany", IsRemote: true}},
	}
	for _, j := range candidates {
		got := e.Apply([]job.Job{j}, Filter{RemoteOnly: true, Type: "internship", Country: "de"})
		if len(got) != 1 {
			t.Fatalf("%s: expected inclusion", j.ExternalID)
		}
		got = e.Apply([]job.Job{j}, Filter{Type: "full-time"})
		if len(got) != 0 {
			t.Fatalf("%s: expected exclusion for full-time", j.ExternalID)
		}
	}
}

func TestFilter_Country(t *testing.T) {
	e := NewEngine(nil, nil)
	cases := []struct {
		name string
		j    job.Job
		code string
		want bool
	}{
		{"remotive worldwide", job.Job{Source: job.SourceRemotive, Location: job.Location{Country: "Worldwide"}}, "us", true},
		{"remotive alias usa", job.Job{Source: job.SourceRemotive, Location: job.Location{Country: "USA Only"}}, "us", true},
		{"remotive europe", job.Job{Source: job.SourceRemotive, Location: job.Location{Country: "Europe"}}, "de", true},
		{"remotive unrelated stays permissive", job.Job{Source: job.SourceRemotive, Location: job.Location{Country: "LATAM"}}, "de", true},
		{"arbeitnow served", job.Job{Source: job.SourceArbeitnow, Location: job.Location{Country: "Germany"}}, "at", true},
		{"arbeitnow unserved onsite", job.Job{Source: job.SourceArbeitnow, Location: job.Location{Country: "Germany"}}, "us", false},
		{"arbeitnow unserved remote", job.Job{Source: job.SourceArbeitnow, Location: job.Location{Country: "Germany", IsRemote: true}}, "us", true},
		{"jsearch code", job.Job{Source: job.SourceJSearch, Location: job.Location{Country: "US"}}, "us", true},
		{"jsearch other", job.Job{Source: job.SourceJSearch, Location: job.Location{Country: "CA"}}, "us", false},
		{"adzuna name", job.Job{Source: job.SourceAdzuna, Location: job.Location{Country: "United Kingdom"}}, "gb", true},
		{"manual remote", job.Job{Source: job.SourceManual, Location: job.Location{Country: "Unknown", IsRemote: true}}, "sg", true},
		{"all is no filter", job.Job{Source: job.SourceJSearch, Location: job.Location{Country: "CA"}}, "all", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := len(e.Apply([]job.Job{tc.j}, Filter{Country: tc.code})) == 1
			if got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFilter_QueryAndCategory(t *testing.T) {
	e := NewEngine(nil, nil)
	jobs := []job.Job{
		{ExternalID: "1", Title: "Senior Go Engineer", Company: job.Company{Name: "Acme"}, Category: "Software Development", Tags: []string{"golang"}},
		{ExternalID: "2", Title: "Designer", Company: job.Company{Name: "Acme"}, Category: "Design", Tags: []string{"figma"}},
	}

	if got := e.Apply(jobs, Filter{Query: "acme engineer"}); len(got) != 1 || got[0].ExternalID != "1" {
		t.Fatalf("unexpected query result: %v", got)
	}
	if got := e.Apply(jobs, Filter{Query: "acme"}); len(got) != 2 {
		t.Fatalf("expected both jobs, got %d", len(got))
	}
	if got := e.Apply(jobs, Filter{Category: "Design-jobs"}); len(got) != 1 || got[0].ExternalID != "2" {
		t.Fatalf("unexpected category result: %v", got)
	}
	if got := e.Apply(jobs, Filter{Category: "golang"}); len(got) != 1 || got[0].ExternalID != "1" {
		t.Fatalf("expected tag match, got %v", got)
	}
}

func TestFilter_UnknownEnumYieldsNothing(t *testing.T) {
	e := NewEngine(nil, nil)
	jobs := []job.Job{{ExternalID: "1", Type: job.TypeFullTime, ExperienceLevel: job.LevelMid}}
	if got := e.Apply(jobs, Filter{Type: "permanent"}); len(got) != 0 {
		t.Fatalf("expected no match, got %d", len(got))
	}
	if got := e.Apply(jobs, Filter{Experience: "wizard"}); len(got) != 0 {
		t.Fatalf("expected no match, got %d", len(got))
	}
	if got := e.Apply(jobs, Filter{Type: "FULL_TIME", Experience: "Mid"}); len(got) != 1 {
		t.Fatalf("expected normalized match, got %d", len(got))
	}
}

func TestPaginate_Math(t *testing.T) {
	for total := 0; total <= 45; total += 7 {
		jobs := make([]job.Job, total)
		for i := range jobs {
			jobs[i] = job.Job{ExternalID: fmt.Sprintf("j%d", i)}
		}
		for _, limit := range []int{1, 5, 20, 100} {
			for page := 1; page <= 6; page++ {
				p := Paginate(jobs, page, limit)

				wantPages := (total + limit - 1) / limit
				if p.TotalPages != wantPages {
					t.Fatalf("total=%d limit=%d: pages %d want %d", total, limit, p.TotalPages, wantPages)
				}
				wantLen := total - (page-1)*limit
				if wantLen < 0 {
					wantLen = 0
				}
				if wantLen > limit {
					wantLen = limit
				}
				if len(p.Jobs) != wantLen {
					t.Fatalf("total=%d limit=%d page=%d: len %d want %d", total, limit, page, len(p.Jobs), wantLen)
				}
				if p.HasMore != (page*limit < total) {
					t.Fatalf("total=%d limit=%d page=%d: wrong has_more", total, limit, page)
				}
				if p.TotalResults != total {
					t.Fatalf("total mismatch")
				}
			}
		}
	}
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	jobs := make([]job.Job, 5)
	for _, page := range []int{math.MaxInt / 10, math.MaxInt} {
		p := Paginate(jobs, page, 20)
		if len(p.Jobs) != 0 || p.HasMore || p.TotalResults != 5 {
			t.Fatalf("page=%d: unexpected %+v", page, p)
		}
		if p.Page <= 1 || p.Page > math.MaxInt/20 {
			t.Fatalf("page=%d: clamped to %d", page, p.Page)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct{ page, limit, wantPage, wantLimit int }{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 500, 2, 100},
		{4, 10, 4, 10},
		{math.MaxInt, 100, math.MaxInt / 100, 100},
	}
	for _, tc := range cases {
		p, l := NormalizePage(tc.page, tc.limit)
		if p != tc.wantPage || l != tc.wantLimit {
			t.Fatalf("NormalizePage(%d,%d) = %d,%d", tc.page, tc.limit, p, l)
		}
	}
}

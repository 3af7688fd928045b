package job

import (
	"testing"
	"time"
)

func TestNormalizeJobType(t *testing.T) {
	cases := []struct {
		in   string
		want JobType
	}{
		{"full-time", TypeFullTime},
		{"PART_TIME", TypePartTime},
		{"Part Time", TypePartTime},
		{"  Contract ", TypeContract},
		{"INTERNSHIP", TypeInternship},
		{"temporary", TypeTemporary},
		{"Freelance", TypeFreelance},
		{"", TypeFullTime},
		{"intern", TypeFullTime},
		{"something-else", TypeFullTime},
	}
	for _, tc := range cases {
		if got := NormalizeJobType(tc.in); got != tc.want {
			t.Fatalf("NormalizeJobType(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeExperienceLevel(t *testing.T) {
	cases := []struct {
		in   string
		want ExperienceLevel
	}{
		{"senior", LevelSenior},
		{"LEAD", LevelLead},
		{"Executive", LevelExecutive},
		{"entry", LevelEntry},
		{"", LevelMid},
		{"principal_engineer", LevelMid},
	}
	for _, tc := range cases {
		if got := NormalizeExperienceLevel(tc.in); got != tc.want {
			t.Fatalf("NormalizeExperienceLevel(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestJobNormalize_Defaults(t *testing.T) {
	j := Job{ExternalID: " manual_1 ", Title: "Engineer", Type: "FULL_TIME"}
	j.Normalize()

	if j.ExternalID != "manual_1" {
		t.Fatalf("unexpected external id %q", j.ExternalID)
	}
	if j.Location.Country != UnknownCountry {
		t.Fatalf("expected Unknown country, got %q", j.Location.Country)
	}
	if j.Location.City != "" {
		t.Fatalf("expected empty city, got %q", j.Location.City)
	}
	if j.ApplyURL != DefaultApplyURL {
		t.Fatalf("expected apply url fallback, got %q", j.ApplyURL)
	}
	if j.Salary.Currency != "USD" || j.Salary.Period != "yearly" {
		t.Fatalf("unexpected salary defaults %+v", j.Salary)
	}
	if j.WorkArrangement != ArrangementOnsite {
		t.Fatalf("expected onsite, got %q", j.WorkArrangement)
	}
	if j.ExperienceLevel != LevelMid {
		t.Fatalf("expected mid, got %q", j.ExperienceLevel)
	}
	if j.Tags == nil || j.Skills == nil || j.Requirements == nil {
		t.Fatalf("expected non-nil slices")
	}
}

func TestDeriveWorkArrangement(t *testing.T) {
	if got := DeriveWorkArrangement("", true); got != ArrangementRemote {
		t.Fatalf("got %q", got)
	}
	if got := DeriveWorkArrangement("Hybrid", true); got != ArrangementHybrid {
		t.Fatalf("got %q", got)
	}
	if got := DeriveWorkArrangement("on-site", true); got != ArrangementOnsite {
		t.Fatalf("got %q", got)
	}
}

func TestSplitExternalID(t *testing.T) {
	src, native, err := SplitExternalID("jsearch_abc_def==")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if src != SourceJSearch || native != "abc_def==" {
		t.Fatalf("unexpected split %q %q", src, native)
	}
	if ExternalID(src, native) != "jsearch_abc_def==" {
		t.Fatalf("round trip mismatch")
	}

	for _, bad := range []string{"", "remotive", "remotive_", "linkedin_1"} {
		if _, _, err := SplitExternalID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestWithPostedAtDefault(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := (Job{}).WithPostedAtDefault(now); !got.Equal(now) {
		t.Fatalf("expected fallback, got %v", got)
	}
	posted := now.Add(-time.Hour)
	if got := (Job{PostedAt: posted}).WithPostedAtDefault(now); !got.Equal(posted) {
		t.Fatalf("expected posted, got %v", got)
	}
}

func TestStampFetchTime(t *testing.T) {
	fetched := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	j := Job{}
	j.StampFetchTime(fetched)
	if !j.PostedAt.Equal(fetched) || !j.PostedAtEstimated || j.HasKnownDate() {
		t.Fatalf("expected stamped estimate, got %+v", j)
	}

	posted := fetched.Add(-time.Hour)
	j = Job{PostedAt: posted}
	j.StampFetchTime(fetched)
	if !j.PostedAt.Equal(posted) || j.PostedAtEstimated || !j.HasKnownDate() {
		t.Fatalf("source date must be kept, got %+v", j)
	}
}

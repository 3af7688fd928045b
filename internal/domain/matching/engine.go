package matching

import (
	"math"
	"sort"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/profile"
)

const (
	weightSkills      = 40.0
	weightLocation    = 15.0
	weightArrangement = 15.0
	weightJobType     = 10.0
	weightTitle       = 20.0

	// MaxScore keeps every match strictly below 100.
	MaxScore = 99

	DefaultRecommendationThreshold = 30
)

type SubScore struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
}

type Result struct {
	Score          int        `json:"score"`
	MatchingSkills []string   `json:"matching_skills"`
	MissingSkills  []string   `json:"missing_skills"`
	Breakdown      []SubScore `json:"breakdown"`
}

// Score computes a 0..99 compatibility score between a profile and a job.
// A nil vocab falls back to DefaultSkillVocabulary.
func Score(p profile.UserProfile, j job.Job, vocab []string) Result {
	if vocab == nil {
		vocab = DefaultSkillVocabulary
	}

	userSkills := newOrderedSet()
	userSkills.addAll(ExtractSkills(p.ResumeText, vocab))
	userSkills.addAll(ExtractSkills(p.Headline, vocab))
	userSkills.addAll(ExtractSkills(p.Bio, vocab))
	userSkills.addAll(p.Skills)

	jobSkills := newOrderedSet()
	jobSkills.addAll(j.Skills)
	jobSkills.addAll(ExtractSkills(j.Title, vocab))
	jobSkills.addAll(ExtractSkills(j.Description, vocab))
	jobSkills.addAll(ExtractSkills(strings.Join(j.Requirements, " "), vocab))

	skillPts, matching, missing := scoreSkills(userSkills.items, jobSkills.items)

	breakdown := []SubScore{
		{Name: "skills", Points: skillPts, Max: weightSkills},
		{Name: "location", Points: scoreLocation(p, j), Max: weightLocation},
		{Name: "work_arrangement", Points: scoreArrangement(p, j), Max: weightArrangement},
		{Name: "job_type", Points: scoreJobType(p, j), Max: weightJobType},
		{Name: "title", Points: scoreTitle(p.Headline, j.Title), Max: weightTitle},
	}

	var sum, den float64
	for _, s := range breakdown {
		sum += s.Points
		den += s.Max
	}

	score := 0
	if den > 0 {
		score = int(math.Round(sum / den * 100))
	}

	return Result{
		Score:          clampInt(score, 0, MaxScore),
		MatchingSkills: matching,
		MissingSkills:  missing,
		Breakdown:      breakdown,
	}
}

func scoreSkills(user, jobSkills []string) (float64, []string, []string) {
	matching := make([]string, 0)
	missing := make([]string, 0)
	if len(user) == 0 || len(jobSkills) == 0 {
		missing = append(missing, jobSkills...)
		return 0, matching, missing
	}

	for _, us := range user {
		for _, js := range jobSkills {
			if skillsOverlap(us, js) {
				matching = append(matching, us)
				break
			}
		}
	}
	for _, js := range jobSkills {
		found := false
		for _, us := range user {
			if skillsOverlap(us, js) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, js)
		}
	}

	den := len(user)
	if len(jobSkills) > den {
		den = len(jobSkills)
	}
	return float64(len(matching)) / float64(den) * weightSkills, matching, missing
}

func scoreLocation(p profile.UserProfile, j job.Job) float64 {
	userCountry := strings.TrimSpace(p.Country)
	jobCountry := strings.TrimSpace(j.Location.Country)
	if userCountry != "" && jobCountry != "" {
		if strings.EqualFold(userCountry, jobCountry) {
			return weightLocation
		}
		if j.Location.IsRemote {
			return 10
		}
		return 0
	}
	if j.Location.IsRemote {
		return weightLocation
	}
	return 0
}

func scoreArrangement(p profile.UserProfile, j job.Job) float64 {
	pref := strings.ToLower(strings.TrimSpace(p.Preferences.RemotePreference))
	if pref == "" {
		return 10
	}
	arrangement := j.WorkArrangement
	if arrangement == "" {
		arrangement = job.DeriveWorkArrangement("", j.Location.IsRemote)
	}

	switch {
	case pref == profile.RemotePreferenceAny:
		return weightArrangement
	case job.WorkArrangement(pref) == arrangement:
		return weightArrangement
	case pref == profile.RemotePreferenceHybrid &&
		(arrangement == job.ArrangementRemote || arrangement == job.ArrangementHybrid):
		return 10
	}
	return 0
}

func scoreJobType(p profile.UserProfile, j job.Job) float64 {
	if len(p.Preferences.JobTypes) == 0 {
		return 7
	}
	jt := job.NormalizeJobType(string(j.Type))
	for _, t := range p.Preferences.JobTypes {
		t = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(t)), "_", "-")
		if job.JobType(t) == jt {
			return weightJobType
		}
	}
	return 0
}

// scoreTitle counts headline tokens longer than three characters that overlap a title token.
func scoreTitle(headline, title string) float64 {
	hw := strings.Fields(strings.ToLower(headline))
	tw := strings.Fields(strings.ToLower(title))
	if len(hw) == 0 || len(tw) == 0 {
		return 0
	}

	common := 0
	for _, w := range hw {
		if len(w) <= 3 {
			continue
		}
		for _, t := range tw {
			if strings.Contains(t, w) || strings.Contains(w, t) {
				common++
				break
			}
		}
	}

	den := len(hw)
	if len(tw) > den {
		den = len(tw)
	}
	return float64(common) / float64(den) * weightTitle
}

type Scored struct {
	Job    job.Job
	Result Result
}

// FilterRecommended drops entries below minScore and sorts the rest by score, highest first.
func FilterRecommended(in []Scored, minScore int) []Scored {
	out := make([]Scored, 0, len(in))
	for _, s := range in {
		if s.Result.Score < minScore {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Result.Score > out[k].Result.Score
	})
	return out
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) addAll(in []string) {
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.items = append(s.items, v)
	}
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

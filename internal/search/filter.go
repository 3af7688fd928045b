package search

import (
	"strings"
	"unicode"

	"jobboard/internal/domain/job"
)

type Filter struct {
	Query      string
	Country    string
	Category   string
	RemoteOnly bool
	Type       string
	Experience string
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		strings.TrimSpace(f.Country) == "" &&
		strings.TrimSpace(f.Category) == "" &&
		!f.RemoteOnly &&
		strings.TrimSpace(f.Type) == "" &&
		strings.TrimSpace(f.Experience) == ""
}

// Engine applies filters using explicit region tables.
type Engine struct {
	Aliases    RegionAliases
	Fixed      FixedRegions
	Permissive map[job.Source]struct{}
}

func NewEngine(aliases RegionAliases, fixed FixedRegions) *Engine {
	if aliases == nil {
		aliases = DefaultRegionAliases
	}
	if fixed == nil {
		fixed = DefaultFixedRegions
	}
	return &Engine{Aliases: aliases, Fixed: fixed, Permissive: PermissiveSources}
}

// Apply keeps jobs passing every non-empty filter, preserving input order.
func (e *Engine) Apply(jobs []job.Job, f Filter) []job.Job {
	if e == nil {
		e = NewEngine(nil, nil)
	}

	terms := strings.Fields(strings.ToLower(strings.TrimSpace(f.Query)))
	country := strings.ToLower(strings.TrimSpace(f.Country))
	if country == "all" {
		country = ""
	}
	category := strings.ToLower(strings.TrimSpace(f.Category))
	if category == "all" {
		category = ""
	}
	category = strings.TrimSuffix(category, "-jobs")

	typeFilter := strings.TrimSpace(f.Type)
	expFilter := strings.TrimSpace(f.Experience)

	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if len(terms) > 0 && !matchesQuery(j, terms) {
			continue
		}
		if category != "" && !matchesCategory(j, category) {
			continue
		}
		if country != "" && !e.matchesCountry(j, country) {
			continue
		}
		if f.RemoteOnly && !j.Location.IsRemote {
			continue
		}
		if typeFilter != "" {
			if !job.IsJobType(typeFilter) || job.NormalizeJobType(string(j.Type)) != job.NormalizeJobType(typeFilter) {
				continue
			}
		}
		if expFilter != "" {
			if !job.IsExperienceLevel(expFilter) ||
				job.NormalizeExperienceLevel(string(j.ExperienceLevel)) != job.NormalizeExperienceLevel(expFilter) {
				continue
			}
		}
		out = append(out, j)
	}
	return out
}

func matchesQuery(j job.Job, terms []string) bool {
	parts := make([]string, 0, 5+len(j.Tags))
	parts = append(parts, j.Title, j.Company.Name, j.Description, j.Category)
	parts = append(parts, j.Tags...)
	text := strings.ToLower(strings.Join(parts, " "))
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

func matchesCategory(j job.Job, category string) bool {
	if strings.Contains(strings.ToLower(j.Category), category) {
		return true
	}
	tags := make([]string, 0, len(j.Tags))
	for _, t := range j.Tags {
		tags = append(tags, strings.ToLower(t))
	}
	return strings.Contains(strings.Join(tags, " "), category)
}

func (e *Engine) matchesCountry(j job.Job, code string) bool {
	location := strings.ToLower(strings.TrimSpace(j.Location.Country))

	if serves, known := e.Fixed.Serves(j.Source, code); known {
		return serves || j.Location.IsRemote
	}

	// remote-first boards stay visible for every country
	if _, ok := e.Permissive[j.Source]; ok {
		return true
	}

	if location == code || hasWord(location, code) {
		return true
	}
	if name, ok := CountryNames[code]; ok && strings.Contains(location, name) {
		return true
	}
	if e.Aliases.Matches(code, location) {
		return true
	}
	return j.Location.IsRemote
}

func hasWord(s, w string) bool {
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) {
		if f == w {
			return true
		}
	}
	return false
}

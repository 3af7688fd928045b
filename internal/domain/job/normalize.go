package job

import (
	"strings"
	"time"
)

var jobTypes = map[JobType]struct{}{
	TypeFullTime:   {},
	TypePartTime:   {},
	TypeContract:   {},
	TypeInternship: {},
	TypeTemporary:  {},
	TypeFreelance:  {},
}

var experienceLevels = map[ExperienceLevel]struct{}{
	LevelEntry:     {},
	LevelMid:       {},
	LevelSenior:    {},
	LevelLead:      {},
	LevelExecutive: {},
}

func canonicalToken(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.Join(strings.Fields(s), "-")
	return s
}

func NormalizeJobType(raw string) JobType {
	t := JobType(canonicalToken(raw))
	if _, ok := jobTypes[t]; ok {
		return t
	}
	return TypeFullTime
}

func NormalizeExperienceLevel(raw string) ExperienceLevel {
	l := ExperienceLevel(canonicalToken(raw))
	if _, ok := experienceLevels[l]; ok {
		return l
	}
	return LevelMid
}

// IsJobType reports whether raw is already a member of the closed type set.
func IsJobType(raw string) bool {
	_, ok := jobTypes[JobType(canonicalToken(raw))]
	return ok
}

func IsExperienceLevel(raw string) bool {
	_, ok := experienceLevels[ExperienceLevel(canonicalToken(raw))]
	return ok
}

func DeriveWorkArrangement(explicit string, isRemote bool) WorkArrangement {
	switch WorkArrangement(canonicalToken(explicit)) {
	case ArrangementRemote:
		return ArrangementRemote
	case ArrangementHybrid:
		return ArrangementHybrid
	case ArrangementOnsite, "on-site":
		return ArrangementOnsite
	}
	if isRemote {
		return ArrangementRemote
	}
	return ArrangementOnsite
}

func NormalizeCountry(country string) string {
	country = strings.TrimSpace(country)
	if country == "" {
		return UnknownCountry
	}
	return country
}

// Normalize fills every canonical default in place.
func (j *Job) Normalize() {
	if j == nil {
		return
	}
	j.ExternalID = strings.TrimSpace(j.ExternalID)
	j.Title = strings.TrimSpace(j.Title)
	j.Company.Name = strings.TrimSpace(j.Company.Name)
	j.Location.City = strings.TrimSpace(j.Location.City)
	j.Location.State = strings.TrimSpace(j.Location.State)
	j.Location.Country = NormalizeCountry(j.Location.Country)

	j.Type = NormalizeJobType(string(j.Type))
	j.ExperienceLevel = NormalizeExperienceLevel(string(j.ExperienceLevel))
	j.WorkArrangement = DeriveWorkArrangement(string(j.WorkArrangement), j.Location.IsRemote)

	if strings.TrimSpace(j.Salary.Currency) == "" {
		j.Salary.Currency = DefaultCurrency
	}
	if strings.TrimSpace(j.Salary.Period) == "" {
		j.Salary.Period = DefaultPeriod
	}
	j.Salary.Period = strings.ToLower(strings.TrimSpace(j.Salary.Period))

	if strings.TrimSpace(j.ApplyURL) == "" {
		j.ApplyURL = DefaultApplyURL
	}

	j.Requirements = nonNil(j.Requirements)
	j.Responsibilities = nonNil(j.Responsibilities)
	j.Benefits = nonNil(j.Benefits)
	j.Skills = nonNil(j.Skills)
	j.Tags = nonNil(j.Tags)
}

// WithPostedAtDefault returns PostedAt, or fallback when the source omitted it.
func (j Job) WithPostedAtDefault(fallback time.Time) time.Time {
	if j.PostedAt.IsZero() {
		return fallback.UTC()
	}
	return j.PostedAt
}

// StampFetchTime fills a missing PostedAt with fetchedAt and flags it as
// estimated.
func (j *Job) StampFetchTime(fetchedAt time.Time) {
	if !j.PostedAt.IsZero() {
		return
	}
	j.PostedAt = fetchedAt.UTC()
	j.PostedAtEstimated = true
}

// HasKnownDate is false for undated jobs, stamped or not.
func (j Job) HasKnownDate() bool {
	return !j.PostedAt.IsZero() && !j.PostedAtEstimated
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

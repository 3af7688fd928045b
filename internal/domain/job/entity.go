package job

import (
	"errors"
	"strings"
	"time"
)

type Source string

const (
	SourceRemotive  Source = "remotive"
	SourceArbeitnow Source = "arbeitnow"
	SourceJSearch   Source = "jsearch"
	SourceAdzuna    Source = "adzuna"
	SourceTheMuse   Source = "themuse"
	SourceManual    Source = "manual"
)

var sources = []Source{SourceRemotive, SourceArbeitnow, SourceJSearch, SourceAdzuna, SourceTheMuse, SourceManual}

func ParseSource(raw string) (Source, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, s := range sources {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

type JobType string

const (
	TypeFullTime   JobType = "full-time"
	TypePartTime   JobType = "part-time"
	TypeContract   JobType = "contract"
	TypeInternship JobType = "internship"
	TypeTemporary  JobType = "temporary"
	TypeFreelance  JobType = "freelance"
)

type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelExecutive ExperienceLevel = "executive"
)

type WorkArrangement string

const (
	ArrangementRemote WorkArrangement = "remote"
	ArrangementHybrid WorkArrangement = "hybrid"
	ArrangementOnsite WorkArrangement = "onsite"
)

const (
	UnknownCountry  = "Unknown"
	DefaultCurrency = "USD"
	DefaultPeriod   = "yearly"
	DefaultApplyURL = "#"
)

type Company struct {
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	Size        string `json:"size,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

type Location struct {
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country"`
	IsRemote bool   `json:"is_remote"`
}

type Salary struct {
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

// Job is the canonical listing every provider adapter produces.
// PostedAt is the fetch time when the source did not supply a usable date;
// PostedAtEstimated marks that case so recency sorting can put it last.
type Job struct {
	ExternalID        string          `json:"external_id"`
	Source            Source          `json:"source"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Company           Company         `json:"company"`
	Location          Location        `json:"location"`
	Requirements      []string        `json:"requirements"`
	Responsibilities  []string        `json:"responsibilities"`
	Benefits          []string        `json:"benefits"`
	Skills            []string        `json:"skills"`
	Tags              []string        `json:"tags"`
	Type              JobType         `json:"type"`
	ExperienceLevel   ExperienceLevel `json:"experience_level"`
	WorkArrangement   WorkArrangement `json:"work_arrangement"`
	Salary            Salary          `json:"salary"`
	Category          string          `json:"category"`
	Subcategory       string          `json:"subcategory,omitempty"`
	ApplyURL          string          `json:"apply_url"`
	PostedAt          time.Time       `json:"posted_at"`
	PostedAtEstimated bool            `json:"posted_at_estimated,omitempty"`
	IsActive          bool            `json:"is_active"`
}

var ErrInvalidExternalID = errors.New("invalid external id")

func ExternalID(source Source, nativeID string) string {
	return string(source) + "_" + strings.TrimSpace(nativeID)
}

// SplitExternalID splits "source_nativeId". Everything after the first
// underscore belongs to the native id.
func SplitExternalID(externalID string) (Source, string, error) {
	externalID = strings.TrimSpace(externalID)
	prefix, native, ok := strings.Cut(externalID, "_")
	if !ok || native == "" {
		return "", "", ErrInvalidExternalID
	}
	src, ok := ParseSource(prefix)
	if !ok {
		return "", "", ErrInvalidExternalID
	}
	return src, native, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/profile"
	"jobboard/internal/infrastructure/llm"
)

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

var ErrMalformedAnalysis = errors.New("malformed match analysis")

type SalaryEstimate struct {
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	Currency  string `json:"currency"`
	Reasoning string `json:"reasoning"`
}

type MatchAnalysis struct {
	MatchScore            int            `json:"match_score"`
	MatchingSkills        []string       `json:"matching_skills"`
	MissingSkills         []string       `json:"missing_skills"`
	StrengthPoints        []string       `json:"strength_points"`
	ImprovementAreas      []string       `json:"improvement_areas"`
	SalaryEstimate        SalaryEstimate `json:"salary_estimate"`
	InterviewTips         []string       `json:"interview_tips"`
	OverallRecommendation string         `json:"overall_recommendation"`
}

type JobMatchResult struct {
	Analysis *MatchAnalysis
	Local    matching.Result
}

type JobMatchUsecase interface {
	Analyze(ctx context.Context, resume profile.UserProfile, j job.Job) (JobMatchResult, error)
}

type JobMatch struct {
	llm    llm.Generator
	vocab  []string
	logger *log.Logger
}

func NewJobMatchUsecase(gen llm.Generator, logger *log.Logger) *JobMatch {
	return &JobMatch{llm: gen, vocab: matching.DefaultSkillVocabulary, logger: logger}
}

// Analyze always computes the local score. The LLM analysis is attached when
// a model is configured; an unconfigured model yields Analysis == nil.
func (u *JobMatch) Analyze(ctx context.Context, resume profile.UserProfile, j job.Job) (JobMatchResult, error) {
	if !hasResumeContent(resume) || strings.TrimSpace(j.Title) == "" {
		return JobMatchResult{}, ErrInvalidInput
	}
	j.Normalize()

	out := JobMatchResult{Local: matching.Score(resume, j, u.vocab)}
	if u.llm == nil {
		return out, nil
	}

	text, err := u.llm.Generate(ctx, "job_match", buildMatchPrompt(resume, j))
	if err != nil {
		if errors.Is(err, llm.ErrDisabled) {
			return out, nil
		}
		logf(u.logger, "[JobMatch] llm error: %v", err)
		return JobMatchResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	a, err := ParseMatchAnalysis(text)
	if err != nil {
		logf(u.logger, "[JobMatch] parse error: %v", err)
		return JobMatchResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	out.Analysis = &a
	return out, nil
}

// ParseMatchAnalysis decodes the first {...} block of a model reply.
func ParseMatchAnalysis(text string) (MatchAnalysis, error) {
	raw := jsonObjectRe.FindString(text)
	if raw == "" {
		return MatchAnalysis{}, ErrMalformedAnalysis
	}
	var a MatchAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return MatchAnalysis{}, fmt.Errorf("%w: %v", ErrMalformedAnalysis, err)
	}
	if a.MatchScore < 0 {
		a.MatchScore = 0
	}
	if a.MatchScore > 100 {
		a.MatchScore = 100
	}
	return a, nil
}

func hasResumeContent(p profile.UserProfile) bool {
	return len(p.Skills) > 0 ||
		strings.TrimSpace(p.ResumeText) != "" ||
		strings.TrimSpace(p.Headline) != "" ||
		strings.TrimSpace(p.Bio) != ""
}

func buildMatchPrompt(p profile.UserProfile, j job.Job) string {
	candidate, _ := json.MarshalIndent(struct {
		Headline   string   `json:"headline,omitempty"`
		Skills     []string `json:"skills,omitempty"`
		Bio        string   `json:"bio,omitempty"`
		ResumeText string   `json:"resume_text,omitempty"`
		Country    string   `json:"country,omitempty"`
	}{p.Headline, p.Skills, p.Bio, p.ResumeText, p.Country}, "", "  ")

	var b strings.Builder
	b.WriteString("Analyze how well this candidate matches the job. Reply with JSON only.\n\n")
	b.WriteString("Candidate:\n")
	b.Write(candidate)
	b.WriteString("\n\nJob:\n")
	fmt.Fprintf(&b, "Title: %s\nCompany: %s\nDescription: %s\n", j.Title, j.Company.Name, j.Description)
	fmt.Fprintf(&b, "Requirements: %s\nSkills: %s\n\n", orNotSpecified(j.Requirements), orNotSpecified(j.Skills))
	b.WriteString(`Use exactly these keys: {"match_score": 0-100, "matching_skills": [], "missing_skills": [], ` +
		`"strength_points": [], "improvement_areas": [], ` +
		`"salary_estimate": {"min": 0, "max": 0, "currency": "USD", "reasoning": ""}, ` +
		`"interview_tips": [], "overall_recommendation": ""}`)
	return b.String()
}

func orNotSpecified(in []string) string {
	if len(in) == 0 {
		return "Not specified"
	}
	return strings.Join(in, ", ")
}

var _ JobMatchUsecase = (*JobMatch)(nil)

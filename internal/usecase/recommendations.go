package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/profile"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultRecommendationLimit = 10
	maxRecommendationLimit     = 50
	candidateMultiplier        = 3
)

type ProfileCompleteness struct {
	HasResume      bool `json:"has_resume"`
	HasHeadline    bool `json:"has_headline"`
	HasBio         bool `json:"has_bio"`
	HasPreferences bool `json:"has_preferences"`
}

type RecommendationResult struct {
	Items        []matching.Scored
	Completeness ProfileCompleteness
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (RecommendationResult, error)
}

type Recommendations struct {
	profiles repository.ProfileRepository
	jobs     repository.JobStore
	vocab    []string
	minScore int
	logger   *log.Logger
}

func NewRecommendationUsecase(profiles repository.ProfileRepository, jobs repository.JobStore, logger *log.Logger) *Recommendations {
	return &Recommendations{
		profiles: profiles,
		jobs:     jobs,
		vocab:    matching.DefaultSkillVocabulary,
		minScore: matching.DefaultRecommendationThreshold,
		logger:   logger,
	}
}

func (u *Recommendations) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (RecommendationResult, error) {
	if userID == uuid.Nil {
		return RecommendationResult{}, ErrUnauthorized
	}
	if u.profiles == nil || u.jobs == nil {
		return RecommendationResult{}, ErrUnavailable
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}

	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return RecommendationResult{}, ErrNotFound
		}
		logf(u.logger, "[Recommendations] profile user=%s error=%v", userID, err)
		return RecommendationResult{}, ErrInternal
	}

	candidates, err := u.jobs.ListActive(ctx, repository.ActiveJobFilter{
		JobTypes:   p.Preferences.JobTypes,
		RemoteOnly: strings.EqualFold(p.Preferences.RemotePreference, profile.RemotePreferenceRemote),
	}, limit*candidateMultiplier)
	if err != nil {
		logf(u.logger, "[Recommendations] candidates user=%s error=%v", userID, err)
		return RecommendationResult{}, ErrInternal
	}

	scored := make([]matching.Scored, 0, len(candidates))
	for _, j := range candidates {
		scored = append(scored, matching.Scored{Job: j, Result: matching.Score(p, j, u.vocab)})
	}
	scored = matching.FilterRecommended(scored, u.minScore)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return RecommendationResult{
		Items: scored,
		Completeness: ProfileCompleteness{
			HasResume:      strings.TrimSpace(p.ResumeText) != "" || strings.TrimSpace(p.ResumeURL) != "",
			HasHeadline:    strings.TrimSpace(p.Headline) != "",
			HasBio:         strings.TrimSpace(p.Bio) != "",
			HasPreferences: p.HasPreferences(),
		},
	}, nil
}

var _ RecommendationUsecase = (*Recommendations)(nil)

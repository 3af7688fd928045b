package dto

import (
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
)

type RecommendationItem struct {
	Job            job.Job             `json:"job"`
	MatchScore     int                 `json:"match_score"`
	MatchingSkills []string            `json:"matching_skills"`
	MissingSkills  []string            `json:"missing_skills"`
	Breakdown      []matching.SubScore `json:"breakdown"`
}

type ProfileCompletenessResponse struct {
	HasResume      bool `json:"has_resume"`
	HasHeadline    bool `json:"has_headline"`
	HasBio         bool `json:"has_bio"`
	HasPreferences bool `json:"has_preferences"`
}

type RecommendationResponse struct {
	Recommendations     []RecommendationItem        `json:"recommendations"`
	ProfileCompleteness ProfileCompletenessResponse `json:"profile_completeness"`
}

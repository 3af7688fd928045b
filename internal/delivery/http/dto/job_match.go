package dto

import (
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
)

type ResumeRequest struct {
	Skills           []string `json:"skills" validate:"max=200,dive,max=100"`
	Headline         string   `json:"headline" validate:"max=300"`
	Bio              string   `json:"bio" validate:"max=5000"`
	ResumeText       string   `json:"resume_text" validate:"max=50000"`
	Country          string   `json:"country" validate:"max=100"`
	RemotePreference string   `json:"remote_preference" validate:"omitempty,oneof=remote hybrid onsite any"`
	JobTypes         []string `json:"job_types" validate:"max=10"`
}

type JobMatchRequest struct {
	Resume ResumeRequest `json:"resume"`
	Job    job.Job       `json:"job"`
}

type JobMatchResponse struct {
	AIEnabled  bool            `json:"ai_enabled"`
	Analysis   any             `json:"analysis"`
	LocalMatch matching.Result `json:"local_match"`
}

package dto

import (
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
)

// JobResponse is a canonical job, optionally annotated with the caller's
// match result when with_score was requested.
type JobResponse struct {
	job.Job
	Match *matching.Result `json:"match,omitempty"`
}

type JobSearchResponse struct {
	Jobs          []JobResponse  `json:"jobs"`
	TotalResults  int            `json:"total_results"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	TotalPages    int            `json:"total_pages"`
	HasMore       bool           `json:"has_more"`
	Breakdown     map[string]int `json:"breakdown,omitempty"`
	FailedSources []string       `json:"failed_sources,omitempty"`
	Cached        bool           `json:"cached"`
}

// JobSearchFailure is written with a 500 when no job could be produced.
type JobSearchFailure struct {
	Jobs         []JobResponse `json:"jobs"`
	TotalResults int           `json:"total_results"`
	Error        string        `json:"error"`
}

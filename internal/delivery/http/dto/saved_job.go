package dto

import (
	"time"

	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type SaveJobRequest struct {
	Job   job.Job `json:"job"`
	Notes string  `json:"notes" validate:"max=2000"`
}

type SavedJobResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Notes      string    `json:"notes,omitempty"`
	SavedAt    time.Time `json:"saved_at"`
	Job        job.Job   `json:"job"`
}

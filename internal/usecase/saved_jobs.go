package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

const enrichTimeout = 8 * time.Second

type CompanyEnricher interface {
	Describe(ctx context.Context, website string) (string, error)
}

type SavedJobsNotifier interface {
	NotifySavedJobsUpdated(userID uuid.UUID, action, externalID string)
}

type SaveJobInput struct {
	Job   job.Job
	Notes string
}

type SavedJobsUsecase interface {
	Save(ctx context.Context, userID uuid.UUID, in SaveJobInput) (repository.SavedJob, error)
	List(ctx context.Context, userID uuid.UUID) ([]repository.SavedJob, error)
	Remove(ctx context.Context, userID uuid.UUID, externalID string) error
}

type SavedJobs struct {
	jobs     repository.JobStore
	saved    repository.SavedJobRepository
	enricher CompanyEnricher
	notifier SavedJobsNotifier
	logger   *log.Logger
}

func NewSavedJobsUsecase(jobs repository.JobStore, saved repository.SavedJobRepository, enricher CompanyEnricher, notifier SavedJobsNotifier, logger *log.Logger) *SavedJobs {
	return &SavedJobs{jobs: jobs, saved: saved, enricher: enricher, notifier: notifier, logger: logger}
}

func (u *SavedJobs) Save(ctx context.Context, userID uuid.UUID, in SaveJobInput) (repository.SavedJob, error) {
	if userID == uuid.Nil {
		return repository.SavedJob{}, ErrUnauthorized
	}
	if u.jobs == nil || u.saved == nil {
		return repository.SavedJob{}, ErrUnavailable
	}

	j := in.Job
	j.ExternalID = strings.TrimSpace(j.ExternalID)
	if _, _, err := job.SplitExternalID(j.ExternalID); err != nil || strings.TrimSpace(j.Title) == "" {
		return repository.SavedJob{}, ErrInvalidInput
	}
	if j.Source == "" {
		j.Source, _, _ = job.SplitExternalID(j.ExternalID)
	}
	j.IsActive = true
	j.Normalize()
	u.enrich(ctx, &j)

	stored, err := u.jobs.Upsert(ctx, j)
	if err != nil {
		logf(u.logger, "[SavedJobs] upsert job=%s error=%v", j.ExternalID, err)
		return repository.SavedJob{}, ErrInternal
	}

	sj, err := u.saved.Insert(ctx, userID, stored.ExternalID, in.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadySaved) {
			return repository.SavedJob{}, ErrConflict
		}
		logf(u.logger, "[SavedJobs] insert user=%s job=%s error=%v", userID, stored.ExternalID, err)
		return repository.SavedJob{}, ErrInternal
	}
	sj.Job = stored

	if u.notifier != nil {
		u.notifier.NotifySavedJobsUpdated(userID, "saved", stored.ExternalID)
	}
	return sj, nil
}

// enrich fills the company description from its website. Failures are
// logged and ignored.
func (u *SavedJobs) enrich(ctx context.Context, j *job.Job) {
	if u.enricher == nil || j.Company.Description != "" || strings.TrimSpace(j.Company.Website) == "" {
		return
	}
	ectx, cancel := context.WithTimeout(ctx, enrichTimeout)
	defer cancel()

	desc, err := u.enricher.Describe(ectx, j.Company.Website)
	if err != nil {
		logf(u.logger, "[SavedJobs] enrich company=%s error=%v", j.Company.Name, err)
		return
	}
	j.Company.Description = desc
}

func (u *SavedJobs) List(ctx context.Context, userID uuid.UUID) ([]repository.SavedJob, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if u.saved == nil {
		return nil, ErrUnavailable
	}
	items, err := u.saved.ListByUser(ctx, userID)
	if err != nil {
		logf(u.logger, "[SavedJobs] list user=%s error=%v", userID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *SavedJobs) Remove(ctx context.Context, userID uuid.UUID, externalID string) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if u.saved == nil {
		return ErrUnavailable
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return ErrInvalidInput
	}

	if err := u.saved.Delete(ctx, userID, externalID); err != nil {
		if errors.Is(err, repository.ErrSavedNotFound) {
			return ErrNotFound
		}
		logf(u.logger, "[SavedJobs] delete user=%s job=%s error=%v", userID, externalID, err)
		return ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifySavedJobsUpdated(userID, "removed", externalID)
	}
	return nil
}

var _ SavedJobsUsecase = (*SavedJobs)(nil)

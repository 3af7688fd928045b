package usecase

import (
	"context"
	"errors"
	"log"

	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
)

type JobFinder interface {
	Lookup(ctx context.Context, src job.Source, nativeID string) (job.Job, bool)
}

type JobDetailUsecase interface {
	GetJob(ctx context.Context, externalID string) (job.Job, error)
}

type JobDetail struct {
	store  repository.JobStore
	finder JobFinder
	logger *log.Logger
}

// NewJobDetailUsecase accepts a nil store when no database is configured.
func NewJobDetailUsecase(store repository.JobStore, finder JobFinder, logger *log.Logger) *JobDetail {
	return &JobDetail{store: store, finder: finder, logger: logger}
}

func (u *JobDetail) GetJob(ctx context.Context, externalID string) (job.Job, error) {
	src, nativeID, err := job.SplitExternalID(externalID)
	if err != nil {
		return job.Job{}, ErrInvalidInput
	}

	if u.store != nil {
		j, err := u.store.FindByExternalID(ctx, externalID)
		if err == nil {
			return j, nil
		}
		if !errors.Is(err, repository.ErrJobNotFound) {
			logf(u.logger, "[JobDetail] store lookup id=%s error=%v", externalID, err)
		}
	}

	if u.finder != nil {
		if j, ok := u.finder.Lookup(ctx, src, nativeID); ok {
			return j, nil
		}
	}
	return job.Job{}, ErrNotFound
}

var _ JobDetailUsecase = (*JobDetail)(nil)

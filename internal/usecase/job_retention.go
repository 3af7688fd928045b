package usecase

import (
	"context"
	"log"
	"time"
)

const retentionLockKey = "jobs:retention:lock"

type StaleJobDeactivator interface {
	DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type retentionLock interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// JobRetention retires persisted jobs whose posting date falls outside the
// retention window so recommendations only draw from live listings.
type JobRetention struct {
	store  StaleJobDeactivator
	lock   retentionLock
	logger *log.Logger
	window time.Duration
	now    func() time.Time
}

func NewJobRetention(store StaleJobDeactivator, lock retentionLock, logger *log.Logger, retentionDays int) *JobRetention {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &JobRetention{
		store:  store,
		lock:   lock,
		logger: logger,
		window: time.Duration(retentionDays) * 24 * time.Hour,
		now:    time.Now,
	}
}

// Sweep deactivates stale rows. Only one replica sweeps per lock period when
// a lock is configured; the rest return 0.
func (r *JobRetention) Sweep(ctx context.Context) (int64, error) {
	if r == nil || r.store == nil {
		return 0, nil
	}

	if r.lock != nil {
		ok, err := r.lock.SetIfNotExists(ctx, retentionLockKey, "1", 5*time.Minute)
		if err == nil && !ok {
			return 0, nil
		}
	}

	cutoff := r.now().Add(-r.window)
	n, err := r.store.DeactivateOlderThan(ctx, cutoff)
	if err != nil {
		r.logf("[Jobs] retention sweep error=%v", err)
		return 0, err
	}
	if n > 0 {
		r.logf("[Jobs] retention deactivated=%d cutoff=%s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}

func (r *JobRetention) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

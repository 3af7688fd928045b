package seeder

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
)

// JobSnapshotSeeder persists an aggregation result into the jobs table in a
// single transaction. Existing rows are left untouched.
type JobSnapshotSeeder struct {
	Jobs []job.Job

	// Inserted is filled after Run.
	Inserted int
}

func (s *JobSnapshotSeeder) Name() string { return "job_snapshot" }

func (s *JobSnapshotSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "external_id", "source", "title", "posted_at", "is_active"); err != nil {
		return err
	}

	inserted := 0
	err := database.InTx(ctx, db, func(q database.Querier) error {
		store := repository.NewPostgresJobStore(q)
		for _, j := range s.Jobs {
			if j.ExternalID == "" {
				continue
			}
			j.IsActive = true
			if _, err := store.Upsert(ctx, j); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Inserted = inserted
	return nil
}

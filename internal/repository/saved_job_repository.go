package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrAlreadySaved  = errors.New("job already saved")
	ErrSavedNotFound = errors.New("saved job not found")
)

type SavedJob struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Notes   string
	SavedAt time.Time
	Job     job.Job
}

type SavedJobRepository interface {
	Insert(ctx context.Context, userID uuid.UUID, externalID, notes string) (SavedJob, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]SavedJob, error)
	Delete(ctx context.Context, userID uuid.UUID, externalID string) error
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Insert(ctx context.Context, userID uuid.UUID, externalID, notes string) (SavedJob, error) {
	externalID = strings.TrimSpace(externalID)
	if userID == uuid.Nil || externalID == "" {
		return SavedJob{}, fmt.Errorf("insert saved job: missing user or job id")
	}

	out := SavedJob{ID: uuid.New(), UserID: userID, Notes: strings.TrimSpace(notes)}
	row := r.db.QueryRow(ctx,
		`INSERT INTO saved_jobs (id, user_id, job_external_id, notes)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, job_external_id) DO NOTHING
		 RETURNING saved_at`,
		out.ID, userID, externalID, out.Notes,
	)
	if err := row.Scan(&out.SavedAt); err != nil {
		if isNoRows(err) {
			return SavedJob{}, ErrAlreadySaved
		}
		return SavedJob{}, err
	}
	out.SavedAt = out.SavedAt.UTC()
	return out, nil
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]SavedJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.notes, s.saved_at, `+prefixed("j", jobColumns)+`
		 FROM saved_jobs s
		 JOIN jobs j ON j.external_id = s.job_external_id
		 WHERE s.user_id = $1
		 ORDER BY s.saved_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SavedJob, 0)
	for rows.Next() {
		sj := SavedJob{UserID: userID}
		j, err := scanJob(savedRow{rows: rows, head: []any{&sj.ID, &sj.Notes, &sj.SavedAt}})
		if err != nil {
			return nil, err
		}
		sj.Job = j
		sj.SavedAt = sj.SavedAt.UTC()
		out = append(out, sj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID uuid.UUID, externalID string) error {
	n, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_external_id = $2`,
		userID, strings.TrimSpace(externalID),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSavedNotFound
	}
	return nil
}

// savedRow prepends the saved_jobs columns to a job scan.
type savedRow struct {
	rows database.Rows
	head []any
}

func (s savedRow) Scan(dest ...any) error {
	all := make([]any, 0, len(s.head)+len(dest))
	all = append(all, s.head...)
	all = append(all, dest...)
	return s.rows.Scan(all...)
}

func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

var _ SavedJobRepository = (*PostgresSavedJobRepository)(nil)

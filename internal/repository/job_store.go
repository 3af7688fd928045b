package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobStore interface {
	FindByExternalID(ctx context.Context, externalID string) (job.Job, error)
	Upsert(ctx context.Context, j job.Job) (job.Job, error)
	ListActive(ctx context.Context, f ActiveJobFilter, limit int) ([]job.Job, error)
}

type ActiveJobFilter struct {
	JobTypes   []string
	RemoteOnly bool
}

const jobColumns = `external_id, source, title, description, company, location, salary,
	requirements, responsibilities, benefits, skills, tags,
	job_type, experience_level, work_arrangement, category, subcategory,
	apply_url, posted_at, is_active, posted_at_estimated`

type PostgresJobStore struct {
	db  database.Querier
	now func() time.Time
}

// NewPostgresJobStore accepts a pool or an open transaction.
func NewPostgresJobStore(db database.Querier) *PostgresJobStore {
	return &PostgresJobStore{db: db, now: time.Now}
}

func (s *PostgresJobStore) FindByExternalID(ctx context.Context, externalID string) (job.Job, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return job.Job{}, ErrJobNotFound
	}
	row := s.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE external_id = $1`, externalID)
	j, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

// Upsert stores j unless a row with the same external id exists. The stored
// row is returned either way; the first write wins.
func (s *PostgresJobStore) Upsert(ctx context.Context, j job.Job) (job.Job, error) {
	j.Normalize()
	if j.ExternalID == "" {
		return job.Job{}, job.ErrInvalidExternalID
	}

	company, err := json.Marshal(j.Company)
	if err != nil {
		return job.Job{}, err
	}
	location, err := json.Marshal(j.Location)
	if err != nil {
		return job.Job{}, err
	}
	salary, err := json.Marshal(j.Salary)
	if err != nil {
		return job.Job{}, err
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO jobs (
			external_id, source, title, description, company, location, salary,
			requirements, responsibilities, benefits, skills, tags,
			job_type, experience_level, work_arrangement, is_remote, category, subcategory,
			apply_url, posted_at, is_active, posted_at_estimated
		) VALUES ($1,$2,$3,$4,$5::jsonb,$6::jsonb,$7::jsonb,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		ON CONFLICT (external_id) DO NOTHING`,
		j.ExternalID,
		string(j.Source),
		j.Title,
		j.Description,
		string(company),
		string(location),
		string(salary),
		j.Requirements,
		j.Responsibilities,
		j.Benefits,
		j.Skills,
		j.Tags,
		string(j.Type),
		string(j.ExperienceLevel),
		string(j.WorkArrangement),
		j.Location.IsRemote,
		j.Category,
		j.Subcategory,
		j.ApplyURL,
		j.WithPostedAtDefault(s.now()),
		j.IsActive,
		j.PostedAtEstimated || j.PostedAt.IsZero(),
	)
	if err != nil {
		return job.Job{}, fmt.Errorf("upsert job %s: %w", j.ExternalID, err)
	}
	return s.FindByExternalID(ctx, j.ExternalID)
}

// DeactivateOlderThan flags active jobs posted before cutoff as inactive and
// returns how many rows changed. Saved jobs keep their row.
func (s *PostgresJobStore) DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.db.Exec(ctx, `UPDATE jobs SET is_active = false WHERE is_active AND posted_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deactivate jobs before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}

func (s *PostgresJobStore) ListActive(ctx context.Context, f ActiveJobFilter, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 30
	}
	if limit > 300 {
		limit = 300
	}

	types := make([]string, 0, len(f.JobTypes))
	for _, t := range f.JobTypes {
		if strings.TrimSpace(t) == "" {
			continue
		}
		types = append(types, string(job.NormalizeJobType(t)))
	}

	q := `SELECT ` + jobColumns + ` FROM jobs WHERE is_active = true`
	args := []any{}
	if len(types) > 0 {
		args = append(args, types)
		q += fmt.Sprintf(` AND job_type = ANY($%d)`, len(args))
	}
	if f.RemoteOnly {
		q += ` AND is_remote = true`
	}
	args = append(args, limit)
	q += fmt.Sprintf(` ORDER BY posted_at DESC LIMIT $%d`, len(args))

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j                                   job.Job
		source, jobType, level, arrangement string
		company, location, salary           []byte
	)
	err := row.Scan(
		&j.ExternalID, &source, &j.Title, &j.Description, &company, &location, &salary,
		&j.Requirements, &j.Responsibilities, &j.Benefits, &j.Skills, &j.Tags,
		&jobType, &level, &arrangement, &j.Category, &j.Subcategory,
		&j.ApplyURL, &j.PostedAt, &j.IsActive, &j.PostedAtEstimated,
	)
	if err != nil {
		return job.Job{}, err
	}

	if err := unmarshalIfPresent(company, &j.Company); err != nil {
		return job.Job{}, fmt.Errorf("decode company: %w", err)
	}
	if err := unmarshalIfPresent(location, &j.Location); err != nil {
		return job.Job{}, fmt.Errorf("decode location: %w", err)
	}
	if err := unmarshalIfPresent(salary, &j.Salary); err != nil {
		return job.Job{}, fmt.Errorf("decode salary: %w", err)
	}

	j.Source = job.Source(source)
	j.Type = job.JobType(jobType)
	j.ExperienceLevel = job.ExperienceLevel(level)
	j.WorkArrangement = job.WorkArrangement(arrangement)
	j.PostedAt = j.PostedAt.UTC()
	j.Normalize()
	return j, nil
}

func unmarshalIfPresent(b []byte, out any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

var _ JobStore = (*PostgresJobStore)(nil)

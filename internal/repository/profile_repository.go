package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/profile"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (profile.UserProfile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (profile.UserProfile, error) {
	if userID == uuid.Nil {
		return profile.UserProfile{}, ErrProfileNotFound
	}

	p := profile.UserProfile{UserID: userID}
	row := r.db.QueryRow(ctx,
		`SELECT skills, headline, bio, resume_text, resume_url, country, remote_preference, job_types
		 FROM user_profiles WHERE user_id = $1`,
		userID,
	)
	err := row.Scan(
		&p.Skills, &p.Headline, &p.Bio, &p.ResumeText, &p.ResumeURL, &p.Country,
		&p.Preferences.RemotePreference, &p.Preferences.JobTypes,
	)
	if err != nil {
		if isNoRows(err) {
			return profile.UserProfile{}, ErrProfileNotFound
		}
		return profile.UserProfile{}, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

var _ ProfileRepository = (*PostgresProfileRepository)(nil)

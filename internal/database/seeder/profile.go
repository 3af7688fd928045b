package seeder

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/profile"

	"github.com/google/uuid"
)

// ProfileSeeder upserts one profile. It is how development accounts get a
// resume without a profile editor.
type ProfileSeeder struct {
	Profile profile.UserProfile
}

func (ProfileSeeder) Name() string { return "profile" }

func (s ProfileSeeder) Run(ctx context.Context, db database.DB) error {
	p := s.Profile
	if p.UserID == uuid.Nil {
		return errors.New("seeder: profile user id is required")
	}
	if err := EnsureTableColumns(ctx, db, "user_profiles", "user_id", "skills", "headline", "job_types"); err != nil {
		return err
	}

	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	jobTypes := p.Preferences.JobTypes
	if jobTypes == nil {
		jobTypes = []string{}
	}

	_, err := db.Exec(ctx, `
		INSERT INTO user_profiles (user_id, skills, headline, bio, resume_text, resume_url, country, remote_preference, job_types)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			skills = EXCLUDED.skills,
			headline = EXCLUDED.headline,
			bio = EXCLUDED.bio,
			resume_text = EXCLUDED.resume_text,
			resume_url = EXCLUDED.resume_url,
			country = EXCLUDED.country,
			remote_preference = EXCLUDED.remote_preference,
			job_types = EXCLUDED.job_types,
			updated_at = now()`,
		p.UserID, skills, p.Headline, p.Bio, p.ResumeText, p.ResumeURL, p.Country,
		p.Preferences.RemotePreference, jobTypes,
	)
	return err
}

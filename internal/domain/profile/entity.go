package profile

import "github.com/google/uuid"

const (
	RemotePreferenceAny    = "any"
	RemotePreferenceRemote = "remote"
	RemotePreferenceHybrid = "hybrid"
	RemotePreferenceOnsite = "onsite"
)

type Preferences struct {
	RemotePreference string   `json:"remote_preference,omitempty"`
	JobTypes         []string `json:"job_types,omitempty"`
}

// UserProfile is read-only input owned by the accounts side of the product.
type UserProfile struct {
	UserID      uuid.UUID   `json:"user_id"`
	Skills      []string    `json:"skills"`
	Headline    string      `json:"headline,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	ResumeText  string      `json:"resume_text,omitempty"`
	ResumeURL   string      `json:"resume_url,omitempty"`
	Country     string      `json:"country,omitempty"`
	Preferences Preferences `json:"preferences"`
}

func (p UserProfile) HasPreferences() bool {
	return len(p.Preferences.JobTypes) > 0 || p.Preferences.RemotePreference != ""
}

package ws

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EventJobsUpdated      = "jobs_updated"
	EventSavedJobsUpdated = "saved_jobs_updated"
)

type JobsUpdatedEvent struct {
	Type      string         `json:"type"`
	Keyword   string         `json:"keyword"`
	Source    string         `json:"source"`
	Breakdown map[string]int `json:"breakdown,omitempty"`
	Timestamp string         `json:"timestamp"`
}

type SavedJobsUpdatedEvent struct {
	Type       string `json:"type"`
	Action     string `json:"action"`
	ExternalID string `json:"external_id"`
	Timestamp  string `json:"timestamp"`
}

// NotifyJobsUpdated tells every client that the cached listings for keyword
// were refreshed.
func (h *Hub) NotifyJobsUpdated(keyword, source string, breakdown map[string]int) {
	if h == nil {
		return
	}
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	b, err := json.Marshal(JobsUpdatedEvent{
		Type:      EventJobsUpdated,
		Keyword:   keyword,
		Source:    source,
		Breakdown: breakdown,
		Timestamp: now(),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}

// NotifySavedJobsUpdated reaches only the connections of userID.
func (h *Hub) NotifySavedJobsUpdated(userID uuid.UUID, action, externalID string) {
	if h == nil || userID == uuid.Nil {
		return
	}
	b, err := json.Marshal(SavedJobsUpdatedEvent{
		Type:       EventSavedJobsUpdated,
		Action:     action,
		ExternalID: externalID,
		Timestamp:  now(),
	})
	if err != nil {
		return
	}
	h.SendToUser(userID, b)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

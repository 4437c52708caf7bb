package publishers

import (
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/waha-client/pkg/waha"
)

// Lifecycle event types.
const (
	EventSessionStarted   = "session.started"
	EventSessionStopped   = "session.stopped"
	EventSessionLoggedOut = "session.logged_out"
	EventStatusChanged    = "session.status_changed"
)

// Event represents the payload published downstream.
type Event struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Session    string             `json:"session"`
	Status     waha.SessionStatus `json:"status,omitempty"`
	Gateway    string             `json:"gateway"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// NewEvent constructs an Event for the given session transition.
func NewEvent(typ, gateway, session string, status waha.SessionStatus) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Session:    session,
		Status:     status,
		Gateway:    gateway,
		OccurredAt: time.Now().UTC(),
	}
}

// attributes are the message attributes brokers can filter on.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_type": e.Type,
		"session":    e.Session,
	}
}

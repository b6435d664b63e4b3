package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EventStatus controls whether an event is visible to the public.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
)

// ParseEventStatus returns the status named by s, or false if s is not a
// recognised status.
func ParseEventStatus(s string) (EventStatus, bool) {
	switch st := EventStatus(s); st {
	case StatusDraft, StatusPublished:
		return st, true
	}
	return "", false
}

// Valid reports whether st is draft or published.
func (st EventStatus) Valid() bool {
	_, ok := ParseEventStatus(string(st))
	return ok
}

// Event is a competition with a date and a publication status.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID        uuid.UUID   `bun:"id,pk,type:uuid" json:"id"`
	Name      string      `bun:"name,notnull" json:"name"`
	EventDate time.Time   `bun:"event_date,notnull" json:"event_date"`
	Status    EventStatus `bun:"status,notnull,default:'draft'" json:"status"`
	CreatedAt time.Time   `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time   `bun:"updated_at,notnull" json:"updated_at"`
}

// PublicEvent is the event shape served on public listings.
type PublicEvent struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	EventDate time.Time   `json:"event_date"`
	Status    EventStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// Public drops the admin-only fields.
func (e Event) Public() PublicEvent {
	return PublicEvent{
		ID:        e.ID,
		Name:      e.Name,
		EventDate: e.EventDate,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
}

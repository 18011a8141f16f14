package events

import (
	"time"
)

// Event is a single behavioral record from the event log. Events are
// append-only: this engine only ever reads them. Any subset of the optional
// fields may be absent depending on the query projection; absent numeric
// fields scan as zero values.
type Event struct {
	TenantID   string    `ch:"tenant_id"`
	EventName  string    `ch:"event_name"`
	PageType   string    `ch:"page_type"`
	ObjectType string    `ch:"object_type"`
	ObjectID   string    `ch:"object_id"`
	DistinctID string    `ch:"distinct_id"`
	UID        int64     `ch:"uid"` // 0 when the event was recorded anonymously
	Platform   string    `ch:"platform"`
	Term       string    `ch:"term"` // search keyword, when applicable
	Timestamp  time.Time `ch:"timestamp,timezone('UTC')"`
}

// Authenticated reports whether the event carries a user id of its own.
func (e *Event) Authenticated() bool {
	return e.UID > 0
}

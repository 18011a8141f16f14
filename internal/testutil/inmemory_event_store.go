package testutil

import (
	"context"
	"sync"

	"github.com/maka2016/maka-stats/internal/domain/events"
)

// InMemoryEventStore implements events.Repository over a slice. FailWith
// injects a query error to exercise degradation paths.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []*events.Event
	err    error
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

func (s *InMemoryEventStore) InsertEvent(ev *events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *InMemoryEventStore) BulkInsertEvents(evs []*events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evs...)
}

func (s *InMemoryEventStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryEventStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.err = nil
}

func (s *InMemoryEventStore) QueryEvents(ctx context.Context, params *events.QueryParams) ([]*events.Event, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}

	var result []*events.Event
	for _, ev := range s.events {
		if ev.TenantID != params.TenantID {
			continue
		}
		if ev.Timestamp.Before(params.StartTime) || ev.Timestamp.After(params.EndTime) {
			continue
		}
		if len(params.EventNames) > 0 && !contains(params.EventNames, ev.EventName) {
			continue
		}
		if len(params.PageTypes) > 0 && !contains(params.PageTypes, ev.PageType) {
			continue
		}
		if len(params.ObjectTypes) > 0 && !contains(params.ObjectTypes, ev.ObjectType) {
			continue
		}
		if params.OnlyAuthenticated && !ev.Authenticated() {
			continue
		}
		result = append(result, ev)
	}
	return result, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

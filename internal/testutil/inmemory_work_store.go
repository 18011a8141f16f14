package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/maka2016/maka-stats/internal/domain/work"
)

// InMemoryWorkStore implements work.Repository over a slice.
type InMemoryWorkStore struct {
	mu    sync.RWMutex
	works []*work.Work
	err   error
}

func NewInMemoryWorkStore() *InMemoryWorkStore {
	return &InMemoryWorkStore{}
}

func (s *InMemoryWorkStore) AddWork(w *work.Work) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.works = append(s.works, w)
}

func (s *InMemoryWorkStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryWorkStore) FindCreatedBetween(ctx context.Context, tenantID string, start, end time.Time) ([]*work.Work, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}

	var result []*work.Work
	for _, w := range s.works {
		if w.TenantID != tenantID {
			continue
		}
		if w.CreatedAt.Before(start) || w.CreatedAt.After(end) {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

package testutil

import (
	"context"
	"sync"
)

// InMemoryTenantStore implements tenant.Repository over a slice.
type InMemoryTenantStore struct {
	mu      sync.RWMutex
	tenants []string
	err     error
}

func NewInMemoryTenantStore(tenants ...string) *InMemoryTenantStore {
	return &InMemoryTenantStore{tenants: tenants}
}

func (s *InMemoryTenantStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryTenantStore) ListTenantIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	result := make([]string, len(s.tenants))
	copy(result, s.tenants)
	return result, nil
}

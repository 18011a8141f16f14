package testutil

import (
	"context"
	"sync"

	"github.com/maka2016/maka-stats/internal/domain/user"
)

// InMemoryUserStore implements user.Repository over a map keyed by uid.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[int64]*user.User
	err   error
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[int64]*user.User)}
}

func (s *InMemoryUserStore) AddUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UID] = u
}

func (s *InMemoryUserStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryUserStore) GetByIDs(ctx context.Context, tenantID string, uids []int64) (map[int64]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}

	result := make(map[int64]*user.User, len(uids))
	for _, uid := range uids {
		if u, ok := s.users[uid]; ok && u.TenantID == tenantID {
			result[uid] = u
		}
	}
	return result, nil
}

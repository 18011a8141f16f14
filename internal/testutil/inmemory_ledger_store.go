package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/maka2016/maka-stats/internal/domain/ledger"
)

// InMemoryLedgerStore implements ledger.Repository over a slice.
type InMemoryLedgerStore struct {
	mu     sync.RWMutex
	orders []*ledger.Order
	err    error
}

func NewInMemoryLedgerStore() *InMemoryLedgerStore {
	return &InMemoryLedgerStore{}
}

func (s *InMemoryLedgerStore) AddOrder(o *ledger.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
}

func (s *InMemoryLedgerStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryLedgerStore) FindPaidBetween(ctx context.Context, tenantID string, start, end time.Time) ([]*ledger.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}

	var result []*ledger.Order
	for _, o := range s.orders {
		if o.TenantID != tenantID || o.Status != ledger.OrderStatusPaid {
			continue
		}
		if o.PaidAt.Before(start) || o.PaidAt.After(end) {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

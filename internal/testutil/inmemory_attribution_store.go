package testutil

import (
	"context"
	"sync"
)

// InMemoryAttributionStore implements attribution.Repository with one map
// per source. Each source can fail independently.
type InMemoryAttributionStore struct {
	mu           sync.RWMutex
	campaign     map[int64]string
	adConversion map[int64]string
	campaignErr  error
	adConvErr    error
}

func NewInMemoryAttributionStore() *InMemoryAttributionStore {
	return &InMemoryAttributionStore{
		campaign:     make(map[int64]string),
		adConversion: make(map[int64]string),
	}
}

func (s *InMemoryAttributionStore) SetCampaignChannel(uid int64, channel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaign[uid] = channel
}

func (s *InMemoryAttributionStore) SetAdConversionChannel(uid int64, channel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adConversion[uid] = channel
}

func (s *InMemoryAttributionStore) FailCampaignWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaignErr = err
}

func (s *InMemoryAttributionStore) FailAdConversionWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adConvErr = err
}

func (s *InMemoryAttributionStore) FindCampaignChannels(ctx context.Context, tenantID string, uids []int64) (map[int64]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.campaignErr != nil {
		return nil, s.campaignErr
	}
	return lookup(s.campaign, uids), nil
}

func (s *InMemoryAttributionStore) FindAdConversionChannels(ctx context.Context, tenantID string, uids []int64) (map[int64]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.adConvErr != nil {
		return nil, s.adConvErr
	}
	return lookup(s.adConversion, uids), nil
}

func lookup(source map[int64]string, uids []int64) map[int64]string {
	result := make(map[int64]string)
	for _, uid := range uids {
		if channel, ok := source[uid]; ok {
			result[uid] = channel
		}
	}
	return result
}

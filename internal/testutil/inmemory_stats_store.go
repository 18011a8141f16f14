package testutil

import (
	"context"
	"sync"

	"github.com/maka2016/maka-stats/internal/domain/stats"
)

type statScope struct {
	tenantID string
	statDate string
}

// InMemoryStatsStore implements stats.Repository. Rows are held per
// (tenant, date) scope so tests can assert exactly what a run materialized.
type InMemoryStatsStore struct {
	mu           sync.RWMutex
	daily        map[statScope][]*stats.DailyStatRow
	terms        map[statScope]map[stats.TermKind][]*stats.TermStatRow
	cohortWindow map[statScope][]*stats.CohortWindowRow
	err          error
}

func NewInMemoryStatsStore() *InMemoryStatsStore {
	return &InMemoryStatsStore{
		daily:        make(map[statScope][]*stats.DailyStatRow),
		terms:        make(map[statScope]map[stats.TermKind][]*stats.TermStatRow),
		cohortWindow: make(map[statScope][]*stats.CohortWindowRow),
	}
}

func (s *InMemoryStatsStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryStatsStore) UpsertDailyStats(ctx context.Context, rows []*stats.DailyStatRow) (*stats.WriteReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	report := &stats.WriteReport{Batches: 1, Written: len(rows)}
	for _, row := range rows {
		scope := statScope{tenantID: row.TenantID, statDate: row.StatDate}
		existing := s.daily[scope]
		replaced := false
		for i, prev := range existing {
			if prev.Device == row.Device && prev.Channel == row.Channel && prev.Cohort == row.Cohort {
				existing[i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, row)
		}
		s.daily[scope] = existing
	}
	return report, nil
}

func (s *InMemoryStatsStore) ReplaceDailyStats(ctx context.Context, tenantID, statDate string, rows []*stats.DailyStatRow) (*stats.WriteReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	scope := statScope{tenantID: tenantID, statDate: statDate}
	s.daily[scope] = append([]*stats.DailyStatRow(nil), rows...)
	return &stats.WriteReport{Batches: 1, Written: len(rows)}, nil
}

func (s *InMemoryStatsStore) ReplaceTermStats(ctx context.Context, tenantID, statDate string, kind stats.TermKind, rows []*stats.TermStatRow) (*stats.WriteReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	scope := statScope{tenantID: tenantID, statDate: statDate}
	if s.terms[scope] == nil {
		s.terms[scope] = make(map[stats.TermKind][]*stats.TermStatRow)
	}
	s.terms[scope][kind] = append([]*stats.TermStatRow(nil), rows...)
	return &stats.WriteReport{Batches: 1, Written: len(rows)}, nil
}

func (s *InMemoryStatsStore) ReplaceCohortWindowStats(ctx context.Context, tenantID, statDate string, rows []*stats.CohortWindowRow) (*stats.WriteReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	scope := statScope{tenantID: tenantID, statDate: statDate}
	s.cohortWindow[scope] = append([]*stats.CohortWindowRow(nil), rows...)
	return &stats.WriteReport{Batches: 1, Written: len(rows)}, nil
}

func (s *InMemoryStatsStore) DailyRows(tenantID, statDate string) []*stats.DailyStatRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.daily[statScope{tenantID: tenantID, statDate: statDate}]
}

func (s *InMemoryStatsStore) TermRows(tenantID, statDate string, kind stats.TermKind) []*stats.TermStatRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if byKind, ok := s.terms[statScope{tenantID: tenantID, statDate: statDate}]; ok {
		return byKind[kind]
	}
	return nil
}

func (s *InMemoryStatsStore) CohortWindowRows(tenantID, statDate string) []*stats.CohortWindowRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cohortWindow[statScope{tenantID: tenantID, statDate: statDate}]
}

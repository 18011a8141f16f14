package service

import (
	"context"
	"time"

	"github.com/maka2016/maka-stats/internal/domain/events"
	"github.com/maka2016/maka-stats/internal/logger"
)

// IdentityMap maps distinct_id to the uid that eventually authenticated with
// it inside one (tenant, window). Built once per run, read-only afterwards.
type IdentityMap map[string]int64

// EffectiveUID resolves the uid to count an event under. A uid carried on
// the event itself always wins over a stitched one. Returns 0 when the event
// stays anonymous.
func (m IdentityMap) EffectiveUID(rawUID int64, distinctID string) int64 {
	if rawUID > 0 {
		return rawUID
	}
	if uid, ok := m[distinctID]; ok {
		return uid
	}
	return 0
}

type IdentityResolver struct {
	eventRepo events.Repository
	logger    *logger.Logger
}

func NewIdentityResolver(eventRepo events.Repository, logger *logger.Logger) *IdentityResolver {
	return &IdentityResolver{eventRepo: eventRepo, logger: logger}
}

// Resolve builds the identity map for a (tenant, window) from authenticated
// events. The first event returned for a distinct_id wins; the source does
// not guarantee ordering, so collisions between accounts sharing a
// distinct_id resolve non-deterministically and are left that way.
//
// A failed window query degrades to an empty map so the run can continue
// counting already-authenticated events.
func (r *IdentityResolver) Resolve(ctx context.Context, tenantID string, start, end time.Time) IdentityMap {
	result := IdentityMap{}

	evs, err := r.eventRepo.QueryEvents(ctx, &events.QueryParams{
		TenantID:          tenantID,
		StartTime:         start,
		EndTime:           end,
		OnlyAuthenticated: true,
	})
	if err != nil {
		r.logger.Errorw("identity resolution degraded to empty map",
			"tenant_id", tenantID,
			"start", start,
			"end", end,
			"error", err)
		return result
	}

	for _, ev := range evs {
		if ev.DistinctID == "" || ev.UID <= 0 {
			continue
		}
		if _, ok := result[ev.DistinctID]; !ok {
			result[ev.DistinctID] = ev.UID
		}
	}

	r.logger.Debugw("identity map resolved",
		"tenant_id", tenantID,
		"mappings", len(result))
	return result
}

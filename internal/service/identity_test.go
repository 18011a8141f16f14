package service

import (
	"context"
	"testing"
	"time"

	"github.com/maka2016/maka-stats/internal/config"
	"github.com/maka2016/maka-stats/internal/domain/events"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/testutil"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)
	return l
}

func TestIdentityMapEffectiveUID(t *testing.T) {
	m := IdentityMap{"x": 42}

	// A resolved mapping backs an anonymous event.
	assert.Equal(t, int64(42), m.EffectiveUID(0, "x"))

	// A uid on the event always wins over the map.
	assert.Equal(t, int64(7), m.EffectiveUID(7, "x"))

	// Unknown distinct_id stays anonymous.
	assert.Equal(t, int64(0), m.EffectiveUID(0, "unknown"))
}

func TestIdentityResolverFirstSeenWins(t *testing.T) {
	store := testutil.NewInMemoryEventStore()
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	store.BulkInsertEvents([]*events.Event{
		{TenantID: "acme", EventName: types.EventPageView, DistinctID: "a", UID: 7, Timestamp: day.Add(1 * time.Hour)},
		{TenantID: "acme", EventName: types.EventPageView, DistinctID: "a", UID: 99, Timestamp: day.Add(2 * time.Hour)},
		{TenantID: "acme", EventName: types.EventPageView, DistinctID: "b", UID: 9, Timestamp: day.Add(3 * time.Hour)},
		{TenantID: "acme", EventName: types.EventPageView, DistinctID: "anon", UID: 0, Timestamp: day.Add(4 * time.Hour)},
		{TenantID: "other", EventName: types.EventPageView, DistinctID: "c", UID: 5, Timestamp: day.Add(5 * time.Hour)},
	})

	resolver := NewIdentityResolver(store, newTestLogger(t))
	start, end := types.DayWindow(day)
	m := resolver.Resolve(context.Background(), "acme", start, end)

	assert.Equal(t, int64(7), m["a"])
	assert.Equal(t, int64(9), m["b"])
	assert.NotContains(t, m, "anon")
	assert.NotContains(t, m, "c")
}

func TestIdentityResolverDegradesToEmptyMap(t *testing.T) {
	store := testutil.NewInMemoryEventStore()
	store.FailWith(ierr.NewError("event log down").Mark(ierr.ErrSourceUnavailable))

	resolver := NewIdentityResolver(store, newTestLogger(t))
	start, end := types.DayWindow(time.Now().UTC())
	m := resolver.Resolve(context.Background(), "acme", start, end)

	assert.Empty(t, m)
}

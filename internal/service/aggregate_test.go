package service

import (
	"testing"

	"github.com/maka2016/maka-stats/internal/domain/stats"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUniverse(t *testing.T) {
	a := StatsMap{}
	a.Add(DimensionKey{Device: types.DeviceWeb, Channel: "organic", Cohort: types.CohortNew}, 1)
	b := StatsMap{}
	b.Add(DimensionKey{Device: types.DeviceIOS, Channel: "douyin", Cohort: types.CohortOld}, 2)

	u := BuildUniverse(a, b)

	assert.ElementsMatch(t, []types.DeviceType{types.DeviceIOS, types.DeviceWeb}, u.Devices)
	assert.ElementsMatch(t, []string{"douyin", "organic"}, u.Channels)
	assert.ElementsMatch(t, []types.LifecycleCohort{types.CohortNew, types.CohortOld}, u.Cohorts)
}

// A dimension value seen by a single collector still yields a row, with
// zeros for every other metric.
func TestAggregateDailyCrossProduct(t *testing.T) {
	viewKey := DimensionKey{Device: types.DeviceWeb, Channel: "organic", Cohort: types.CohortNew}
	orderKey := DimensionKey{Device: types.DeviceIOS, Channel: "organic", Cohort: types.CohortNew}

	views := StatsMap{}
	views.Add(viewKey, 1)
	orders := StatsMap{}
	orders.AddOrder(orderKey, 2, 12345)

	rows := AggregateDaily("acme", "2025-01-10", map[string]StatsMap{
		MetricView:  views,
		MetricOrder: orders,
	})

	require.Len(t, rows, 2)
	byDevice := map[types.DeviceType]*stats.DailyStatRow{}
	for _, row := range rows {
		byDevice[row.Device] = row
	}

	webRow := byDevice[types.DeviceWeb]
	require.NotNil(t, webRow)
	assert.Equal(t, int64(1), webRow.ViewPV)
	assert.Equal(t, int64(0), webRow.OrderCount)

	iosRow := byDevice[types.DeviceIOS]
	require.NotNil(t, iosRow)
	assert.Equal(t, int64(0), iosRow.ViewPV)
	assert.Equal(t, int64(1), iosRow.OrderCount)
	assert.Equal(t, int64(12345), iosRow.GMVCents)
}

func TestAggregateDailyOmitsAllZeroRows(t *testing.T) {
	views := StatsMap{}
	views.Add(DimensionKey{Device: types.DeviceWeb, Channel: "organic", Cohort: types.CohortNew}, 1)
	views.Add(DimensionKey{Device: types.DeviceIOS, Channel: "douyin", Cohort: types.CohortOld}, 2)

	rows := AggregateDaily("acme", "2025-01-10", map[string]StatsMap{MetricView: views})

	// The cross product spans 2x2x2 combinations but only the two observed
	// cells carry data.
	assert.Len(t, rows, 2)
}

func TestAggregateTermsSkipsEmptyTerm(t *testing.T) {
	views := StatsMap{}
	views.Add(DimensionKey{Device: types.DeviceWeb, Term: "wedding"}, 1)
	views.Add(DimensionKey{Device: types.DeviceWeb, Term: ""}, 2)

	rows := AggregateTerms("acme", "2025-01-10", stats.TermKindSearch, map[string]StatsMap{MetricView: views})

	require.Len(t, rows, 1)
	assert.Equal(t, "wedding", rows[0].Term)
	assert.Equal(t, stats.TermKindSearch, rows[0].TermKind)
	assert.Equal(t, int64(1), rows[0].ViewPV)
}

func TestAggregateCohortWindows(t *testing.T) {
	active := StatsMap{}
	active.Add(DimensionKey{Device: types.DeviceWeb, WindowDays: 1}, 1)
	active.Add(DimensionKey{Device: types.DeviceWeb, WindowDays: 3}, 1)
	orders := StatsMap{}
	orders.AddOrder(DimensionKey{Device: types.DeviceWeb, WindowDays: 3}, 1, 9900)

	rows := AggregateCohortWindows("acme", "2025-01-10", map[string]StatsMap{
		MetricActive: active,
		MetricOrder:  orders,
	})

	require.Len(t, rows, 2)
	byWindow := map[int]*stats.CohortWindowRow{}
	for _, row := range rows {
		byWindow[row.WindowDays] = row
	}

	assert.Equal(t, int64(1), byWindow[1].ActivePV)
	assert.Equal(t, int64(0), byWindow[1].OrderCount)
	assert.Equal(t, int64(1), byWindow[3].OrderCount)
	assert.Equal(t, int64(9900), byWindow[3].GMVCents)
}

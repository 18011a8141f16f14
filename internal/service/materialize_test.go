package service

import (
	"testing"

	"github.com/maka2016/maka-stats/internal/domain/stats"
	"github.com/maka2016/maka-stats/internal/testutil"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsToMajor(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{12345, "123.45"},
		{100, "1"},
		{1, "0.01"},
		{0, "0"},
		{99, "0.99"},
		{100000001, "1000000.01"},
	}

	for _, tt := range tests {
		assert.True(t, centsToMajor(tt.cents).Equal(decimal.RequireFromString(tt.expected)),
			"%d cents should be %s, got %s", tt.cents, tt.expected, centsToMajor(tt.cents))
	}
}

func TestMaterializerConvertsExactlyOnce(t *testing.T) {
	store := testutil.NewInMemoryStatsStore()
	m := NewMaterializer(store, newTestLogger(t))

	rows := []*stats.DailyStatRow{{
		TenantID: "acme", StatDate: "2025-01-10",
		Device: types.DeviceIOS, Channel: "organic", Cohort: types.CohortNew,
		OrderCount: 1, GMVCents: 12345,
	}}

	_, err := m.WriteDaily(testutil.SetupContext(), "acme", "2025-01-10", rows)
	require.NoError(t, err)

	stored := store.DailyRows("acme", "2025-01-10")
	require.Len(t, stored, 1)
	assert.True(t, stored[0].GMV.Equal(decimal.RequireFromString("123.45")))
}

func TestUpsertDailyPatchesWithoutClearingScope(t *testing.T) {
	store := testutil.NewInMemoryStatsStore()
	m := NewMaterializer(store, newTestLogger(t))

	seed := []*stats.DailyStatRow{
		{
			TenantID: "acme", StatDate: "2025-01-10",
			Device: types.DeviceWeb, Channel: "organic", Cohort: types.CohortOld,
			ViewPV: 4, ViewUV: 2,
		},
		{
			TenantID: "acme", StatDate: "2025-01-10",
			Device: types.DeviceIOS, Channel: "organic", Cohort: types.CohortNew,
			OrderCount: 1, GMVCents: 500,
		},
	}
	_, err := m.WriteDaily(testutil.SetupContext(), "acme", "2025-01-10", seed)
	require.NoError(t, err)

	patch := []*stats.DailyStatRow{{
		TenantID: "acme", StatDate: "2025-01-10",
		Device: types.DeviceIOS, Channel: "organic", Cohort: types.CohortNew,
		OrderCount: 2, GMVCents: 12345,
	}}
	_, err = m.UpsertDaily(testutil.SetupContext(), patch)
	require.NoError(t, err)

	stored := store.DailyRows("acme", "2025-01-10")
	require.Len(t, stored, 2)
	for _, row := range stored {
		switch row.Device {
		case types.DeviceIOS:
			assert.Equal(t, int64(2), row.OrderCount)
			assert.True(t, row.GMV.Equal(decimal.RequireFromString("123.45")))
		case types.DeviceWeb:
			// untouched by the patch
			assert.Equal(t, int64(4), row.ViewPV)
		}
	}
}

func TestWriteReportMerge(t *testing.T) {
	report := &stats.WriteReport{Written: 500, Batches: 1}
	report.Merge(&stats.WriteReport{Written: 200, Failed: 300, Batches: 1, FailedBatches: 1})
	report.Merge(nil)

	assert.Equal(t, 700, report.Written)
	assert.Equal(t, 300, report.Failed)
	assert.Equal(t, 2, report.Batches)
	assert.Equal(t, 1, report.FailedBatches)
}

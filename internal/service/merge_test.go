package service

import (
	"testing"

	"github.com/maka2016/maka-stats/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMergeStats(t *testing.T) {
	key := DimensionKey{Device: types.DeviceWeb, Channel: "organic", Cohort: types.CohortNew}

	a := StatsMap{}
	a.Add(key, 1)
	a.Add(key, 2)
	a.Add(key, 2)

	b := StatsMap{}
	b.Add(key, 2)
	b.Add(key, 3)

	merged := MergeStats(a, b)
	stat := merged[key]

	// PV sums across sources, UV unions.
	assert.Equal(t, int64(5), stat.PV)
	assert.Equal(t, int64(3), stat.UVCount())
}

func TestMergeStatsUVBounds(t *testing.T) {
	key := DimensionKey{Device: types.DeviceIOS}

	a := StatsMap{}
	for uid := int64(1); uid <= 10; uid++ {
		a.Add(key, uid)
	}
	b := StatsMap{}
	for uid := int64(6); uid <= 15; uid++ {
		b.Add(key, uid)
	}

	merged := MergeStats(a, b)
	uv := merged[key].UVCount()

	assert.LessOrEqual(t, uv, a[key].UVCount()+b[key].UVCount())
	assert.GreaterOrEqual(t, uv, a[key].UVCount())
	assert.GreaterOrEqual(t, uv, b[key].UVCount())
	assert.Equal(t, int64(15), uv)
}

func TestMergeStatsDisjointKeys(t *testing.T) {
	keyA := DimensionKey{Device: types.DeviceWeb}
	keyB := DimensionKey{Device: types.DeviceAndroid}

	a := StatsMap{}
	a.Add(keyA, 1)
	b := StatsMap{}
	b.AddOrder(keyB, 2, 12345)

	merged := MergeStats(a, b)

	assert.Len(t, merged, 2)
	assert.Equal(t, int64(1), merged[keyA].PV)
	assert.Equal(t, int64(1), merged[keyB].OrderCount)
	assert.Equal(t, int64(12345), merged[keyB].AmountCents)
}

func TestMergeStatsDoesNotMutateInputs(t *testing.T) {
	key := DimensionKey{Device: types.DeviceWeb}
	a := StatsMap{}
	a.Add(key, 1)
	b := StatsMap{}
	b.Add(key, 2)

	_ = MergeStats(a, b)

	assert.Equal(t, int64(1), a[key].PV)
	assert.Equal(t, int64(1), a[key].UVCount())
	assert.Equal(t, int64(1), b[key].PV)
}

func TestStatsMapAnonymousPVOnly(t *testing.T) {
	key := DimensionKey{Device: types.DeviceWap}
	m := StatsMap{}
	m.Add(key, 0)
	m.Add(key, 0)
	m.Add(key, 5)

	assert.Equal(t, int64(3), m[key].PV)
	assert.Equal(t, int64(1), m[key].UVCount())
}

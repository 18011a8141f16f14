package service

import (
	"context"
	"sync"
	"time"

	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// DimensionKey is the aggregation key of one statistics cell. Axes unused by
// a job stay at their zero value so keys from different jobs never mix.
type DimensionKey struct {
	Device     types.DeviceType
	Channel    string
	Cohort     types.LifecycleCohort
	Term       string
	WindowDays int
}

// MetricStat is the per-dimension accumulator of one metric. UV is a set so
// duplicate event delivery cannot inflate unique counts.
type MetricStat struct {
	PV          int64
	UV          map[int64]struct{}
	OrderCount  int64
	AmountCents int64
}

func newMetricStat() *MetricStat {
	return &MetricStat{UV: make(map[int64]struct{})}
}

func (s *MetricStat) addUser(uid int64) {
	if uid > 0 {
		s.UV[uid] = struct{}{}
	}
}

func (s *MetricStat) UVCount() int64 {
	return int64(len(s.UV))
}

// StatsMap is one collector's output: per-dimension PV/UV (and for order
// collectors, count and amount).
type StatsMap map[DimensionKey]*MetricStat

func (m StatsMap) get(key DimensionKey) *MetricStat {
	stat, ok := m[key]
	if !ok {
		stat = newMetricStat()
		m[key] = stat
	}
	return stat
}

// Add counts one event occurrence under key. Anonymous occurrences (uid 0)
// raise PV but never enter the UV set.
func (m StatsMap) Add(key DimensionKey, uid int64) {
	stat := m.get(key)
	stat.PV++
	stat.addUser(uid)
}

// AddOrder counts one paid order under key.
func (m StatsMap) AddOrder(key DimensionKey, uid int64, amountCents int64) {
	stat := m.get(key)
	stat.OrderCount++
	stat.AmountCents += amountCents
	stat.addUser(uid)
}

// Sample is one normalized source record, already identity-stitched. All
// collectors reduce their sources to this shape so dimension resolution and
// folding stay metric-agnostic.
type Sample struct {
	UID         int64
	DeviceHint  string
	Term        string
	Timestamp   time.Time
	AmountCents int64
	IsOrder     bool
}

// Collector names one metric family and knows how to fetch its samples.
type Collector struct {
	Name  string
	Fetch func(ctx context.Context) ([]Sample, error)
}

// FetchAll runs every collector's fetch concurrently. Each collector is its
// own failure domain: a failed fetch is logged and contributes an empty
// sample set, the siblings are unaffected.
func FetchAll(ctx context.Context, collectors []Collector, logger *logger.Logger) map[string][]Sample {
	results := make(map[string][]Sample, len(collectors))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(len(collectors))
	for _, c := range collectors {
		c := c
		p.Go(func() {
			samples, err := c.Fetch(ctx)
			if err != nil {
				logger.Errorw("collector source failed, continuing with empty output",
					"collector", c.Name,
					"error", err)
				samples = nil
			}
			mu.Lock()
			results[c.Name] = samples
			mu.Unlock()
		})
	}
	p.Wait()

	return results
}

// Dimensioner maps a sample to its dimension key. Returning false drops the
// sample (excluded test account, outside a cohort window).
type Dimensioner func(s Sample) (DimensionKey, bool)

// Fold reduces a sample slice into a StatsMap using dim for key resolution.
func Fold(samples []Sample, dim Dimensioner) StatsMap {
	out := StatsMap{}
	for _, s := range samples {
		key, ok := dim(s)
		if !ok {
			continue
		}
		if s.IsOrder {
			out.AddOrder(key, s.UID, s.AmountCents)
		} else {
			out.Add(key, s.UID)
		}
	}
	return out
}

// UIDUniverse returns the distinct positive uids observed across all sample
// sets. This is the candidate set for the bulk user and channel lookups.
func UIDUniverse(sampleSets map[string][]Sample) []int64 {
	seen := map[int64]struct{}{}
	for _, samples := range sampleSets {
		for _, s := range samples {
			if s.UID > 0 {
				seen[s.UID] = struct{}{}
			}
		}
	}
	uids := make([]int64, 0, len(seen))
	for uid := range seen {
		uids = append(uids, uid)
	}
	return uids
}

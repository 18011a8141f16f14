package service

import (
	"sort"

	"github.com/maka2016/maka-stats/internal/domain/stats"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/samber/lo"
)

// Metric family names shared by the jobs and their tests.
const (
	MetricView      = "view"
	MetricClick     = "click"
	MetricIntercept = "intercept"
	MetricCreate    = "create"
	MetricSuccess   = "success"
	MetricOrder     = "order"
	MetricActive    = "active"
)

// Universe is the set of dimension values observed by any collector. The
// aggregators iterate its cross product so a value seen by only one
// collector still yields a full row with zeros elsewhere.
type Universe struct {
	Devices  []types.DeviceType
	Channels []string
	Cohorts  []types.LifecycleCohort
	Terms    []string
	Windows  []int
}

// BuildUniverse scans every collector output once and returns the sorted
// distinct values per axis. Axes a job does not use collapse to their single
// zero value, which keeps the cross product tight.
func BuildUniverse(maps ...StatsMap) *Universe {
	devices := map[types.DeviceType]struct{}{}
	channels := map[string]struct{}{}
	cohorts := map[types.LifecycleCohort]struct{}{}
	terms := map[string]struct{}{}
	windows := map[int]struct{}{}

	for _, m := range maps {
		for key := range m {
			devices[key.Device] = struct{}{}
			channels[key.Channel] = struct{}{}
			cohorts[key.Cohort] = struct{}{}
			terms[key.Term] = struct{}{}
			windows[key.WindowDays] = struct{}{}
		}
	}

	u := &Universe{
		Devices:  lo.Keys(devices),
		Channels: lo.Keys(channels),
		Cohorts:  lo.Keys(cohorts),
		Terms:    lo.Keys(terms),
		Windows:  lo.Keys(windows),
	}
	sort.Slice(u.Devices, func(i, j int) bool { return u.Devices[i] < u.Devices[j] })
	sort.Strings(u.Channels)
	sort.Slice(u.Cohorts, func(i, j int) bool { return u.Cohorts[i] < u.Cohorts[j] })
	sort.Strings(u.Terms)
	sort.Ints(u.Windows)
	return u
}

func statAt(metrics map[string]StatsMap, name string, key DimensionKey) *MetricStat {
	m, ok := metrics[name]
	if !ok {
		return nil
	}
	return m[key]
}

func pvUV(metrics map[string]StatsMap, name string, key DimensionKey) (int64, int64) {
	stat := statAt(metrics, name, key)
	if stat == nil {
		return 0, 0
	}
	return stat.PV, stat.UVCount()
}

func orderTotals(metrics map[string]StatsMap, key DimensionKey) (int64, int64) {
	stat := statAt(metrics, MetricOrder, key)
	if stat == nil {
		return 0, 0
	}
	return stat.OrderCount, stat.AmountCents
}

// AggregateDaily folds the daily job's collector outputs into output rows
// over the (device, channel, cohort) cross product. All-zero cells are
// omitted. GMV stays in minor units here; conversion happens at
// materialization.
func AggregateDaily(tenantID, statDate string, metrics map[string]StatsMap) []*stats.DailyStatRow {
	universe := BuildUniverse(lo.Values(metrics)...)

	var rows []*stats.DailyStatRow
	for _, device := range universe.Devices {
		for _, channel := range universe.Channels {
			for _, cohort := range universe.Cohorts {
				key := DimensionKey{Device: device, Channel: channel, Cohort: cohort}
				row := &stats.DailyStatRow{
					TenantID: tenantID,
					StatDate: statDate,
					Device:   device,
					Channel:  channel,
					Cohort:   cohort,
				}
				row.ViewPV, row.ViewUV = pvUV(metrics, MetricView, key)
				row.ClickPV, row.ClickUV = pvUV(metrics, MetricClick, key)
				row.InterceptPV, row.InterceptUV = pvUV(metrics, MetricIntercept, key)
				row.CreatePV, row.CreateUV = pvUV(metrics, MetricCreate, key)
				row.SuccessPV, row.SuccessUV = pvUV(metrics, MetricSuccess, key)
				row.OrderCount, row.GMVCents = orderTotals(metrics, key)
				if row.Zero() {
					continue
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// AggregateTerms folds term-dimensioned collector outputs over the
// (device, term) cross product. The empty term never yields rows; it only
// marks samples that carried no usable term.
func AggregateTerms(tenantID, statDate string, kind stats.TermKind, metrics map[string]StatsMap) []*stats.TermStatRow {
	universe := BuildUniverse(lo.Values(metrics)...)

	var rows []*stats.TermStatRow
	for _, device := range universe.Devices {
		for _, term := range universe.Terms {
			if term == "" {
				continue
			}
			key := DimensionKey{Device: device, Term: term}
			row := &stats.TermStatRow{
				TenantID: tenantID,
				StatDate: statDate,
				TermKind: kind,
				Term:     term,
				Device:   device,
			}
			row.ViewPV, row.ViewUV = pvUV(metrics, MetricView, key)
			row.ClickPV, row.ClickUV = pvUV(metrics, MetricClick, key)
			row.CreatePV, row.CreateUV = pvUV(metrics, MetricCreate, key)
			row.SuccessPV, row.SuccessUV = pvUV(metrics, MetricSuccess, key)
			row.OrderCount, row.GMVCents = orderTotals(metrics, key)
			if row.Zero() {
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// AggregateCohortWindows folds window-dimensioned collector outputs over the
// (device, window_days) cross product.
func AggregateCohortWindows(tenantID, statDate string, metrics map[string]StatsMap) []*stats.CohortWindowRow {
	universe := BuildUniverse(lo.Values(metrics)...)

	var rows []*stats.CohortWindowRow
	for _, device := range universe.Devices {
		for _, windowDays := range universe.Windows {
			if windowDays == 0 {
				continue
			}
			key := DimensionKey{Device: device, WindowDays: windowDays}
			row := &stats.CohortWindowRow{
				TenantID:   tenantID,
				StatDate:   statDate,
				WindowDays: windowDays,
				Device:     device,
			}
			row.ActivePV, row.ActiveUV = pvUV(metrics, MetricActive, key)
			row.CreatePV, row.CreateUV = pvUV(metrics, MetricCreate, key)
			row.OrderCount, row.GMVCents = orderTotals(metrics, key)
			if row.Zero() {
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows
}

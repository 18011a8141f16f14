package service

import (
	"context"

	"github.com/maka2016/maka-stats/internal/domain/events"
	"github.com/maka2016/maka-stats/internal/types"
)

// Internal names for the two creation evidence sources. They are folded
// separately and merged into MetricCreate so a user seen by both sources
// still counts once in UV.
const (
	metricCreateEvent = "create_event"
	metricCreateWork  = "create_work"
)

// eventFetcher builds a sample fetch over the event log. The term function
// picks which event field becomes the term axis; nil leaves terms empty.
func (r *JobRunner) eventFetcher(run *runContext, params events.QueryParams, term func(*events.Event) string) func(ctx context.Context) ([]Sample, error) {
	params.TenantID = run.tenantID
	params.StartTime = run.start
	params.EndTime = run.end

	return func(ctx context.Context) ([]Sample, error) {
		evs, err := r.eventRepo.QueryEvents(ctx, &params)
		if err != nil {
			return nil, err
		}
		samples := make([]Sample, 0, len(evs))
		for _, ev := range evs {
			s := Sample{
				UID:        run.idMap.EffectiveUID(ev.UID, ev.DistinctID),
				DeviceHint: ev.Platform,
				Timestamp:  ev.Timestamp,
			}
			if term != nil {
				s.Term = term(ev)
			}
			samples = append(samples, s)
		}
		return samples, nil
	}
}

// workFetcher reads the entity store's creation records, the second evidence
// source for creations. Works carry a uid directly, no stitching needed.
func (r *JobRunner) workFetcher(run *runContext, termFromTemplate bool) func(ctx context.Context) ([]Sample, error) {
	return func(ctx context.Context) ([]Sample, error) {
		works, err := r.workRepo.FindCreatedBetween(ctx, run.tenantID, run.start, run.end)
		if err != nil {
			return nil, err
		}
		samples := make([]Sample, 0, len(works))
		for _, w := range works {
			s := Sample{
				UID:        w.UID,
				DeviceHint: w.Platform,
				Timestamp:  w.CreatedAt,
			}
			if termFromTemplate {
				s.Term = w.TemplateID
			}
			samples = append(samples, s)
		}
		return samples, nil
	}
}

// orderFetcher reads paid orders from the ledger. Amounts stay in minor
// units until materialization.
func (r *JobRunner) orderFetcher(run *runContext, termFromTemplate bool) func(ctx context.Context) ([]Sample, error) {
	return func(ctx context.Context) ([]Sample, error) {
		orders, err := r.ledgerRepo.FindPaidBetween(ctx, run.tenantID, run.start, run.end)
		if err != nil {
			return nil, err
		}
		samples := make([]Sample, 0, len(orders))
		for _, o := range orders {
			s := Sample{
				UID:         o.UID,
				DeviceHint:  o.Platform,
				Timestamp:   o.PaidAt,
				AmountCents: o.AmountCents,
				IsOrder:     true,
			}
			if termFromTemplate {
				s.Term = o.TemplateID
			}
			samples = append(samples, s)
		}
		return samples, nil
	}
}

func (r *JobRunner) dailyCollectors(run *runContext) []Collector {
	return []Collector{
		{Name: MetricView, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventPageView},
		}, nil)},
		{Name: MetricClick, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames:  []string{types.EventClick},
			ObjectTypes: []string{types.ObjectTypeTemplateItem, types.ObjectTypeLegacyTemplateItem},
		}, nil)},
		{Name: MetricIntercept, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventPageView},
			PageTypes:  []string{types.PageTypePaywall},
		}, nil)},
		{Name: metricCreateEvent, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventCreate},
		}, nil)},
		{Name: metricCreateWork, Fetch: r.workFetcher(run, false)},
		{Name: MetricSuccess, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventSuccess},
		}, nil)},
		{Name: MetricOrder, Fetch: r.orderFetcher(run, false)},
	}
}

func (r *JobRunner) searchTermCollectors(run *runContext) []Collector {
	termOf := func(ev *events.Event) string { return ev.Term }
	return []Collector{
		{Name: MetricView, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventSearch},
		}, termOf)},
		{Name: MetricClick, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames:  []string{types.EventClick},
			ObjectTypes: []string{types.ObjectTypeTemplateItem, types.ObjectTypeLegacyTemplateItem},
		}, termOf)},
	}
}

func (r *JobRunner) templateTermCollectors(run *runContext) []Collector {
	templateOf := func(ev *events.Event) string { return ev.ObjectID }
	return []Collector{
		{Name: MetricView, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames:  []string{types.EventPageView},
			ObjectTypes: []string{types.ObjectTypeTemplateItem, types.ObjectTypeLegacyTemplateItem},
		}, templateOf)},
		{Name: MetricClick, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames:  []string{types.EventClick},
			ObjectTypes: []string{types.ObjectTypeTemplateItem, types.ObjectTypeLegacyTemplateItem},
		}, templateOf)},
		{Name: metricCreateEvent, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventCreate},
		}, templateOf)},
		{Name: metricCreateWork, Fetch: r.workFetcher(run, true)},
		{Name: MetricSuccess, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventSuccess},
		}, templateOf)},
		{Name: MetricOrder, Fetch: r.orderFetcher(run, true)},
	}
}

func (r *JobRunner) cohortWindowCollectors(run *runContext) []Collector {
	return []Collector{
		{Name: MetricActive, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventPageView},
		}, nil)},
		{Name: metricCreateEvent, Fetch: r.eventFetcher(run, events.QueryParams{
			EventNames: []string{types.EventCreate},
		}, nil)},
		{Name: metricCreateWork, Fetch: r.workFetcher(run, false)},
		{Name: MetricOrder, Fetch: r.orderFetcher(run, false)},
	}
}

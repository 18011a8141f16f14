package service

import (
	"context"
	"time"

	"github.com/maka2016/maka-stats/internal/config"
	"github.com/maka2016/maka-stats/internal/domain/attribution"
	"github.com/maka2016/maka-stats/internal/domain/events"
	"github.com/maka2016/maka-stats/internal/domain/ledger"
	"github.com/maka2016/maka-stats/internal/domain/stats"
	"github.com/maka2016/maka-stats/internal/domain/user"
	"github.com/maka2016/maka-stats/internal/domain/work"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/types"
)

// JobRunnerParams collects every dependency of the statistics jobs.
type JobRunnerParams struct {
	Config          *config.Configuration
	Logger          *logger.Logger
	EventRepo       events.Repository
	UserRepo        user.Repository
	AttributionRepo attribution.Repository
	WorkRepo        work.Repository
	LedgerRepo      ledger.Repository
	StatsRepo       stats.Repository
}

// JobRunner executes the statistics jobs for one (tenant, date) at a time.
// Concurrent runs for the same pair are unsafe under the replace strategy;
// serializing them is the caller's responsibility.
type JobRunner struct {
	cfg          *config.Configuration
	logger       *logger.Logger
	eventRepo    events.Repository
	userRepo     user.Repository
	workRepo     work.Repository
	ledgerRepo   ledger.Repository
	identity     *IdentityResolver
	channels     *ChannelAttributor
	lifecycle    *LifecycleClassifier
	materializer *Materializer
	excluded     map[int64]struct{}
}

func NewJobRunner(params JobRunnerParams) *JobRunner {
	excluded := make(map[int64]struct{}, len(params.Config.Stats.ExcludedUIDs))
	for _, uid := range params.Config.Stats.ExcludedUIDs {
		excluded[uid] = struct{}{}
	}
	return &JobRunner{
		cfg:          params.Config,
		logger:       params.Logger,
		eventRepo:    params.EventRepo,
		userRepo:     params.UserRepo,
		workRepo:     params.WorkRepo,
		ledgerRepo:   params.LedgerRepo,
		identity:     NewIdentityResolver(params.EventRepo, params.Logger),
		channels:     NewChannelAttributor(params.AttributionRepo, params.Logger),
		lifecycle:    NewLifecycleClassifier(params.Config.Stats.Buckets),
		materializer: NewMaterializer(params.StatsRepo, params.Logger),
		excluded:     excluded,
	}
}

// runContext is the per-(tenant, date) state shared by the job kinds after
// the resolution phase: identity map, sample sets and the bulk lookups over
// the observed uid universe.
type runContext struct {
	tenantID   string
	date       time.Time
	statDate   string
	start, end time.Time

	idMap      IdentityMap
	sampleSets map[string][]Sample
	users      map[int64]*user.User
	regDates   map[int64]time.Time
	channelByU map[int64]string
}

// RunAll executes the daily, term and cohort-window jobs for one
// (tenant, date). Jobs fail independently; the returned error summarizes
// which of them did.
func (r *JobRunner) RunAll(ctx context.Context, tenantID string, date time.Time) error {
	var failed []string

	if err := r.RunDaily(ctx, tenantID, date); err != nil {
		r.logger.Errorw("daily job failed", "tenant_id", tenantID, "date", types.FormatDate(date), "error", err)
		failed = append(failed, "daily")
	}
	if err := r.RunTerms(ctx, tenantID, date); err != nil {
		r.logger.Errorw("term job failed", "tenant_id", tenantID, "date", types.FormatDate(date), "error", err)
		failed = append(failed, "terms")
	}
	if err := r.RunCohortWindows(ctx, tenantID, date); err != nil {
		r.logger.Errorw("cohort window job failed", "tenant_id", tenantID, "date", types.FormatDate(date), "error", err)
		failed = append(failed, "cohort_windows")
	}

	if len(failed) > 0 {
		return ierr.NewError("statistics run partially failed").
			WithHint("Rerunning the same tenant and date is safe").
			WithReportableDetails(map[string]interface{}{
				"tenant_id":   tenantID,
				"date":        types.FormatDate(date),
				"failed_jobs": failed,
			}).
			Mark(ierr.ErrSystem)
	}
	return nil
}

// RunDaily computes the (device, channel, cohort) dimensioned daily table.
func (r *JobRunner) RunDaily(ctx context.Context, tenantID string, date time.Time) error {
	run, err := r.prepare(ctx, tenantID, date, r.dailyCollectors)
	if err != nil {
		return err
	}

	dim := func(s Sample) (DimensionKey, bool) {
		if r.isExcluded(s.UID) {
			return DimensionKey{}, false
		}
		return DimensionKey{
			Device:  r.deviceFor(run, s),
			Channel: r.channelFor(run, s.UID),
			Cohort:  r.lifecycle.Classify(s.UID, run.regDates, run.date),
		}, true
	}

	metrics := map[string]StatsMap{
		MetricView:      Fold(run.sampleSets[MetricView], dim),
		MetricClick:     Fold(run.sampleSets[MetricClick], dim),
		MetricIntercept: Fold(run.sampleSets[MetricIntercept], dim),
		MetricCreate: MergeStats(
			Fold(run.sampleSets[metricCreateEvent], dim),
			Fold(run.sampleSets[metricCreateWork], dim),
		),
		MetricSuccess: Fold(run.sampleSets[MetricSuccess], dim),
		MetricOrder:   Fold(run.sampleSets[MetricOrder], dim),
	}

	rows := AggregateDaily(tenantID, run.statDate, metrics)
	_, err = r.materializer.WriteDaily(ctx, tenantID, run.statDate, rows)
	return err
}

// RunTerms computes both term tables: search keywords and template ids.
func (r *JobRunner) RunTerms(ctx context.Context, tenantID string, date time.Time) error {
	if err := r.runSearchTerms(ctx, tenantID, date); err != nil {
		return err
	}
	return r.runTemplateTerms(ctx, tenantID, date)
}

func (r *JobRunner) runSearchTerms(ctx context.Context, tenantID string, date time.Time) error {
	run, err := r.prepare(ctx, tenantID, date, r.searchTermCollectors)
	if err != nil {
		return err
	}

	dim := r.termDimensioner(run)
	metrics := map[string]StatsMap{
		MetricView:  Fold(run.sampleSets[MetricView], dim),
		MetricClick: Fold(run.sampleSets[MetricClick], dim),
	}

	rows := AggregateTerms(tenantID, run.statDate, stats.TermKindSearch, metrics)
	_, err = r.materializer.WriteTerms(ctx, tenantID, run.statDate, stats.TermKindSearch, rows)
	return err
}

func (r *JobRunner) runTemplateTerms(ctx context.Context, tenantID string, date time.Time) error {
	run, err := r.prepare(ctx, tenantID, date, r.templateTermCollectors)
	if err != nil {
		return err
	}

	dim := r.termDimensioner(run)
	metrics := map[string]StatsMap{
		MetricView:  Fold(run.sampleSets[MetricView], dim),
		MetricClick: Fold(run.sampleSets[MetricClick], dim),
		MetricCreate: MergeStats(
			Fold(run.sampleSets[metricCreateEvent], dim),
			Fold(run.sampleSets[metricCreateWork], dim),
		),
		MetricSuccess: Fold(run.sampleSets[MetricSuccess], dim),
		MetricOrder:   Fold(run.sampleSets[MetricOrder], dim),
	}

	rows := AggregateTerms(tenantID, run.statDate, stats.TermKindTemplate, metrics)
	_, err = r.materializer.WriteTerms(ctx, tenantID, run.statDate, stats.TermKindTemplate, rows)
	return err
}

// RunCohortWindows computes new-user activity inside the configured
// registration-anchored windows. Every user carries a personal absolute
// window; the processed calendar date only scopes which behavior is read.
func (r *JobRunner) RunCohortWindows(ctx context.Context, tenantID string, date time.Time) error {
	run, err := r.prepare(ctx, tenantID, date, r.cohortWindowCollectors)
	if err != nil {
		return err
	}

	metrics := map[string]StatsMap{
		MetricActive: StatsMap{},
		MetricCreate: StatsMap{},
		MetricOrder:  StatsMap{},
	}

	for _, windowDays := range r.cfg.Stats.CohortWindows {
		dim := r.windowDimensioner(run, windowDays)
		mergeInto(metrics[MetricActive], Fold(run.sampleSets[MetricActive], dim))
		mergeInto(metrics[MetricCreate], MergeStats(
			Fold(run.sampleSets[metricCreateEvent], dim),
			Fold(run.sampleSets[metricCreateWork], dim),
		))
		mergeInto(metrics[MetricOrder], Fold(run.sampleSets[MetricOrder], dim))
	}

	rows := AggregateCohortWindows(tenantID, run.statDate, metrics)
	_, err = r.materializer.WriteCohortWindows(ctx, tenantID, run.statDate, rows)
	return err
}

// prepare runs the shared resolution phase: window bounds, identity map,
// concurrent sample fetches and the bulk uid lookups. Identity and lookups
// degrade rather than fail; only structural errors abort the run.
func (r *JobRunner) prepare(ctx context.Context, tenantID string, date time.Time, build func(*runContext) []Collector) (*runContext, error) {
	if tenantID == "" {
		return nil, ierr.NewError("tenant is required").
			Mark(ierr.ErrValidation)
	}

	run := &runContext{
		tenantID: tenantID,
		date:     types.StartOfDay(date),
		statDate: types.FormatDate(date),
	}
	run.start, run.end = types.DayWindow(date)

	run.idMap = r.identity.Resolve(ctx, tenantID, run.start, run.end)
	run.sampleSets = FetchAll(ctx, build(run), r.logger)

	uids := UIDUniverse(run.sampleSets)

	users, err := r.userRepo.GetByIDs(ctx, tenantID, uids)
	if err != nil {
		r.logger.Errorw("user lookup degraded to empty map",
			"tenant_id", tenantID,
			"uid_count", len(uids),
			"error", err)
		users = map[int64]*user.User{}
	}
	run.users = users
	run.regDates = make(map[int64]time.Time, len(users))
	for uid, u := range users {
		run.regDates[uid] = u.RegisteredAt
	}

	run.channelByU = r.channels.ResolveChannels(ctx, tenantID, uids)
	return run, nil
}

func (r *JobRunner) isExcluded(uid int64) bool {
	_, ok := r.excluded[uid]
	return ok
}

// deviceFor prefers the registration platform so a registered user's device
// stays stable across the run even when raw events drift.
func (r *JobRunner) deviceFor(run *runContext, s Sample) types.DeviceType {
	if u, ok := run.users[s.UID]; ok {
		return u.Device()
	}
	return types.NormalizeDevice(s.DeviceHint)
}

func (r *JobRunner) channelFor(run *runContext, uid int64) string {
	if channel, ok := run.channelByU[uid]; ok {
		return channel
	}
	return types.ChannelOrganic
}

func (r *JobRunner) termDimensioner(run *runContext) Dimensioner {
	return func(s Sample) (DimensionKey, bool) {
		if r.isExcluded(s.UID) || s.Term == "" {
			return DimensionKey{}, false
		}
		return DimensionKey{
			Device: r.deviceFor(run, s),
			Term:   s.Term,
		}, true
	}
}

func (r *JobRunner) windowDimensioner(run *runContext, windowDays int) Dimensioner {
	return func(s Sample) (DimensionKey, bool) {
		if r.isExcluded(s.UID) {
			return DimensionKey{}, false
		}
		if !r.lifecycle.InWindow(s.UID, run.regDates, s.Timestamp, windowDays) {
			return DimensionKey{}, false
		}
		return DimensionKey{
			Device:     r.deviceFor(run, s),
			WindowDays: windowDays,
		}, true
	}
}

// mergeInto unions src into dst in place. Window folds produce disjoint
// WindowDays keys, so this is a plain accumulation.
func mergeInto(dst, src StatsMap) {
	for key, stat := range src {
		merged := dst.get(key)
		merged.PV += stat.PV
		merged.OrderCount += stat.OrderCount
		merged.AmountCents += stat.AmountCents
		for uid := range stat.UV {
			merged.UV[uid] = struct{}{}
		}
	}
}

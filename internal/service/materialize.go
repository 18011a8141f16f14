package service

import (
	"context"

	"github.com/maka2016/maka-stats/internal/domain/stats"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/shopspring/decimal"
)

// Materializer is the single writer of statistics rows. It owns the one
// place where ledger amounts leave minor units: every GMVCents value becomes
// a major-unit decimal exactly once, immediately before the write.
type Materializer struct {
	repo   stats.Repository
	logger *logger.Logger
}

func NewMaterializer(repo stats.Repository, logger *logger.Logger) *Materializer {
	return &Materializer{repo: repo, logger: logger}
}

func centsToMajor(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// WriteDaily replaces the (tenant, date) scope of the daily table. Replace
// rather than upsert so a dimension value absent from this run cannot leave
// a stale row from a previous one.
func (m *Materializer) WriteDaily(ctx context.Context, tenantID, statDate string, rows []*stats.DailyStatRow) (*stats.WriteReport, error) {
	for _, row := range rows {
		row.GMV = centsToMajor(row.GMVCents)
	}
	report, err := m.repo.ReplaceDailyStats(ctx, tenantID, statDate, rows)
	m.logWrite("daily_stats", tenantID, statDate, report, err)
	return report, err
}

// UpsertDaily is the upsert-by-key strategy for callers patching a known
// dimension set without clearing the scope.
func (m *Materializer) UpsertDaily(ctx context.Context, rows []*stats.DailyStatRow) (*stats.WriteReport, error) {
	for _, row := range rows {
		row.GMV = centsToMajor(row.GMVCents)
	}
	report, err := m.repo.UpsertDailyStats(ctx, rows)
	m.logWrite("daily_stats", "", "", report, err)
	return report, err
}

func (m *Materializer) WriteTerms(ctx context.Context, tenantID, statDate string, kind stats.TermKind, rows []*stats.TermStatRow) (*stats.WriteReport, error) {
	for _, row := range rows {
		row.GMV = centsToMajor(row.GMVCents)
	}
	report, err := m.repo.ReplaceTermStats(ctx, tenantID, statDate, kind, rows)
	m.logWrite("daily_term_stats", tenantID, statDate, report, err)
	return report, err
}

func (m *Materializer) WriteCohortWindows(ctx context.Context, tenantID, statDate string, rows []*stats.CohortWindowRow) (*stats.WriteReport, error) {
	for _, row := range rows {
		row.GMV = centsToMajor(row.GMVCents)
	}
	report, err := m.repo.ReplaceCohortWindowStats(ctx, tenantID, statDate, rows)
	m.logWrite("cohort_window_stats", tenantID, statDate, report, err)
	return report, err
}

func (m *Materializer) logWrite(table, tenantID, statDate string, report *stats.WriteReport, err error) {
	fields := []interface{}{"table", table}
	if tenantID != "" {
		fields = append(fields, "tenant_id", tenantID, "stat_date", statDate)
	}
	if report != nil {
		fields = append(fields,
			"written", report.Written,
			"failed", report.Failed,
			"batches", report.Batches,
			"failed_batches", report.FailedBatches)
	}
	if err != nil {
		fields = append(fields, "error", err)
		m.logger.Errorw("statistics write completed with errors", fields...)
		return
	}
	if report != nil && report.FailedBatches > 0 {
		m.logger.Warnw("statistics write partially failed", fields...)
		return
	}
	m.logger.Infow("statistics write completed", fields...)
}

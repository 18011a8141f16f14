package postgres

import (
	"context"
	"strings"

	"github.com/maka2016/maka-stats/internal/config"
	"github.com/maka2016/maka-stats/internal/domain/stats"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/postgres"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/samber/lo"
)

type StatsRepository struct {
	db        *postgres.DB
	logger    *logger.Logger
	batchSize int
}

func NewStatsRepository(db *postgres.DB, cfg *config.Configuration, logger *logger.Logger) *StatsRepository {
	batchSize := cfg.Stats.WriteBatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	return &StatsRepository{db: db, logger: logger, batchSize: batchSize}
}

// UpsertDailyStats inserts or updates rows on their natural key. Batches fail
// independently; the report carries per-batch outcomes.
func (r *StatsRepository) UpsertDailyStats(ctx context.Context, rows []*stats.DailyStatRow) (*stats.WriteReport, error) {
	report := &stats.WriteReport{}
	for _, batch := range lo.Chunk(rows, r.batchSize) {
		report.Batches++
		if err := r.upsertDailyBatch(ctx, batch); err != nil {
			report.FailedBatches++
			report.Failed += len(batch)
			r.logger.Errorw("daily stats upsert batch failed",
				"batch_size", len(batch),
				"error", err)
			continue
		}
		report.Written += len(batch)
	}
	if report.FailedBatches == report.Batches && report.Batches > 0 {
		return report, ierr.NewError("all daily stats batches failed").
			WithHint("No statistics were written for this run").
			Mark(ierr.ErrDatabase)
	}
	return report, nil
}

func (r *StatsRepository) upsertDailyBatch(ctx context.Context, batch []*stats.DailyStatRow) error {
	const cols = 18
	valueRows := make([]string, 0, len(batch))
	args := make([]interface{}, 0, len(batch)*cols)
	for _, row := range batch {
		if row.ID == "" {
			row.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STAT_ROW)
		}
		valueRows = append(valueRows, valuePlaceholders(cols))
		args = append(args,
			row.ID, row.TenantID, row.StatDate, row.Device, row.Channel, row.Cohort,
			row.ViewPV, row.ViewUV, row.ClickPV, row.ClickUV,
			row.InterceptPV, row.InterceptUV, row.CreatePV, row.CreateUV,
			row.SuccessPV, row.SuccessUV, row.OrderCount, row.GMV)
	}

	query := `
		INSERT INTO daily_stats (
			id, tenant_id, stat_date, device, channel, cohort,
			view_pv, view_uv, click_pv, click_uv,
			intercept_pv, intercept_uv, create_pv, create_uv,
			success_pv, success_uv, order_count, gmv
		) VALUES ` + strings.Join(valueRows, ", ") + `
		ON CONFLICT (tenant_id, stat_date, device, channel, cohort) DO UPDATE SET
			view_pv = EXCLUDED.view_pv,
			view_uv = EXCLUDED.view_uv,
			click_pv = EXCLUDED.click_pv,
			click_uv = EXCLUDED.click_uv,
			intercept_pv = EXCLUDED.intercept_pv,
			intercept_uv = EXCLUDED.intercept_uv,
			create_pv = EXCLUDED.create_pv,
			create_uv = EXCLUDED.create_uv,
			success_pv = EXCLUDED.success_pv,
			success_uv = EXCLUDED.success_uv,
			order_count = EXCLUDED.order_count,
			gmv = EXCLUDED.gmv,
			updated_at = NOW()`

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, q.Rebind(query), args...)
	return err
}

// ReplaceDailyStats removes every row in the (tenant, date) scope and writes
// the fresh set. The delete must succeed before any insert runs so stale
// dimension rows cannot survive a shrinking universe.
func (r *StatsRepository) ReplaceDailyStats(ctx context.Context, tenantID, statDate string, rows []*stats.DailyStatRow) (*stats.WriteReport, error) {
	if err := r.deleteScope(ctx, "daily_stats", tenantID, statDate, nil); err != nil {
		return nil, err
	}
	return r.UpsertDailyStats(ctx, rows)
}

// ReplaceTermStats replaces the (tenant, date, kind) scope of the term table.
func (r *StatsRepository) ReplaceTermStats(ctx context.Context, tenantID, statDate string, kind stats.TermKind, rows []*stats.TermStatRow) (*stats.WriteReport, error) {
	if !kind.Validate() {
		return nil, ierr.NewError("invalid term kind").
			WithReportableDetails(map[string]interface{}{"term_kind": kind}).
			Mark(ierr.ErrValidation)
	}
	extra := map[string]interface{}{"term_kind": string(kind)}
	if err := r.deleteScope(ctx, "daily_term_stats", tenantID, statDate, extra); err != nil {
		return nil, err
	}

	report := &stats.WriteReport{}
	for _, batch := range lo.Chunk(rows, r.batchSize) {
		report.Batches++
		if err := r.insertTermBatch(ctx, batch); err != nil {
			report.FailedBatches++
			report.Failed += len(batch)
			r.logger.Errorw("term stats insert batch failed",
				"term_kind", kind,
				"batch_size", len(batch),
				"error", err)
			continue
		}
		report.Written += len(batch)
	}
	if report.FailedBatches == report.Batches && report.Batches > 0 {
		return report, ierr.NewError("all term stats batches failed").
			WithHint("No term statistics were written for this run").
			Mark(ierr.ErrDatabase)
	}
	return report, nil
}

func (r *StatsRepository) insertTermBatch(ctx context.Context, batch []*stats.TermStatRow) error {
	const cols = 16
	valueRows := make([]string, 0, len(batch))
	args := make([]interface{}, 0, len(batch)*cols)
	for _, row := range batch {
		if row.ID == "" {
			row.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STAT_ROW)
		}
		valueRows = append(valueRows, valuePlaceholders(cols))
		args = append(args,
			row.ID, row.TenantID, row.StatDate, row.TermKind, row.Term, row.Device,
			row.ViewPV, row.ViewUV, row.ClickPV, row.ClickUV,
			row.CreatePV, row.CreateUV, row.SuccessPV, row.SuccessUV,
			row.OrderCount, row.GMV)
	}

	query := `
		INSERT INTO daily_term_stats (
			id, tenant_id, stat_date, term_kind, term, device,
			view_pv, view_uv, click_pv, click_uv,
			create_pv, create_uv, success_pv, success_uv,
			order_count, gmv
		) VALUES ` + strings.Join(valueRows, ", ")

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, q.Rebind(query), args...)
	return err
}

// ReplaceCohortWindowStats replaces the (tenant, date) scope of the cohort
// window table. The scope is a handful of rows, so delete and insert run in
// one transaction and readers never see a half-replaced scope.
func (r *StatsRepository) ReplaceCohortWindowStats(ctx context.Context, tenantID, statDate string, rows []*stats.CohortWindowRow) (*stats.WriteReport, error) {
	report := &stats.WriteReport{}
	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		if err := r.deleteScope(ctx, "cohort_window_stats", tenantID, statDate, nil); err != nil {
			return err
		}
		for _, batch := range lo.Chunk(rows, r.batchSize) {
			report.Batches++
			if err := r.insertCohortWindowBatch(ctx, batch); err != nil {
				return ierr.WithError(err).
					WithHint("Failed to write cohort window statistics").
					WithReportableDetails(map[string]interface{}{
						"tenant_id": tenantID,
						"stat_date": statDate,
					}).
					Mark(ierr.ErrDatabase)
			}
			report.Written += len(batch)
		}
		return nil
	})
	if err != nil {
		// The rollback discards everything, including batches that had
		// succeeded inside the transaction.
		report.Failed = len(rows)
		report.FailedBatches = report.Batches
		report.Written = 0
		return report, err
	}
	return report, nil
}

func (r *StatsRepository) insertCohortWindowBatch(ctx context.Context, batch []*stats.CohortWindowRow) error {
	const cols = 11
	valueRows := make([]string, 0, len(batch))
	args := make([]interface{}, 0, len(batch)*cols)
	for _, row := range batch {
		if row.ID == "" {
			row.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STAT_ROW)
		}
		valueRows = append(valueRows, valuePlaceholders(cols))
		args = append(args,
			row.ID, row.TenantID, row.StatDate, row.WindowDays, row.Device,
			row.ActivePV, row.ActiveUV, row.CreatePV, row.CreateUV,
			row.OrderCount, row.GMV)
	}

	query := `
		INSERT INTO cohort_window_stats (
			id, tenant_id, stat_date, window_days, device,
			active_pv, active_uv, create_pv, create_uv,
			order_count, gmv
		) VALUES ` + strings.Join(valueRows, ", ")

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, q.Rebind(query), args...)
	return err
}

func (r *StatsRepository) deleteScope(ctx context.Context, table, tenantID, statDate string, extra map[string]interface{}) error {
	query := "DELETE FROM " + table + " WHERE tenant_id = ? AND stat_date = ?"
	args := []interface{}{tenantID, statDate}
	for col, val := range extra {
		query += " AND " + col + " = ?"
		args = append(args, val)
	}

	q := r.db.GetQuerier(ctx)
	if _, err := q.ExecContext(ctx, q.Rebind(query), args...); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to clear the statistics scope before rewrite").
			WithReportableDetails(map[string]interface{}{
				"table":     table,
				"tenant_id": tenantID,
				"stat_date": statDate,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func valuePlaceholders(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?,", n), ",") + ")"
}

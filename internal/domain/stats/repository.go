package stats

import "context"

// Repository is the statistics sink. Every write path is idempotent for a
// given (tenant, date):
//
//   - the Upsert methods update-or-insert on the row's full natural key;
//   - the Replace methods delete every row of the (tenant, date) scope and
//     bulk-insert the fresh set, which is required when the dimension
//     universe can shrink between runs.
type Repository interface {
	UpsertDailyStats(ctx context.Context, rows []*DailyStatRow) (*WriteReport, error)
	ReplaceDailyStats(ctx context.Context, tenantID, statDate string, rows []*DailyStatRow) (*WriteReport, error)

	ReplaceTermStats(ctx context.Context, tenantID, statDate string, kind TermKind, rows []*TermStatRow) (*WriteReport, error)

	ReplaceCohortWindowStats(ctx context.Context, tenantID, statDate string, rows []*CohortWindowRow) (*WriteReport, error)
}

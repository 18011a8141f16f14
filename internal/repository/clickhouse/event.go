package clickhouse

import (
	"context"
	"strings"
	"time"

	clickhouse "github.com/maka2016/maka-stats/internal/clickhouse"
	"github.com/maka2016/maka-stats/internal/config"
	"github.com/maka2016/maka-stats/internal/domain/events"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
)

type EventRepository struct {
	store  *clickhouse.ClickHouseStore
	logger *logger.Logger
	retry  retryPolicy
}

func NewEventRepository(store *clickhouse.ClickHouseStore, cfg *config.Configuration, logger *logger.Logger) *EventRepository {
	return &EventRepository{
		store:  store,
		logger: logger,
		retry: retryPolicy{
			attempts: cfg.Stats.QueryRetryAttempts,
			interval: cfg.Stats.QueryRetryInterval,
		},
	}
}

// QueryEvents streams the raw event rows matching params. The event log is
// schema-loose, so string columns are wrapped in ifNull and uid in a
// toInt64OrZero cast; rows missing those fields come back as zero values
// rather than failing the scan. Result order is not guaranteed.
func (r *EventRepository) QueryEvents(ctx context.Context, params *events.QueryParams) ([]*events.Event, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	query := `
		SELECT
			tenant_id,
			event_name,
			ifNull(page_type, '') AS page_type,
			ifNull(object_type, '') AS object_type,
			ifNull(object_id, '') AS object_id,
			ifNull(distinct_id, '') AS distinct_id,
			toInt64OrZero(ifNull(toString(uid), '')) AS uid,
			ifNull(platform, '') AS platform,
			ifNull(term, '') AS term,
			timestamp
		FROM events
		WHERE tenant_id = ?
		AND timestamp >= ?
		AND timestamp <= ?
	`
	args := []interface{}{params.TenantID, params.StartTime, params.EndTime}

	if len(params.EventNames) > 0 {
		query += " AND event_name IN (" + placeholders(len(params.EventNames)) + ")"
		for _, name := range params.EventNames {
			args = append(args, name)
		}
	}
	if len(params.PageTypes) > 0 {
		query += " AND page_type IN (" + placeholders(len(params.PageTypes)) + ")"
		for _, pt := range params.PageTypes {
			args = append(args, pt)
		}
	}
	if len(params.ObjectTypes) > 0 {
		query += " AND object_type IN (" + placeholders(len(params.ObjectTypes)) + ")"
		for _, ot := range params.ObjectTypes {
			args = append(args, ot)
		}
	}
	if params.OnlyAuthenticated {
		query += " AND uid > 0"
	}

	r.logger.Debugw("executing event log query",
		"tenant_id", params.TenantID,
		"event_names", params.EventNames,
		"start_time", params.StartTime,
		"end_time", params.EndTime)

	var result []*events.Event
	queryStart := time.Now()

	err := withRetry(ctx, r.retry, func() error {
		rows, err := r.store.GetConn().Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		collected := make([]*events.Event, 0, 1024)
		for rows.Next() {
			var ev events.Event
			if err := rows.Scan(
				&ev.TenantID,
				&ev.EventName,
				&ev.PageType,
				&ev.ObjectType,
				&ev.ObjectID,
				&ev.DistinctID,
				&ev.UID,
				&ev.Platform,
				&ev.Term,
				&ev.Timestamp,
			); err != nil {
				return err
			}
			collected = append(collected, &ev)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		result = collected
		return nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query the event log").
			WithReportableDetails(map[string]interface{}{
				"tenant_id":   params.TenantID,
				"event_names": params.EventNames,
			}).
			Mark(ierr.ErrSourceUnavailable)
	}

	r.logger.Debugw("event log query completed",
		"tenant_id", params.TenantID,
		"rows", len(result),
		"duration_ms", time.Since(queryStart).Milliseconds())

	return result, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/postgres"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/samber/lo"
)

type AttributionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAttributionRepository(db *postgres.DB, logger *logger.Logger) *AttributionRepository {
	return &AttributionRepository{db: db, logger: logger}
}

type channelRow struct {
	UID     int64  `db:"uid"`
	Channel string `db:"channel"`
}

// FindCampaignChannels returns the campaign channel per uid from conversion
// linkage records joined to their campaign events. Conversions whose campaign
// event carries no channel are skipped. With multiple conversions per uid the
// first row returned wins.
func (r *AttributionRepository) FindCampaignChannels(ctx context.Context, tenantID string, uids []int64) (map[int64]string, error) {
	result := make(map[int64]string, len(uids))
	if len(uids) == 0 {
		return result, nil
	}

	for _, chunk := range lo.Chunk(lo.Uniq(uids), 5000) {
		query, args, err := sqlx.In(`
			SELECT cc.uid, ce.channel
			FROM campaign_conversions cc
			JOIN campaign_events ce ON ce.id = cc.campaign_event_id AND ce.tenant_id = cc.tenant_id
			WHERE cc.tenant_id = ?
			AND cc.uid IN (?)
			AND ce.channel IS NOT NULL
			AND ce.channel <> ''`,
			tenantID, chunk)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to build campaign channel query").
				Mark(ierr.ErrDatabase)
		}

		var rows []channelRow
		q := r.db.GetQuerier(ctx)
		if err := q.SelectContext(ctx, &rows, q.Rebind(query), args...); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to load campaign conversion channels").
				WithReportableDetails(map[string]interface{}{
					"tenant_id": tenantID,
					"uid_count": len(chunk),
				}).
				Mark(ierr.ErrDatabase)
		}
		for _, row := range rows {
			if _, ok := result[row.UID]; !ok {
				result[row.UID] = row.Channel
			}
		}
	}

	return result, nil
}

// FindAdConversionChannels returns the reporting platform as channel for uids
// with a successfully reported register conversion event.
func (r *AttributionRepository) FindAdConversionChannels(ctx context.Context, tenantID string, uids []int64) (map[int64]string, error) {
	result := make(map[int64]string, len(uids))
	if len(uids) == 0 {
		return result, nil
	}

	for _, chunk := range lo.Chunk(lo.Uniq(uids), 5000) {
		query, args, err := sqlx.In(`
			SELECT uid, platform AS channel
			FROM ad_conversion_events
			WHERE tenant_id = ?
			AND uid IN (?)
			AND event = ?
			AND report_status = 'success'
			AND platform IS NOT NULL
			AND platform <> ''`,
			tenantID, chunk, types.EventRegister)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to build ad conversion channel query").
				Mark(ierr.ErrDatabase)
		}

		var rows []channelRow
		q := r.db.GetQuerier(ctx)
		if err := q.SelectContext(ctx, &rows, q.Rebind(query), args...); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to load ad conversion channels").
				WithReportableDetails(map[string]interface{}{
					"tenant_id": tenantID,
					"uid_count": len(chunk),
				}).
				Mark(ierr.ErrDatabase)
		}
		for _, row := range rows {
			if _, ok := result[row.UID]; !ok {
				result[row.UID] = row.Channel
			}
		}
	}

	return result, nil
}

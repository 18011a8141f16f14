package service

import (
	"context"

	"github.com/maka2016/maka-stats/internal/domain/attribution"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/types"
)

// channelSource is one step of the attribution chain: a bulk lookup that
// answers for a subset of the requested uids.
type channelSource struct {
	name    string
	resolve func(ctx context.Context, tenantID string, uids []int64) (map[int64]string, error)
}

// ChannelAttributor resolves acquisition channels with an ordered resolver
// chain, first match per uid wins. Every requested uid ends up with a label;
// uids no source answers for get the organic fallback.
type ChannelAttributor struct {
	sources []channelSource
	logger  *logger.Logger
}

func NewChannelAttributor(repo attribution.Repository, logger *logger.Logger) *ChannelAttributor {
	return &ChannelAttributor{
		sources: []channelSource{
			{name: "campaign_conversion", resolve: repo.FindCampaignChannels},
			{name: "ad_conversion", resolve: repo.FindAdConversionChannels},
		},
		logger: logger,
	}
}

// ResolveChannels runs the chain with bulk queries, one per source, never
// per uid. A failing source is logged and skipped; later sources and the
// organic fallback still apply.
func (a *ChannelAttributor) ResolveChannels(ctx context.Context, tenantID string, uids []int64) map[int64]string {
	result := make(map[int64]string, len(uids))
	if len(uids) == 0 {
		return result
	}

	unresolved := uids
	for _, source := range a.sources {
		if len(unresolved) == 0 {
			break
		}
		resolved, err := source.resolve(ctx, tenantID, unresolved)
		if err != nil {
			a.logger.Errorw("channel source failed, falling through",
				"source", source.name,
				"tenant_id", tenantID,
				"uid_count", len(unresolved),
				"error", err)
			continue
		}

		remaining := make([]int64, 0, len(unresolved))
		for _, uid := range unresolved {
			if channel, ok := resolved[uid]; ok && channel != "" {
				result[uid] = channel
			} else {
				remaining = append(remaining, uid)
			}
		}
		unresolved = remaining
	}

	for _, uid := range unresolved {
		result[uid] = types.ChannelOrganic
	}
	return result
}

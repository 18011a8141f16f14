package attribution

import "context"

// Repository exposes the two acquisition-evidence sources used by the
// channel attributor. Both are bulk lookups: one query for all candidate
// uids, never one query per uid.
type Repository interface {
	// FindCampaignChannels returns the channel of the paid campaign each
	// uid converted through, joining conversion linkage records to their
	// campaign events. Uids with no linkage, or whose campaign record has
	// a null channel, are absent from the result.
	FindCampaignChannels(ctx context.Context, tenantID string, uids []int64) (map[int64]string, error)

	// FindAdConversionChannels returns the ad platform of each uid's
	// successfully reported register conversion. Only records with
	// event = "register", report_status = "success" and a non-null
	// platform qualify.
	FindAdConversionChannels(ctx context.Context, tenantID string, uids []int64) (map[int64]string, error)
}

package service

import (
	"time"

	"github.com/maka2016/maka-stats/internal/types"
)

// LifecycleClassifier assigns cohort labels and tests registration-anchored
// window membership. Registration dates come from a per-run map so the
// classifier itself never touches a store.
type LifecycleClassifier struct {
	buckets types.CohortBuckets
}

func NewLifecycleClassifier(buckets types.CohortBuckets) *LifecycleClassifier {
	return &LifecycleClassifier{buckets: buckets}
}

// Classify maps a uid to its cohort relative to targetDate. Users absent
// from the registration map fall into the oldest bucket.
func (c *LifecycleClassifier) Classify(uid int64, registeredAt map[int64]time.Time, targetDate time.Time) types.LifecycleCohort {
	regDate, ok := registeredAt[uid]
	if !ok {
		return types.CohortOld
	}
	return c.buckets.Classify(types.DaysBetween(regDate, targetDate))
}

// InWindow reports whether ts falls inside the half-open window of
// windowDays days anchored at the user's registration day. Unknown users are
// never inside any window.
func (c *LifecycleClassifier) InWindow(uid int64, registeredAt map[int64]time.Time, ts time.Time, windowDays int) bool {
	regDate, ok := registeredAt[uid]
	if !ok {
		return false
	}
	return types.InDayWindow(regDate, ts, windowDays)
}

package types

// LifecycleCohort buckets a user relative to their own registration date.
type LifecycleCohort string

const (
	// CohortNew covers users registered on the target date itself.
	CohortNew LifecycleCohort = "new"
	// CohortRecent covers users registered between 1 and RecentMaxAgeDays
	// days before the target date.
	CohortRecent LifecycleCohort = "recent"
	// CohortOld covers everyone else, including users whose registration
	// date is unknown.
	CohortOld LifecycleCohort = "old"
)

func (c LifecycleCohort) String() string {
	return string(c)
}

func (c LifecycleCohort) Validate() bool {
	switch c {
	case CohortNew, CohortRecent, CohortOld:
		return true
	default:
		return false
	}
}

// AllLifecycleCohorts returns every cohort value.
func AllLifecycleCohorts() []LifecycleCohort {
	return []LifecycleCohort{CohortNew, CohortRecent, CohortOld}
}

// CohortBuckets carries the configured bucket boundaries. Boundaries are a
// configuration concern; the classification rule itself is fixed:
// diff 0 -> new, 1..RecentMaxAgeDays -> recent, otherwise old.
type CohortBuckets struct {
	RecentMaxAgeDays int `mapstructure:"recent_max_age_days"`
}

// DefaultCohortBuckets matches the product's daily reports.
func DefaultCohortBuckets() CohortBuckets {
	return CohortBuckets{RecentMaxAgeDays: 30}
}

// Classify maps a registration-age difference in calendar days to a cohort.
// Negative differences (registration after the target date, which can happen
// when backfilling old dates) classify as old.
func (b CohortBuckets) Classify(diffDays int) LifecycleCohort {
	switch {
	case diffDays == 0:
		return CohortNew
	case diffDays >= 1 && diffDays <= b.RecentMaxAgeDays:
		return CohortRecent
	default:
		return CohortOld
	}
}

package service

import (
	"testing"
	"time"

	"github.com/maka2016/maka-stats/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestLifecycleClassify(t *testing.T) {
	classifier := NewLifecycleClassifier(types.DefaultCohortBuckets())
	target := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	regDates := map[int64]time.Time{
		1: target,
		2: target.AddDate(0, 0, -1),
		3: target.AddDate(0, 0, -30),
		4: target.AddDate(0, 0, -31),
	}

	assert.Equal(t, types.CohortNew, classifier.Classify(1, regDates, target))
	assert.Equal(t, types.CohortRecent, classifier.Classify(2, regDates, target))
	assert.Equal(t, types.CohortRecent, classifier.Classify(3, regDates, target))
	assert.Equal(t, types.CohortOld, classifier.Classify(4, regDates, target))

	// Users outside the registration map default to the oldest bucket.
	assert.Equal(t, types.CohortOld, classifier.Classify(999, regDates, target))
}

func TestLifecycleInWindow(t *testing.T) {
	classifier := NewLifecycleClassifier(types.DefaultCohortBuckets())
	registration := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)
	regDates := map[int64]time.Time{7: registration}

	// Day D and the end of day D+(N-1) are inside a 3 day window.
	assert.True(t, classifier.InWindow(7, regDates, registration, 3))
	assert.True(t, classifier.InWindow(7, regDates, time.Date(2025, 1, 12, 23, 59, 59, 0, time.UTC), 3))

	// One second before day D and the first instant of day D+N are outside.
	assert.False(t, classifier.InWindow(7, regDates, time.Date(2025, 1, 9, 23, 59, 59, 0, time.UTC), 3))
	assert.False(t, classifier.InWindow(7, regDates, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), 3))

	// Unknown users never fall inside a window.
	assert.False(t, classifier.InWindow(999, regDates, registration, 3))
}

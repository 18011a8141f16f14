package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCohortBucketsClassify(t *testing.T) {
	buckets := DefaultCohortBuckets()

	tests := []struct {
		name     string
		diffDays int
		expected LifecycleCohort
	}{
		{"registered today", 0, CohortNew},
		{"registered yesterday", 1, CohortRecent},
		{"boundary of recent", 30, CohortRecent},
		{"just past recent", 31, CohortOld},
		{"ancient", 400, CohortOld},
		{"registered after target date", -1, CohortOld},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buckets.Classify(tt.diffDays))
		})
	}
}

func TestCohortBucketsCustomBoundary(t *testing.T) {
	buckets := CohortBuckets{RecentMaxAgeDays: 7}

	assert.Equal(t, CohortRecent, buckets.Classify(7))
	assert.Equal(t, CohortOld, buckets.Classify(8))
}

package analytics

import (
	"testing"

	"workline/models"

	"github.com/stretchr/testify/assert"
)

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 0.0, successRate(0, 0))
	assert.Equal(t, 100.0, successRate(5, 5))
	assert.Equal(t, 0.0, successRate(0, 5))
	assert.InDelta(t, 66.66, successRate(2, 3), 0.01)

	// pending applications stay in the denominator: 1 approved out of 4
	assert.InDelta(t, 25.0, successRate(1, 4), 0.01)
}

func TestBucketByMonth(t *testing.T) {
	snaps := []models.AnalyticsSnapshot{
		{Date: "2026-06-01", Total: 10, Approved: 2, Rejected: 1, SuccessRate: 66.6},
		{Date: "2026-06-30", Total: 18, Approved: 5, Rejected: 2, SuccessRate: 71.4},
		{Date: "2026-07-15", Total: 25, Approved: 9, Rejected: 3, SuccessRate: 75.0},
	}

	buckets := BucketByMonth(snaps)
	assert.Len(t, buckets, 2)

	// last snapshot of each month wins; counts are cumulative
	assert.Equal(t, "2026-06", buckets[0].Month)
	assert.Equal(t, 18, buckets[0].Applications)
	assert.Equal(t, 5, buckets[0].Approved)

	assert.Equal(t, "2026-07", buckets[1].Month)
	assert.Equal(t, 25, buckets[1].Applications)
}

func TestBucketByMonthEmpty(t *testing.T) {
	assert.Empty(t, BucketByMonth(nil))
}

func TestGrowth(t *testing.T) {
	snaps := []models.AnalyticsSnapshot{
		{Date: "2026-06-01", Total: 10},
		{Date: "2026-07-01", Total: 15},
	}
	assert.InDelta(t, 50.0, Growth(snaps), 0.01)
}

func TestGrowthEdgeCases(t *testing.T) {
	// too little history
	assert.Equal(t, 0.0, Growth(nil))
	assert.Equal(t, 0.0, Growth([]models.AnalyticsSnapshot{{Total: 5}}))

	// zero baseline cannot produce a percentage
	assert.Equal(t, 0.0, Growth([]models.AnalyticsSnapshot{{Total: 0}, {Total: 9}}))

	// shrinking volume is negative growth
	snaps := []models.AnalyticsSnapshot{{Total: 20}, {Total: 10}}
	assert.InDelta(t, -50.0, Growth(snaps), 0.01)
}

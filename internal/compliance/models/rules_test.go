package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		days       int
		wantTier   Tier
		wantRebate int
		wantScore  int
	}{
		{days: 0, wantTier: TierGreen, wantRebate: 10, wantScore: 100},
		{days: 1, wantTier: TierYellow, wantRebate: 5, wantScore: 60},
		{days: 2, wantTier: TierYellow, wantRebate: 5, wantScore: 60},
		{days: 3, wantTier: TierRed, wantRebate: 0, wantScore: 20},
		{days: 30, wantTier: TierRed, wantRebate: 0, wantScore: 20},
		{days: NeverSubmittedDays, wantTier: TierRed, wantRebate: 0, wantScore: 20},
	}
	for _, tt := range tests {
		tier, rebate, score := Classify(tt.days)
		assert.Equal(t, tt.wantTier, tier, "days=%d", tt.days)
		assert.Equal(t, tt.wantRebate, rebate, "days=%d", tt.days)
		assert.Equal(t, tt.wantScore, score, "days=%d", tt.days)
	}
}

func TestClassifyAgreesWithTierRebate(t *testing.T) {
	for days := 0; days <= 5; days++ {
		tier, rebate, _ := Classify(days)
		assert.Equal(t, TierRebate(tier), rebate)
	}
	assert.Equal(t, 0, TierRebate(Tier("UNKNOWN")))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, NeverSubmittedDays, DaysSince(nil, now))

	sameDay := now.Add(-23*time.Hour - 59*time.Minute)
	assert.Equal(t, 0, DaysSince(&sameDay, now))

	oneDay := now.Add(-24 * time.Hour)
	assert.Equal(t, 1, DaysSince(&oneDay, now))

	threeDays := now.Add(-75 * time.Hour)
	assert.Equal(t, 3, DaysSince(&threeDays, now))
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" yellow ")
	require.NoError(t, err)
	assert.Equal(t, TierYellow, tier)

	_, err = ParseTier("BLUE")
	assert.Error(t, err)
}

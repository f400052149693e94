package models

import (
	"time"

	"greentax/pkg/period"
)

// NeverSubmittedDays stands in for days-since-last-proof when a society has
// no proofs at all. It lands in the RED bucket.
const NeverSubmittedDays = 999

const (
	scoreGreen  = 100
	scoreYellow = 60
	scoreRed    = 20
)

// TierRebate is the only tier to rebate-percent mapping. Classify and the
// rebate projection both read from it.
func TierRebate(tier Tier) int {
	switch tier {
	case TierGreen:
		return 10
	case TierYellow:
		return 5
	default:
		return 0
	}
}

// Classify derives tier, rebate percent and score from the whole days since
// the last proof. Only elapsed time matters; status counts are reporting data.
func Classify(daysSinceLastProof int) (tier Tier, rebatePercent int, score int) {
	switch {
	case daysSinceLastProof <= 0:
		tier, score = TierGreen, scoreGreen
	case daysSinceLastProof <= 2:
		tier, score = TierYellow, scoreYellow
	default:
		tier, score = TierRed, scoreRed
	}
	return tier, TierRebate(tier), score
}

// DaysSince returns whole days from last to now, or NeverSubmittedDays
// when last is nil.
func DaysSince(last *time.Time, now time.Time) int {
	if last == nil {
		return NeverSubmittedDays
	}
	return period.DaysBetween(now, *last)
}

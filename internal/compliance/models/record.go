package models

import (
	"strings"
	"time"

	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/period"
)

// Tier is the compliance classification of a society for a period.
type Tier string

const (
	TierGreen  Tier = "GREEN"
	TierYellow Tier = "YELLOW"
	TierRed    Tier = "RED"
)

func (t Tier) IsValid() bool {
	switch t {
	case TierGreen, TierYellow, TierRed:
		return true
	}
	return false
}

func (t Tier) String() string { return string(t) }

// ParseTier validates a tier string (case-insensitive).
func ParseTier(s string) (Tier, error) {
	tier := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if !tier.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "tier must be one of GREEN, YELLOW, RED")
	}
	return tier, nil
}

// Counts tallies a society's proofs by status over its whole history.
type Counts struct {
	Verified int `json:"verified"`
	Flagged  int `json:"flagged"`
	Rejected int `json:"rejected"`
}

// Record is the compliance snapshot for one society and one period. A
// (society, period) pair has at most one record; re-evaluation overwrites it.
type Record struct {
	SocietyID          domain.SocietyID
	Period             period.Key
	Tier               Tier
	RebatePercent      int
	Score              int
	ProofCount         int
	LastProofAt        *time.Time
	DaysSinceLastProof int
	Counts             Counts
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Rebate is the on-demand rebate projection of a society's latest record.
type Rebate struct {
	SocietyID          domain.SocietyID
	SocietyName        string
	Ward               string
	Tier               Tier
	RebatePercent      int
	Score              int
	ProofCount         int
	LastProofAt        *time.Time
	DaysSinceLastProof int
	Period             *period.Key
	Message            string
}

// NoDataMessage explains a RED/0 rebate for a society never evaluated.
const NoDataMessage = "No compliance data available"

package adapters

import (
	"context"

	"greentax/internal/admin/types"
	complianceModels "greentax/internal/compliance/models"
)

// ComplianceBreakdown is implemented by the compliance service.
type ComplianceBreakdown interface {
	TierBreakdown(ctx context.Context) (map[complianceModels.Tier]int, error)
}

// ComplianceAdapter adapts the compliance service to admin's TierSource.
type ComplianceAdapter struct {
	source ComplianceBreakdown
}

// NewComplianceAdapter creates a new adapter wrapping the compliance service.
func NewComplianceAdapter(source ComplianceBreakdown) *ComplianceAdapter {
	return &ComplianceAdapter{source: source}
}

// TierCounts returns the tier breakdown mapped to admin types.
func (a *ComplianceAdapter) TierCounts(ctx context.Context) (types.TierCounts, error) {
	breakdown, err := a.source.TierBreakdown(ctx)
	if err != nil {
		return types.TierCounts{}, err
	}
	return types.TierCounts{
		Green:  breakdown[complianceModels.TierGreen],
		Yellow: breakdown[complianceModels.TierYellow],
		Red:    breakdown[complianceModels.TierRed],
	}, nil
}

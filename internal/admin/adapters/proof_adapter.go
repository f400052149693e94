package adapters

import (
	"context"

	"greentax/internal/admin/types"
	proofModels "greentax/internal/proof/models"
)

// ProofCounter is implemented by the proof service.
type ProofCounter interface {
	Stats(ctx context.Context) (map[proofModels.Status]int, error)
}

// ProofStatsAdapter adapts the proof service to admin's ProofStatsSource.
type ProofStatsAdapter struct {
	source ProofCounter
}

// NewProofStatsAdapter creates a new adapter wrapping the proof service.
func NewProofStatsAdapter(source ProofCounter) *ProofStatsAdapter {
	return &ProofStatsAdapter{source: source}
}

// ProofStats returns proof counts mapped to admin types. Total includes
// every status, so it is the sum of the three named counts.
func (a *ProofStatsAdapter) ProofStats(ctx context.Context) (types.ProofStats, error) {
	counts, err := a.source.Stats(ctx)
	if err != nil {
		return types.ProofStats{}, err
	}
	stats := types.ProofStats{
		Verified: counts[proofModels.StatusVerified],
		Flagged:  counts[proofModels.StatusFlagged],
		Rejected: counts[proofModels.StatusRejected],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// Package admin serves the BMC admin dashboard.
package admin

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"greentax/internal/admin/types"
	societyModels "greentax/internal/society/models"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/requestcontext"
)

// SocietyLister lists the societies the dashboard counts.
type SocietyLister interface {
	ListActive(ctx context.Context) ([]*societyModels.Society, error)
}

// TierSource reports the tier breakdown of active societies.
type TierSource interface {
	TierCounts(ctx context.Context) (types.TierCounts, error)
}

// ProofStatsSource reports proof counts by status.
type ProofStatsSource interface {
	ProofStats(ctx context.Context) (types.ProofStats, error)
}

type Service struct {
	societies SocietyLister
	tiers     TierSource
	proofs    ProofStatsSource
	logger    *slog.Logger
}

func NewService(societies SocietyLister, tiers TierSource, proofs ProofStatsSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{societies: societies, tiers: tiers, proofs: proofs, logger: logger}
}

// Dashboard gathers the three sources concurrently. Any failure fails the
// whole dashboard.
func (s *Service) Dashboard(ctx context.Context) (*types.Dashboard, error) {
	var (
		societies []*societyModels.Society
		tiers     types.TierCounts
		proofs    types.ProofStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		societies, err = s.societies.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tiers, err = s.tiers.TierCounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		proofs, err = s.proofs.ProofStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "dashboard failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build dashboard")
	}

	return &types.Dashboard{
		ActiveSocieties: len(societies),
		Tiers:           tiers,
		Proofs:          proofs,
		Wards:           wardCounts(societies),
	}, nil
}

func wardCounts(societies []*societyModels.Society) []types.WardCount {
	counts := make(map[string]int)
	for _, s := range societies {
		counts[s.Ward]++
	}
	out := make([]types.WardCount, 0, len(counts))
	for ward, n := range counts {
		out = append(out, types.WardCount{Ward: ward, Societies: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ward < out[j].Ward })
	return out
}

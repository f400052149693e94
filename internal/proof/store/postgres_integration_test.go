//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"greentax/internal/platform/postgres"
	"greentax/internal/proof/models"
	"greentax/internal/proof/store"
	societymodels "greentax/internal/society/models"
	societystore "greentax/internal/society/store"
	"greentax/pkg/domain"
	"greentax/pkg/geo"
	"greentax/pkg/platform/sentinel"
	"greentax/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	society  domain.SocietyID
	base     time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.base = time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "compliance_records", "proofs", "societies"))

	society, err := societymodels.NewSociety(domain.NewSocietyID(), societymodels.Registration{
		Name:      "Proof Store CHS",
		Ward:      "H-East",
		Location:  geo.Coordinate{Lat: 19.07, Lng: 72.87},
		TaxNumber: "PS-" + uuid.NewString()[:8],
	}, s.base)
	s.Require().NoError(err)
	s.Require().NoError(societystore.NewPostgres(s.postgres.DB).Create(ctx, society))
	s.society = society.ID
}

func (s *PostgresStoreSuite) newProof(fp string, capturedAt time.Time, verdict models.Verdict) *models.Proof {
	submitter := domain.UserID(uuid.New())
	proof, err := models.NewProof(models.Core{
		ID:          domain.NewProofID(),
		SocietyID:   s.society,
		ImageURL:    "/uploads/" + fp + ".jpg",
		Fingerprint: fp,
		CapturedAt:  capturedAt,
		Coordinate:  geo.Coordinate{Lat: 19.07, Lng: 72.87},
		SubmittedBy: &submitter,
	}, verdict)
	s.Require().NoError(err)
	return proof
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	proof := s.newProof("fp-rt", s.base, models.Verdict{Status: models.StatusFlagged, Reason: "far"})
	s.Require().NoError(s.store.Create(ctx, proof))

	found, err := s.store.FindByID(ctx, proof.ID)
	s.Require().NoError(err)
	s.Equal(proof.Core, found.Core)
	s.Equal(models.StatusFlagged, found.Status)
	s.Nil(found.ReviewedAt)

	_, err = s.store.FindByID(ctx, domain.NewProofID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUnknownSocietyIsNotFound() {
	proof := s.newProof("fp-orphan", s.base, models.Verdict{Status: models.StatusVerified, Reason: "ok"})
	proof.SocietyID = domain.NewSocietyID()
	err := s.store.Create(context.Background(), proof)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestConcurrentOriginalsForSameImage() {
	ctx := context.Background()
	const writers = 8

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		alreadyErr int
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(ctx, s.newProof("fp-race", s.base, models.Verdict{Status: models.StatusVerified, Reason: "ok"}))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				alreadyErr++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(writers-1, alreadyErr)

	original, err := s.store.FindOriginalByFingerprint(ctx, "fp-race")
	s.Require().NoError(err)
	dupOf := original.ID
	s.Require().NoError(s.store.Create(ctx, s.newProof("fp-race", s.base, models.Verdict{
		Status: models.StatusRejected, Reason: "dup", DuplicateOf: &dupOf,
	})))
}

func (s *PostgresStoreSuite) TestListingAndCounts() {
	ctx := context.Background()
	older := s.newProof("fp-1", s.base, models.Verdict{Status: models.StatusVerified, Reason: "ok"})
	newer := s.newProof("fp-2", s.base.Add(time.Hour), models.Verdict{Status: models.StatusFlagged, Reason: "far"})
	s.Require().NoError(s.store.Create(ctx, older))
	s.Require().NoError(s.store.Create(ctx, newer))

	all, err := s.store.ListBySociety(ctx, s.society, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(newer.ID, all[0].ID)

	limited, err := s.store.ListBySociety(ctx, s.society, 1)
	s.Require().NoError(err)
	s.Len(limited, 1)

	flagged, err := s.store.ListByStatus(ctx, models.StatusFlagged)
	s.Require().NoError(err)
	s.Require().Len(flagged, 1)
	s.Equal(newer.ID, flagged[0].ID)

	counts, err := s.store.CountByStatus(ctx)
	s.Require().NoError(err)
	s.Equal(1, counts[models.StatusVerified])
	s.Equal(1, counts[models.StatusFlagged])
}

func (s *PostgresStoreSuite) TestReviewWritesOnlyOverlay() {
	ctx := context.Background()
	proof := s.newProof("fp-review", s.base, models.Verdict{Status: models.StatusFlagged, Reason: "far"})
	s.Require().NoError(s.store.Create(ctx, proof))
	reviewer := domain.UserID(uuid.New())
	reviewedAt := s.base.Add(time.Hour)

	updated, err := s.store.Review(ctx, proof.ID,
		func(p *models.Proof) error { return p.CanReview() },
		func(r *models.Review) { models.ApplyRejection(r, reviewer, "", reviewedAt) },
	)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, updated.Status)
	s.Equal(models.ReasonManuallyRejected, updated.Reason)

	found, err := s.store.FindByID(ctx, proof.ID)
	s.Require().NoError(err)
	s.Equal(proof.Core, found.Core)
	s.Require().NotNil(found.ReviewedAt)
	s.True(found.ReviewedAt.Equal(reviewedAt))

	_, err = s.store.Review(ctx, proof.ID,
		func(p *models.Proof) error { return p.CanReview() },
		func(r *models.Review) { models.ApplyApproval(r, reviewer, reviewedAt) },
	)
	s.Error(err)
}

func (s *PostgresStoreSuite) TestCoreColumnsAreImmutable() {
	ctx := context.Background()
	proof := s.newProof("fp-core", s.base, models.Verdict{Status: models.StatusVerified, Reason: "ok"})
	s.Require().NoError(s.store.Create(ctx, proof))

	_, err := s.postgres.DB.ExecContext(ctx, `UPDATE proofs SET image_url = 'tampered' WHERE id = $1`, proof.ID)
	s.Require().Error(err)
	s.True(postgres.IsRaisedException(err))
}

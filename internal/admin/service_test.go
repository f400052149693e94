package admin

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks SocietyLister,TierSource,ProofStatsSource

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"greentax/internal/admin/mocks"
	"greentax/internal/admin/types"
	"greentax/internal/platform/middleware"
	societyModels "greentax/internal/society/models"
	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/testutil"
)

type DashboardSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	societies *mocks.MockSocietyLister
	tiers     *mocks.MockTierSource
	proofs    *mocks.MockProofStatsSource
	service   *Service
	router    http.Handler
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

func (s *DashboardSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.societies = mocks.NewMockSocietyLister(s.ctrl)
	s.tiers = mocks.NewMockTierSource(s.ctrl)
	s.proofs = mocks.NewMockProofStatsSource(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.societies, s.tiers, s.proofs, logger)

	r := chi.NewRouter()
	NewHandler(s.service, middleware.NewRoleGuard(logger)).Register(r)
	s.router = r
}

func (s *DashboardSuite) TearDownTest() {
	s.ctrl.Finish()
}

func society(ward string) *societyModels.Society {
	return &societyModels.Society{ID: domain.NewSocietyID(), Name: "Society in " + ward, Ward: ward, Active: true}
}

func (s *DashboardSuite) expectHealthySources() {
	s.societies.EXPECT().ListActive(gomock.Any()).Return([]*societyModels.Society{
		society("K-West"), society("A"), society("K-West"),
	}, nil)
	s.tiers.EXPECT().TierCounts(gomock.Any()).Return(types.TierCounts{Green: 1, Yellow: 1, Red: 1}, nil)
	s.proofs.EXPECT().ProofStats(gomock.Any()).Return(types.ProofStats{Total: 6, Verified: 4, Flagged: 1, Rejected: 1}, nil)
}

func (s *DashboardSuite) TestDashboard() {
	s.Run("aggregates every source", func() {
		s.expectHealthySources()

		got, err := s.service.Dashboard(context.Background())
		s.Require().NoError(err)
		s.Equal(3, got.ActiveSocieties)
		s.Equal(types.TierCounts{Green: 1, Yellow: 1, Red: 1}, got.Tiers)
		s.Equal(6, got.Proofs.Total)
		s.Equal([]types.WardCount{{Ward: "A", Societies: 1}, {Ward: "K-West", Societies: 2}}, got.Wards)
	})

	s.Run("empty registry", func() {
		s.societies.EXPECT().ListActive(gomock.Any()).Return(nil, nil)
		s.tiers.EXPECT().TierCounts(gomock.Any()).Return(types.TierCounts{}, nil)
		s.proofs.EXPECT().ProofStats(gomock.Any()).Return(types.ProofStats{}, nil)

		got, err := s.service.Dashboard(context.Background())
		s.Require().NoError(err)
		s.Zero(got.ActiveSocieties)
		s.Empty(got.Wards)
	})

	s.Run("any failing source fails the dashboard", func() {
		s.societies.EXPECT().ListActive(gomock.Any()).Return(nil, nil).AnyTimes()
		s.tiers.EXPECT().TierCounts(gomock.Any()).Return(types.TierCounts{}, errors.New("db down")).AnyTimes()
		s.proofs.EXPECT().ProofStats(gomock.Any()).Return(types.ProofStats{}, nil).AnyTimes()

		_, err := s.service.Dashboard(context.Background())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *DashboardSuite) TestHandleDashboard() {
	s.Run("admin", func() {
		s.expectHealthySources()

		req := testutil.AsRole(testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/dashboard", nil), domain.RoleAdmin)
		rec := testutil.DoRequest(s.router, req)
		s.Require().Equal(http.StatusOK, rec.Code)

		resp := testutil.UnmarshalResponse[DashboardResponse](s.T(), rec)
		s.Equal(3, resp.ActiveSocieties)
		s.Equal(1, resp.Compliance.Green)
		s.Equal(4, resp.Proofs.Verified)
		s.Require().Len(resp.Wards, 2)
		s.Equal("A", resp.Wards[0].Ward)
	})

	s.Run("secretaries are forbidden", func() {
		req := testutil.AsRole(testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/dashboard", nil), domain.RoleSecretary)
		rec := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "forbidden")
	})
}

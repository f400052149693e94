package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"greentax/internal/compliance/handler/mocks"
	"greentax/internal/compliance/models"
	"greentax/internal/compliance/service"
	"greentax/internal/platform/middleware"
	proofmodels "greentax/internal/proof/models"
	societymodels "greentax/internal/society/models"
	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/geo"
	"greentax/pkg/period"
	"greentax/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  http.Handler
	society domain.SocietyID
	record  *models.Record
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(s.service, logger, middleware.NewRoleGuard(logger)).Register(r)
	s.router = r

	s.society = domain.NewSocietyID()
	last := time.Date(2026, time.March, 17, 9, 0, 0, 0, time.UTC)
	s.record = &models.Record{
		SocietyID:          s.society,
		Period:             period.Key{Year: 2026, Month: 3, Week: 12},
		Tier:               models.TierYellow,
		RebatePercent:      5,
		Score:              60,
		ProofCount:         3,
		LastProofAt:        &last,
		DaysSinceLastProof: 1,
		Counts:             models.Counts{Verified: 2, Flagged: 1},
	}
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) get(path string, role domain.Role) *http.Request {
	return testutil.AsRole(testutil.NewJSONRequest(s.T(), http.MethodGet, path, nil), role)
}

func (s *HandlerSuite) TestEvaluate() {
	s.Run("secretary triggers a synchronous evaluation", func() {
		s.service.EXPECT().Evaluate(gomock.Any(), s.society).Return(s.record, nil)

		req := testutil.AsRole(testutil.NewJSONRequest(s.T(), http.MethodPost, "/compliance/evaluate",
			map[string]string{"society_id": s.society.String()}), domain.RoleSecretary)
		rec := testutil.DoRequest(s.router, req)
		s.Require().Equal(http.StatusOK, rec.Code)

		resp := testutil.UnmarshalResponse[RecordResponse](s.T(), rec)
		s.Equal("YELLOW", resp.Tier)
		s.Equal(5, resp.RebatePercent)
		s.Equal(12, resp.Period.Week)
		s.Equal(2, resp.Counts.Verified)
	})

	s.Run("unknown society surfaces as 404", func() {
		s.service.EXPECT().Evaluate(gomock.Any(), s.society).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "society not found"))

		req := testutil.AsRole(testutil.NewJSONRequest(s.T(), http.MethodPost, "/compliance/evaluate",
			map[string]string{"society_id": s.society.String()}), domain.RoleAdmin)
		rec := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusNotFound, "not_found")
	})

	s.Run("missing society id", func() {
		req := testutil.AsRole(testutil.NewJSONRequest(s.T(), http.MethodPost, "/compliance/evaluate",
			map[string]string{}), domain.RoleAdmin)
		rec := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})

	s.Run("residents cannot evaluate", func() {
		req := testutil.AsRole(testutil.NewJSONRequest(s.T(), http.MethodPost, "/compliance/evaluate",
			map[string]string{"society_id": s.society.String()}), domain.RoleResident)
		rec := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "forbidden")
	})
}

func (s *HandlerSuite) TestCurrent() {
	s.Run("returns the current period record", func() {
		s.service.EXPECT().Current(gomock.Any(), s.society).Return(s.record, nil)
		rec := testutil.DoRequest(s.router, s.get("/compliance/"+s.society.String()+"/current", domain.RoleResident))
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal(60, testutil.UnmarshalResponse[RecordResponse](s.T(), rec).Score)
	})

	s.Run("not yet evaluated", func() {
		s.service.EXPECT().Current(gomock.Any(), s.society).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "no compliance record for the current period"))
		rec := testutil.DoRequest(s.router, s.get("/compliance/"+s.society.String()+"/current", domain.RoleResident))
		testutil.AssertStatusAndError(s.T(), rec, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestRebate() {
	s.Run("projection of the latest record", func() {
		s.service.EXPECT().Rebate(gomock.Any(), s.society).Return(&models.Rebate{
			SocietyID:     s.society,
			SocietyName:   "Green Acres",
			Ward:          "K-West",
			Tier:          models.TierGreen,
			RebatePercent: 10,
			Score:         100,
			Period:        &s.record.Period,
		}, nil)

		rec := testutil.DoRequest(s.router, s.get("/rebate/"+s.society.String(), domain.RoleResident))
		s.Require().Equal(http.StatusOK, rec.Code)
		resp := testutil.UnmarshalResponse[RebateResponse](s.T(), rec)
		s.Equal("GREEN", resp.Tier)
		s.Equal(10, resp.RebatePercent)
		s.Equal("Green Acres", resp.SocietyName)
		s.Empty(resp.Message)
	})

	s.Run("no data carries the explanatory message", func() {
		s.service.EXPECT().Rebate(gomock.Any(), s.society).Return(&models.Rebate{
			SocietyID:          s.society,
			Tier:               models.TierRed,
			DaysSinceLastProof: models.NeverSubmittedDays,
			Message:            models.NoDataMessage,
		}, nil)

		rec := testutil.DoRequest(s.router, s.get("/rebate/"+s.society.String(), domain.RoleSecretary))
		s.Require().Equal(http.StatusOK, rec.Code)
		resp := testutil.UnmarshalResponse[RebateResponse](s.T(), rec)
		s.Equal("RED", resp.Tier)
		s.Equal(0, resp.RebatePercent)
		s.Nil(resp.Period)
		s.Equal(models.NoDataMessage, resp.Message)
	})

	s.Run("bad society id", func() {
		rec := testutil.DoRequest(s.router, s.get("/rebate/nope", domain.RoleResident))
		testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})
}

func (s *HandlerSuite) TestResidentSummary() {
	summary := &service.ResidentSummary{
		Society: &societymodels.Society{ID: s.society, Name: "Green Acres", Ward: "K-West", TotalUnits: 40},
		Rebate:  &models.Rebate{SocietyID: s.society, Tier: models.TierYellow, RebatePercent: 5},
		RecentProofs: []*proofmodels.Proof{{
			Core: proofmodels.Core{
				ID:         domain.NewProofID(),
				SocietyID:  s.society,
				ImageURL:   "/uploads/a.jpg",
				CapturedAt: time.Date(2026, time.March, 17, 9, 0, 0, 0, time.UTC),
			},
			Review: proofmodels.Review{Status: proofmodels.StatusVerified},
		}},
	}

	s.Run("residents see their society", func() {
		s.service.EXPECT().ResidentSummary(gomock.Any(), s.society).Return(summary, nil)
		rec := testutil.DoRequest(s.router, s.get("/resident/societies/"+s.society.String()+"/summary", domain.RoleResident))
		s.Require().Equal(http.StatusOK, rec.Code)

		resp := testutil.UnmarshalResponse[ResidentSummaryResponse](s.T(), rec)
		s.Equal("Green Acres", resp.Society.Name)
		s.Equal(5, resp.Rebate.RebatePercent)
		s.Require().Len(resp.RecentProofs, 1)
		s.Equal("VERIFIED", resp.RecentProofs[0].Status)
		s.Equal("/uploads/a.jpg", resp.RecentProofs[0].ImageURL)
	})

	s.Run("admins are not residents", func() {
		rec := testutil.DoRequest(s.router, s.get("/resident/societies/"+s.society.String()+"/summary", domain.RoleAdmin))
		testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "forbidden")
	})
}

func (s *HandlerSuite) TestHeatmap() {
	s.Run("admin sees wards", func() {
		point := models.SocietyHeat{
			SocietyID: s.society,
			Name:      "Green Acres",
			Ward:      "K-West",
			Location:  geo.Coordinate{Lat: 19.07, Lng: 72.87},
			Tier:      models.TierRed,
		}
		heatmap := models.BuildHeatmap([]models.SocietyHeat{point})
		s.service.EXPECT().Heatmap(gomock.Any()).Return(&heatmap, nil)

		rec := testutil.DoRequest(s.router, s.get("/heatmap/wards", domain.RoleAdmin))
		s.Require().Equal(http.StatusOK, rec.Code)
		resp := testutil.UnmarshalResponse[HeatmapResponse](s.T(), rec)
		s.Require().Len(resp.Wards, 1)
		s.Equal("K-West", resp.Wards[0].Ward)
		s.Equal(1, resp.Wards[0].Red)
		s.Require().Len(resp.Societies, 1)
		s.Equal(19.07, resp.Societies[0].Location.Lat)
	})

	s.Run("internal failures do not leak", func() {
		s.service.EXPECT().Heatmap(gomock.Any()).Return(nil, dErrors.New(dErrors.CodeInternal, "failed to list societies"))
		rec := testutil.DoRequest(s.router, s.get("/heatmap/wards", domain.RoleAdmin))
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.Empty(testutil.UnmarshalErrorResponse(s.T(), rec).ErrorDescription)
	})

	s.Run("secretaries cannot see the heatmap", func() {
		rec := testutil.DoRequest(s.router, s.get("/heatmap/wards", domain.RoleSecretary))
		testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "forbidden")
	})
}

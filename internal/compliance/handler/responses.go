package handler

import (
	"time"

	"greentax/internal/compliance/models"
	"greentax/internal/compliance/service"
	proofmodels "greentax/internal/proof/models"
	"greentax/pkg/geo"
	"greentax/pkg/period"
)

// RecordResponse is the wire form of a compliance record.
type RecordResponse struct {
	SocietyID          string        `json:"society_id"`
	Period             period.Key    `json:"period"`
	Tier               string        `json:"tier"`
	RebatePercent      int           `json:"rebate_percent"`
	Score              int           `json:"score"`
	ProofCount         int           `json:"proof_count"`
	LastProofAt        *time.Time    `json:"last_proof_date"`
	DaysSinceLastProof int           `json:"days_since_last_proof"`
	Counts             models.Counts `json:"counts"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// RebateResponse is returned by GET /rebate/{societyID}.
type RebateResponse struct {
	SocietyID          string      `json:"society_id"`
	SocietyName        string      `json:"society_name"`
	Ward               string      `json:"ward"`
	Tier               string      `json:"tier"`
	RebatePercent      int         `json:"rebate_percent"`
	Score              int         `json:"score"`
	ProofCount         int         `json:"proof_count"`
	LastProofAt        *time.Time  `json:"last_proof_date"`
	DaysSinceLastProof int         `json:"days_since_last_proof"`
	Period             *period.Key `json:"period,omitempty"`
	Message            string      `json:"message,omitempty"`
}

// ResidentSocietyResponse is the society block of a resident summary.
type ResidentSocietyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Ward       string `json:"ward"`
	Address    string `json:"address,omitempty"`
	TotalUnits int    `json:"total_units"`
}

// RecentProofResponse is one entry of a resident's recent proof list.
type RecentProofResponse struct {
	ID         string    `json:"id"`
	CapturedAt time.Time `json:"captured_at"`
	Status     string    `json:"status"`
	ImageURL   string    `json:"image_url"`
}

// ResidentSummaryResponse is returned by GET /resident/societies/{societyID}/summary.
type ResidentSummaryResponse struct {
	Society      ResidentSocietyResponse `json:"society"`
	Rebate       RebateResponse          `json:"rebate"`
	RecentProofs []RecentProofResponse   `json:"recent_proofs"`
}

type SocietyHeatResponse struct {
	SocietyID     string         `json:"society_id"`
	Name          string         `json:"name"`
	Ward          string         `json:"ward"`
	Location      geo.Coordinate `json:"location"`
	Tier          string         `json:"tier"`
	Score         int            `json:"score"`
	RebatePercent int            `json:"rebate_percent"`
}

type WardHeatResponse struct {
	Ward           string `json:"ward"`
	TotalSocieties int    `json:"total_societies"`
	AverageScore   int    `json:"average_score"`
	Green          int    `json:"green"`
	Yellow         int    `json:"yellow"`
	Red            int    `json:"red"`
}

// HeatmapResponse is returned by GET /heatmap/wards.
type HeatmapResponse struct {
	Societies []SocietyHeatResponse `json:"societies"`
	Wards     []WardHeatResponse    `json:"wards"`
}

func FromRecord(r *models.Record) RecordResponse {
	return RecordResponse{
		SocietyID:          r.SocietyID.String(),
		Period:             r.Period,
		Tier:               r.Tier.String(),
		RebatePercent:      r.RebatePercent,
		Score:              r.Score,
		ProofCount:         r.ProofCount,
		LastProofAt:        r.LastProofAt,
		DaysSinceLastProof: r.DaysSinceLastProof,
		Counts:             r.Counts,
		UpdatedAt:          r.UpdatedAt,
	}
}

func FromRebate(r *models.Rebate) RebateResponse {
	return RebateResponse{
		SocietyID:          r.SocietyID.String(),
		SocietyName:        r.SocietyName,
		Ward:               r.Ward,
		Tier:               r.Tier.String(),
		RebatePercent:      r.RebatePercent,
		Score:              r.Score,
		ProofCount:         r.ProofCount,
		LastProofAt:        r.LastProofAt,
		DaysSinceLastProof: r.DaysSinceLastProof,
		Period:             r.Period,
		Message:            r.Message,
	}
}

func FromResidentSummary(s *service.ResidentSummary) ResidentSummaryResponse {
	resp := ResidentSummaryResponse{
		Society: ResidentSocietyResponse{
			ID:         s.Society.ID.String(),
			Name:       s.Society.Name,
			Ward:       s.Society.Ward,
			Address:    s.Society.Address,
			TotalUnits: s.Society.TotalUnits,
		},
		Rebate:       FromRebate(s.Rebate),
		RecentProofs: fromRecentProofs(s.RecentProofs),
	}
	return resp
}

func fromRecentProofs(proofs []*proofmodels.Proof) []RecentProofResponse {
	out := make([]RecentProofResponse, 0, len(proofs))
	for _, p := range proofs {
		out = append(out, RecentProofResponse{
			ID:         p.ID.String(),
			CapturedAt: p.CapturedAt,
			Status:     p.Status.String(),
			ImageURL:   p.ImageURL,
		})
	}
	return out
}

func FromHeatmap(h *models.Heatmap) HeatmapResponse {
	resp := HeatmapResponse{
		Societies: make([]SocietyHeatResponse, 0, len(h.Societies)),
		Wards:     make([]WardHeatResponse, 0, len(h.Wards)),
	}
	for _, p := range h.Societies {
		resp.Societies = append(resp.Societies, SocietyHeatResponse{
			SocietyID:     p.SocietyID.String(),
			Name:          p.Name,
			Ward:          p.Ward,
			Location:      p.Location,
			Tier:          p.Tier.String(),
			Score:         p.Score,
			RebatePercent: p.RebatePercent,
		})
	}
	for _, w := range h.Wards {
		resp.Wards = append(resp.Wards, WardHeatResponse{
			Ward:           w.Ward,
			TotalSocieties: w.TotalSocieties,
			AverageScore:   w.AverageScore,
			Green:          w.Green,
			Yellow:         w.Yellow,
			Red:            w.Red,
		})
	}
	return resp
}

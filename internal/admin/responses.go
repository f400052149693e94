package admin

import "greentax/internal/admin/types"

// TierCountsResponse is the tier block of the dashboard.
type TierCountsResponse struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

// ProofStatsResponse is the proof block of the dashboard.
type ProofStatsResponse struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Flagged  int `json:"flagged"`
	Rejected int `json:"rejected"`
}

type WardCountResponse struct {
	Ward      string `json:"ward"`
	Societies int    `json:"societies"`
}

// DashboardResponse is the HTTP response DTO for GET /admin/dashboard.
type DashboardResponse struct {
	ActiveSocieties int                 `json:"active_societies"`
	Compliance      TierCountsResponse  `json:"compliance"`
	Proofs          ProofStatsResponse  `json:"proofs"`
	Wards           []WardCountResponse `json:"wards"`
}

func FromDashboard(d *types.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		ActiveSocieties: d.ActiveSocieties,
		Compliance:      TierCountsResponse(d.Tiers),
		Proofs:          ProofStatsResponse(d.Proofs),
		Wards:           make([]WardCountResponse, 0, len(d.Wards)),
	}
	for _, w := range d.Wards {
		resp.Wards = append(resp.Wards, WardCountResponse(w))
	}
	return resp
}

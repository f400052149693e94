// Package types holds the admin read models. Adapters map other modules'
// types onto these so the admin package depends on no module's models.
package types

// TierCounts counts active societies by the tier of their latest record.
type TierCounts struct {
	Green  int
	Yellow int
	Red    int
}

// ProofStats counts proofs by status.
type ProofStats struct {
	Total    int
	Verified int
	Flagged  int
	Rejected int
}

// WardCount is the number of active societies in a ward.
type WardCount struct {
	Ward      string
	Societies int
}

// Dashboard is the BMC admin overview.
type Dashboard struct {
	ActiveSocieties int
	Tiers           TierCounts
	Proofs          ProofStats
	Wards           []WardCount
}

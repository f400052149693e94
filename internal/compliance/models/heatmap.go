package models

import (
	"math"
	"sort"

	"greentax/pkg/domain"
	"greentax/pkg/geo"
)

// SocietyHeat is one active society's point on the ward heatmap. Societies
// never evaluated read as RED with score and rebate zero.
type SocietyHeat struct {
	SocietyID     domain.SocietyID
	Name          string
	Ward          string
	Location      geo.Coordinate
	Tier          Tier
	Score         int
	RebatePercent int
}

// WardHeat aggregates a ward's societies.
type WardHeat struct {
	Ward           string
	Societies      []SocietyHeat
	TotalSocieties int
	AverageScore   int
	Green          int
	Yellow         int
	Red            int
}

// Heatmap is the per-society points plus the per-ward summary.
type Heatmap struct {
	Societies []SocietyHeat
	Wards     []WardHeat
}

// HeatFor builds a heatmap point from the society's latest record, which
// may be nil.
func HeatFor(id domain.SocietyID, name, ward string, location geo.Coordinate, latest *Record) SocietyHeat {
	heat := SocietyHeat{SocietyID: id, Name: name, Ward: ward, Location: location, Tier: TierRed}
	if latest != nil {
		heat.Tier = latest.Tier
		heat.Score = latest.Score
		heat.RebatePercent = TierRebate(latest.Tier)
	}
	return heat
}

// BuildHeatmap groups points by ward, ward names ascending. AverageScore is
// the mean score rounded to the nearest integer.
func BuildHeatmap(points []SocietyHeat) Heatmap {
	byWard := make(map[string]*WardHeat)
	totals := make(map[string]int)
	for _, p := range points {
		w, ok := byWard[p.Ward]
		if !ok {
			w = &WardHeat{Ward: p.Ward}
			byWard[p.Ward] = w
		}
		w.Societies = append(w.Societies, p)
		w.TotalSocieties++
		totals[p.Ward] += p.Score
		switch p.Tier {
		case TierGreen:
			w.Green++
		case TierYellow:
			w.Yellow++
		default:
			w.Red++
		}
	}

	wards := make([]WardHeat, 0, len(byWard))
	for name, w := range byWard {
		w.AverageScore = int(math.Round(float64(totals[name]) / float64(w.TotalSocieties)))
		wards = append(wards, *w)
	}
	sort.Slice(wards, func(i, j int) bool { return wards[i].Ward < wards[j].Ward })

	if points == nil {
		points = []SocietyHeat{}
	}
	return Heatmap{Societies: points, Wards: wards}
}

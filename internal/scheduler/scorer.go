package scheduler

import (
	"math"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

type ScoredTerm struct {
	Index    int
	Sections map[string]domain.Section
	Credits  int
	Score    float64
}

// ScoredPlan is a finished plan annotated with per-term compactness and the
// mean of those scores.
type ScoredPlan struct {
	Terms     []ScoredTerm
	Score     float64
	Signature string
}

type point struct {
	x, y float64
}

// occupancy lists one (weekday, hour) point per whole hour each slot covers.
func occupancy(term *TermAssignment) []point {
	var pts []point
	for _, slot := range term.Slots() {
		for h := slot.StartHour(); h < slot.FinishHour(); h++ {
			pts = append(pts, point{x: float64(slot.Weekday), y: float64(h)})
		}
	}
	return pts
}

// CompactnessScore rewards terms whose occupied hours cluster around their
// centroid: point count divided by the squared mean distance to the centroid.
// Degenerate clouds (empty, single point, coincident points) score 0.
func CompactnessScore(term *TermAssignment) float64 {
	pts := occupancy(term)
	if len(pts) == 0 {
		return 0
	}

	var cx, cy float64
	for _, p := range pts {
		cx += p.x
		cy += p.y
	}
	n := float64(len(pts))
	cx /= n
	cy /= n

	var dist float64
	for _, p := range pts {
		dist += math.Hypot(p.x-cx, p.y-cy)
	}
	mean := dist / n

	score := n / (mean * mean)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// ScorePlan scores every term of a finished plan.
func ScorePlan(p *Plan) ScoredPlan {
	out := ScoredPlan{
		Terms:     make([]ScoredTerm, len(p.Terms)),
		Signature: p.Signature(),
	}
	var total float64
	for i, t := range p.Terms {
		sections := make(map[string]domain.Section, len(t.Sections))
		for code, s := range t.Sections {
			sections[code] = s.Clone()
		}
		score := CompactnessScore(t)
		out.Terms[i] = ScoredTerm{Index: i, Sections: sections, Credits: t.Credits, Score: score}
		total += score
	}
	if len(p.Terms) > 0 {
		out.Score = total / float64(len(p.Terms))
	}
	return out
}

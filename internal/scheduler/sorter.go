package scheduler

import "sort"

const DefaultTopPlans = 5

// CanonicalSort orders scored plans best first:
// 1. Score: higher first
// 2. Signature: lexical ascending
//
// Every plan of one search has the same number of terms, so term count
// never separates them.
func CanonicalSort(plans []ScoredPlan) {
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]

		// 1. Score (higher first)
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		// 2. Signature (lexical)
		return a.Signature < b.Signature
	})
}

// Rank scores every plan and keeps the top ones, best first. A non-positive
// top falls back to DefaultTopPlans.
func Rank(plans []*Plan, top int) []ScoredPlan {
	if top <= 0 {
		top = DefaultTopPlans
	}
	scored := make([]ScoredPlan, len(plans))
	for i, p := range plans {
		scored[i] = ScorePlan(p)
	}
	CanonicalSort(scored)
	if len(scored) > top {
		scored = scored[:top]
	}
	return scored
}

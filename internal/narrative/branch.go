package narrative

import "strings"

// recentWindow is how many trailing decision contexts the DoubleCross scan
// looks at.
const recentWindow = 5

// doubleCrossMarkers are scanned (case-insensitive substring) in recent
// decision contexts. Naive match with no negation handling — "no betrayal"
// still matches; that behavior is deliberate.
var doubleCrossMarkers = []string{"betrayal", "manipulation"}

// DetermineBranch derives the story branch from the state's totals and a
// bounded window of recent decisions. Pure; callers own any state mutation.
//
// The evaluation order is load-bearing: each clause shadows the ones below
// it, and overlapping bands resolve silently by this priority.
func DetermineBranch(s *State, th Thresholds) Branch {
	diff := s.ImperialLoyalty - s.InsurgentSympathy

	if abs(diff) < th.NeutralBand {
		return BranchNeutral
	}
	if diff > th.ImperialLoyaltyThreshold {
		return BranchImperium
	}
	if diff < th.InsurgentSympathyThreshold {
		return BranchInsurgent
	}
	if abs(diff) < th.ComplexResistanceThreshold {
		if scanRecentContexts(s.History) {
			return BranchDoubleCross
		}
		return BranchComplex
	}
	return BranchSilent
}

// scanRecentContexts reports whether any of the last decisions' contexts
// contain a double-cross marker.
func scanRecentContexts(history []DecisionRecord) bool {
	start := 0
	if len(history) > recentWindow {
		start = len(history) - recentWindow
	}
	for _, rec := range history[start:] {
		ctx := strings.ToLower(rec.Context)
		for _, marker := range doubleCrossMarkers {
			if strings.Contains(ctx, marker) {
				return true
			}
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package narrative

// extremeMargin is the loyalty/sympathy spread that forces one of the two
// absolute endings regardless of branch.
const extremeMargin = 100

// DetermineEnding classifies the session's final outcome. A locked ending
// always wins; extremes override the branch mapping.
func DetermineEnding(s *State) EndingType {
	if s.LockedEnding != EndingNone {
		return s.LockedEnding
	}

	diff := s.ImperialLoyalty - s.InsurgentSympathy
	if diff >= extremeMargin {
		return EndingImperialCommendation
	}
	if diff <= -extremeMargin {
		return EndingRebelExtraction
	}

	switch s.CurrentBranch {
	case BranchImperium:
		return EndingImperialCommendation
	case BranchInsurgent:
		return EndingRebelExtraction
	case BranchDoubleCross:
		return EndingBurnedAsset
	case BranchComplex:
		return EndingQuietResistance
	case BranchSilent:
		return EndingGrayMan
	default:
		return EndingTransfer
	}
}

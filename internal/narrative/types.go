// Package narrative accumulates the player's decisions into a branching
// story state: running loyalty/sympathy totals, a discrete branch, unlocked
// story tags, and decision-chain bookkeeping.
package narrative

import "time"

// Category classifies a decision's narrative domain.
type Category string

const (
	CategoryTactical  Category = "tactical"
	CategoryFinancial Category = "financial"
	CategoryPolitical Category = "political"
	CategoryMoral     Category = "moral"
)

// Pressure is a decision's narrative weight. Ordinal: Low < Medium < High < Critical.
type Pressure uint8

const (
	PressureLow Pressure = iota
	PressureMedium
	PressureHigh
	PressureCritical
)

// PressureName maps pressure to its display name.
var PressureName = map[Pressure]string{
	PressureLow:      "low",
	PressureMedium:   "medium",
	PressureHigh:     "high",
	PressureCritical: "critical",
}

// Branch is the discrete story path derived from accumulated decisions.
type Branch string

const (
	// BranchUnset is the initial sentinel; the first recorded decision
	// always moves off it, so the first evaluation fires exactly one
	// branch-changed notification.
	BranchUnset       Branch = "unset"
	BranchNeutral     Branch = "neutral"
	BranchImperium    Branch = "imperium_path"
	BranchInsurgent   Branch = "insurgent_path"
	BranchDoubleCross Branch = "double_cross"
	BranchComplex     Branch = "complex_resistance"
	BranchSilent      Branch = "silent_defiance"
)

// EndingType is the final classification handed to the ending screen.
type EndingType string

const (
	EndingNone                 EndingType = ""
	EndingTransfer             EndingType = "quiet_transfer"
	EndingImperialCommendation EndingType = "imperial_commendation"
	EndingRebelExtraction      EndingType = "rebel_extraction"
	EndingBurnedAsset          EndingType = "burned_asset"
	EndingQuietResistance      EndingType = "quiet_resistance"
	EndingGrayMan              EndingType = "gray_man"
)

// DecisionRecord is one player decision. Immutable once created: appended to
// history, never mutated or deleted.
type DecisionRecord struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	ImperialPoints  int       `json:"imperial_points"`
	InsurgentPoints int       `json:"insurgent_points"`
	Category        Category  `json:"category"`
	Pressure        Pressure  `json:"pressure"`
	Context         string    `json:"context"`

	// ChainParent links a chained decision back to the decision that
	// opened its chain. Empty for chain openers.
	ChainParent string `json:"chain_parent,omitempty"`
}

// State is the mutable narrative state for one session. Mutated in place on
// every decision; reset only by an explicit new game.
type State struct {
	ImperialLoyalty   int    `json:"imperial_loyalty"`
	InsurgentSympathy int    `json:"insurgent_sympathy"`
	CurrentBranch     Branch `json:"current_branch"`
	ProgressionLevel  int    `json:"progression_level"`

	UnlockedTags map[string]bool  `json:"unlocked_tags"`
	History      []DecisionRecord `json:"history"`

	LockedEnding EndingType `json:"locked_ending,omitempty"`

	// Open decision chain bookkeeping. The source tracks chains but
	// defines no consumer beyond the records themselves.
	OpenChainID     string `json:"open_chain_id,omitempty"`
	OpenChainLength int    `json:"open_chain_length,omitempty"`
}

// NewState returns a fresh narrative state at the unset branch.
func NewState() *State {
	return &State{
		CurrentBranch: BranchUnset,
		UnlockedTags:  make(map[string]bool),
	}
}

// Thresholds are the branch band boundaries. Bands are assumed disjoint by
// the integrator; overlaps are resolved silently by evaluation order.
type Thresholds struct {
	NeutralBand                int
	ImperialLoyaltyThreshold   int
	InsurgentSympathyThreshold int
	ComplexResistanceThreshold int
}

// DefaultThresholds returns the shipped band boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		NeutralBand:                10,
		ImperialLoyaltyThreshold:   50,
		InsurgentSympathyThreshold: -50,
		ComplexResistanceThreshold: 25,
	}
}

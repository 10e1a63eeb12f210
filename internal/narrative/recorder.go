package narrative

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// chainCap is how many linked decisions a chain holds before it closes.
const chainCap = 5

// Recorder appends decisions to the narrative state and keeps the branch
// classification consistent. Record is synchronous and non-reentrant: the
// state is fully consistent before it returns, and it must not be called
// again from within a notification it raises.
type Recorder struct {
	state *State
	th    Thresholds

	branchSubs []func(old, new Branch)
	tagSubs    []func(tag string)
}

// NewRecorder creates a recorder over the given state.
func NewRecorder(state *State, th Thresholds) *Recorder {
	return &Recorder{state: state, th: th}
}

// State returns the recorder's underlying narrative state.
func (r *Recorder) State() *State { return r.state }

// OnBranchChange registers a callback fired exactly once per actual branch
// transition. No-change re-evaluations fire nothing.
func (r *Recorder) OnBranchChange(fn func(old, new Branch)) {
	r.branchSubs = append(r.branchSubs, fn)
}

// OnTagUnlock registers a callback fired only on a tag's first unlock.
func (r *Recorder) OnTagUnlock(fn func(tag string)) {
	r.tagSubs = append(r.tagSubs, fn)
}

// Record appends an immutable decision, updates the running totals, assigns
// chain bookkeeping, and synchronously re-evaluates the branch. An empty id
// gets a generated one.
func (r *Recorder) Record(id string, imperialPoints, insurgentPoints int, context string, category Category, pressure Pressure) DecisionRecord {
	if id == "" {
		id = uuid.NewString()
	}
	rec := DecisionRecord{
		ID:              id,
		Timestamp:       time.Now(),
		ImperialPoints:  imperialPoints,
		InsurgentPoints: insurgentPoints,
		Category:        category,
		Pressure:        pressure,
		Context:         context,
	}

	s := r.state

	// Chain tracking. A High/Critical decision always opens a fresh chain,
	// closing any open one. Otherwise the decision extends the open chain,
	// or opens its own when none is open. Chains close after chainCap
	// linked decisions.
	if pressure >= PressureHigh || s.OpenChainID == "" {
		s.OpenChainID = rec.ID
		s.OpenChainLength = 1
	} else {
		rec.ChainParent = s.OpenChainID
		s.OpenChainLength++
		if s.OpenChainLength >= chainCap {
			s.OpenChainID = ""
			s.OpenChainLength = 0
		}
	}

	s.History = append(s.History, rec)
	s.ImperialLoyalty += imperialPoints
	s.InsurgentSympathy += insurgentPoints

	r.reevaluate()
	return rec
}

// ApplyConsequence adjusts the running totals outside a decision, for
// delayed consequence payloads. The branch is deliberately not re-evaluated:
// no branch transition happens without a recorded decision.
func (r *Recorder) ApplyConsequence(loyaltyDelta int) {
	r.state.ImperialLoyalty += loyaltyDelta
}

// UnlockStoryTag inserts a tag into the unlocked set. Idempotent; the
// tag-unlocked notification fires only on first insertion. Returns whether
// the tag was newly unlocked.
func (r *Recorder) UnlockStoryTag(tag string) bool {
	if tag == "" || r.state.UnlockedTags[tag] {
		return false
	}
	r.state.UnlockedTags[tag] = true
	slog.Info("story tag unlocked", "tag", tag)
	for _, fn := range r.tagSubs {
		fn(tag)
	}
	return true
}

// LockEnding pins the ending regardless of later branch movement. Used by
// external story beats; persisted with the session.
func (r *Recorder) LockEnding(e EndingType) {
	r.state.LockedEnding = e
}

// reevaluate recomputes the branch and, on an actual change, bumps the
// progression level exactly once and notifies subscribers exactly once.
func (r *Recorder) reevaluate() {
	s := r.state
	next := DetermineBranch(s, r.th)
	if next == s.CurrentBranch {
		return
	}
	old := s.CurrentBranch
	s.CurrentBranch = next
	s.ProgressionLevel++
	slog.Info("narrative branch changed",
		"from", string(old),
		"to", string(next),
		"progression", s.ProgressionLevel,
		"loyalty", s.ImperialLoyalty,
		"sympathy", s.InsurgentSympathy,
	)
	for _, fn := range r.branchSubs {
		fn(old, next)
	}
}

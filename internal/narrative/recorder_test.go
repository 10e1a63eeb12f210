package narrative

import (
	"strings"
	"testing"
)

func newTestRecorder() *Recorder {
	return NewRecorder(NewState(), DefaultThresholds())
}

// --- Recording ---

func TestRecordAppendsImmutableHistory(t *testing.T) {
	r := newTestRecorder()
	rec := r.Record("d1", 3, 1, "routine", CategoryMoral, PressureLow)

	if rec.ID != "d1" {
		t.Errorf("expected given id to be kept, got %q", rec.ID)
	}
	s := r.State()
	if len(s.History) != 1 {
		t.Fatalf("expected 1 record, got %d", len(s.History))
	}
	if s.ImperialLoyalty != 3 || s.InsurgentSympathy != 1 {
		t.Errorf("expected totals 3/1, got %d/%d", s.ImperialLoyalty, s.InsurgentSympathy)
	}
}

func TestRecordGeneratesID(t *testing.T) {
	r := newTestRecorder()
	rec := r.Record("", 0, 0, "", CategoryMoral, PressureLow)
	if rec.ID == "" {
		t.Error("expected generated id for empty input")
	}
}

// --- Branch notifications ---

// Recording decisions whose running difference stays inside one band fires
// exactly one branch-changed notification: the move off the unset sentinel.
func TestSingleNotificationWithinBand(t *testing.T) {
	r := newTestRecorder()
	changes := 0
	r.OnBranchChange(func(old, new Branch) { changes++ })

	r.Record("d1", 1, 0, "", CategoryMoral, PressureLow)
	r.Record("d2", 1, 0, "", CategoryMoral, PressureLow)
	r.Record("d3", 1, 0, "", CategoryMoral, PressureLow)

	if changes != 1 {
		t.Errorf("expected exactly 1 branch notification, got %d", changes)
	}
	if got := r.State().CurrentBranch; got != BranchNeutral {
		t.Errorf("expected neutral branch, got %s", got)
	}
}

func TestProgressionIncrementsOncePerChange(t *testing.T) {
	r := newTestRecorder()

	r.Record("d1", 5, 0, "", CategoryMoral, PressureLow) // unset → neutral
	if got := r.State().ProgressionLevel; got != 1 {
		t.Fatalf("expected progression 1, got %d", got)
	}
	r.Record("d2", 60, 0, "", CategoryMoral, PressureLow) // neutral → imperium
	if got := r.State().ProgressionLevel; got != 2 {
		t.Fatalf("expected progression 2, got %d", got)
	}
	r.Record("d3", 10, 0, "", CategoryMoral, PressureLow) // still imperium
	if got := r.State().ProgressionLevel; got != 2 {
		t.Errorf("expected no increment on re-evaluation, got %d", got)
	}
}

// --- Consequence deltas ---

// Consequence payloads move the totals but never the branch: branch
// transitions require a recorded decision.
func TestApplyConsequenceSkipsReevaluation(t *testing.T) {
	r := newTestRecorder()
	r.Record("d1", 1, 0, "", CategoryMoral, PressureLow)
	before := r.State().CurrentBranch

	r.ApplyConsequence(200)
	if got := r.State().CurrentBranch; got != before {
		t.Errorf("expected branch unchanged after consequence, got %s", got)
	}
	if r.State().ImperialLoyalty != 201 {
		t.Errorf("expected loyalty 201, got %d", r.State().ImperialLoyalty)
	}

	// The next decision picks the new totals up.
	r.Record("d2", 0, 0, "", CategoryMoral, PressureLow)
	if got := r.State().CurrentBranch; got != BranchImperium {
		t.Errorf("expected imperium after next decision, got %s", got)
	}
}

// --- Story tags ---

func TestUnlockStoryTagIdempotent(t *testing.T) {
	r := newTestRecorder()
	fired := 0
	r.OnTagUnlock(func(tag string) { fired++ })

	if !r.UnlockStoryTag("pilgrim_exodus") {
		t.Error("expected first unlock to report true")
	}
	if r.UnlockStoryTag("pilgrim_exodus") {
		t.Error("expected repeat unlock to report false")
	}
	if fired != 1 {
		t.Errorf("expected exactly 1 tag notification, got %d", fired)
	}
}

// --- Chains ---

func TestChainOpensOnHighPressure(t *testing.T) {
	r := newTestRecorder()
	opener := r.Record("h1", 0, 0, "", CategoryTactical, PressureHigh)

	if opener.ChainParent != "" {
		t.Error("expected chain opener to have no parent")
	}
	if got := r.State().OpenChainID; got != "h1" {
		t.Errorf("expected open chain h1, got %q", got)
	}
}

// A High opener plus four linked decisions is one full chain; the sixth
// decision starts a new chain with a new id.
func TestChainClosesAtFiveLinks(t *testing.T) {
	r := newTestRecorder()
	r.Record("h1", 0, 0, "", CategoryTactical, PressureHigh)

	for i := 0; i < 4; i++ {
		rec := r.Record("", 0, 0, "", CategoryMoral, PressureMedium)
		if rec.ChainParent != "h1" {
			t.Fatalf("link %d: expected parent h1, got %q", i+1, rec.ChainParent)
		}
	}
	if r.State().OpenChainID != "" {
		t.Error("expected chain closed after 5 linked decisions")
	}

	sixth := r.Record("m6", 0, 0, "", CategoryMoral, PressureMedium)
	if sixth.ChainParent != "" {
		t.Error("expected sixth decision to open its own chain")
	}
	if got := r.State().OpenChainID; got != "m6" {
		t.Errorf("expected new chain m6, got %q", got)
	}
}

func TestCriticalDecisionOpensFreshChain(t *testing.T) {
	r := newTestRecorder()
	r.Record("h1", 0, 0, "", CategoryTactical, PressureHigh)
	r.Record("m1", 0, 0, "", CategoryMoral, PressureMedium)

	crit := r.Record("c1", 0, 0, "", CategoryPolitical, PressureCritical)
	if crit.ChainParent != "" {
		t.Error("expected critical decision to open a fresh chain")
	}
	if got := r.State().OpenChainID; got != "c1" {
		t.Errorf("expected open chain c1, got %q", got)
	}
}

// --- Report ---

func TestGenerateReportMentionsBranch(t *testing.T) {
	r := newTestRecorder()
	r.Record("d1", 60, 0, "held the line", CategoryTactical, PressureHigh)

	report := r.GenerateReport()
	if !strings.Contains(report, string(BranchImperium)) {
		t.Error("expected report to mention the current branch")
	}
	if !strings.Contains(report, "held the line") {
		t.Error("expected report to include recent decision context")
	}
}

package session

import (
	"testing"

	"github.com/veyrin/outpost/internal/content"
	"github.com/veyrin/outpost/internal/encounter"
	"github.com/veyrin/outpost/internal/narrative"
	"github.com/veyrin/outpost/internal/policy"
)

func testContent(t *testing.T) *content.Content {
	t.Helper()
	c := &content.Content{
		Categories: []content.ShipCategory{
			{
				ID:   "freighter",
				Name: "Freighter",
				Policy: policy.FactionPolicy{
					AssociatedFactions: []string{"Guild"},
					AccessCodePrefixes: []string{"FLG-"},
					BaseSuspicion:      30,
				},
				BaseWeight:      1,
				CaptainPool:     []string{"cpt-a"},
				ManifestPool:    []string{"mf-1"},
				CodeLevels:      []policy.AccessLevel{policy.AccessMedium},
				ApproveScenario: "sc-arms",
				DenyScenario:    "sc-late",
			},
		},
		Captains: []content.Captain{
			{ID: "cpt-a", Name: "Captain A", Factions: []string{"Guild"}},
		},
		Manifests: []content.ManifestTemplate{
			{
				ID:                "mf-1",
				RequiredClearance: policy.ClearanceStandard,
				ValidFactions:     []string{"Guild"},
				DeclaredGoods:     "ore",
			},
		},
		DayRules: []policy.DayRule{
			{ID: "r1", Kind: policy.RuleCheckForContraband, Description: "Contraband sweep."},
			{ID: "r2", Kind: policy.RuleVerifyManifest, Description: "Cross-check entries."},
			{ID: "r3", Kind: policy.RuleForceInspection, Description: "Physical inspection."},
		},
		Scenarios: []content.Scenario{
			{ID: "sc-arms", Headline: "Seized crates traced through the gate", LoyaltyDelta: -6, SuspicionDelta: 8, DelayDays: 2},
			{ID: "sc-late", Headline: "Dockside rations run short", LoyaltyDelta: -2, SuspicionDelta: 1, FamilyImpact: true, DelayDays: 2},
		},
	}
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize content: %v", err)
	}
	return c
}

func validEncounter() *encounter.Encounter {
	return &encounter.Encounter{
		ID:         "enc-1",
		Day:        1,
		ShipName:   "Long Haul",
		CategoryID: "freighter",
		Faction:    "Guild",
		AccessCode: &policy.AccessCode{Level: policy.AccessMedium, Code: "FLG-0001"},
		Manifest: &policy.CargoManifest{
			RequiredClearance: policy.ClearanceStandard,
			ValidFactions:     []string{"Guild"},
			DeclaredGoods:     "ore",
		},
		Suspicion:     30,
		ShouldApprove: true,
	}
}

// --- Decisions ---

func TestDecideCorrectApproval(t *testing.T) {
	s := New(testContent(t), 1)
	rec := s.Decide(validEncounter(), true)

	if rec.ImperialPoints <= 0 || rec.InsurgentPoints != 0 {
		t.Errorf("expected imperial points for a correct approval, got %d/%d",
			rec.ImperialPoints, rec.InsurgentPoints)
	}
	if s.Ledger().Pending() != 0 {
		t.Error("expected no consequence for a correct call")
	}
	if s.Suspicion() != 0 {
		t.Errorf("expected suspicion unchanged, got %d", s.Suspicion())
	}
}

func TestDecideWrongDenialSchedulesConsequence(t *testing.T) {
	s := New(testContent(t), 1)
	rec := s.Decide(validEncounter(), false)

	if rec.InsurgentPoints <= 0 {
		t.Error("expected insurgent points for obstructing legitimate traffic")
	}
	if s.Ledger().Pending() != 1 {
		t.Fatalf("expected 1 scheduled consequence, got %d", s.Ledger().Pending())
	}
	if s.Suspicion() != 5 {
		t.Errorf("expected suspicion 5 after a wrong call, got %d", s.Suspicion())
	}
}

func TestDecideSynchronousBranchUpdate(t *testing.T) {
	s := New(testContent(t), 1)
	s.Decide(validEncounter(), true)

	// State is consistent before Decide returns: the first decision has
	// already moved the branch off the unset sentinel.
	if got := s.Recorder().State().ProgressionLevel; got != 1 {
		t.Errorf("expected progression 1 immediately after Decide, got %d", got)
	}
}

// --- Day advance ---

func TestAdvanceDayDeliversConsequence(t *testing.T) {
	s := New(testContent(t), 1)
	s.Decide(validEncounter(), false) // wrong: schedules sc-late for day 3

	loyaltyBefore := s.Recorder().State().ImperialLoyalty

	s.AdvanceDay() // day 2: nothing due
	if got := s.Recorder().State().ImperialLoyalty; got != loyaltyBefore {
		t.Fatalf("expected no delta before the trigger day, got %d", got)
	}

	dispatches := s.AdvanceDay() // day 3: sc-late fires
	if len(dispatches) != 1 {
		t.Fatalf("expected 1 dispatch on trigger day, got %d", len(dispatches))
	}
	if dispatches[0].Headline != "Dockside rations run short" {
		t.Errorf("unexpected headline %q", dispatches[0].Headline)
	}
	if got := s.Recorder().State().ImperialLoyalty; got != loyaltyBefore-2 {
		t.Errorf("expected loyalty delta applied once, got %d", got)
	}
	if !s.Recorder().State().UnlockedTags["family_marked"] {
		t.Error("expected family-impact tag unlocked")
	}

	// Re-advancing never re-delivers.
	if extra := s.AdvanceDay(); len(extra) != 0 {
		t.Errorf("expected no dispatches on day 4, got %d", len(extra))
	}
	if s.Ledger().Pending() != 0 {
		t.Errorf("expected empty pending set, got %d", s.Ledger().Pending())
	}
}

// --- Day rules ---

func TestActiveRulesDeterministic(t *testing.T) {
	s := New(testContent(t), 99)

	a := s.ActiveRules(4)
	b := s.ActiveRules(4)
	if len(a) != len(b) || len(a) != s.Content().Tuning.RulesPerDay {
		t.Fatalf("expected %d rules both times, got %d and %d",
			s.Content().Tuning.RulesPerDay, len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Error("expected identical rule selection for the same day")
		}
	}
}

func TestActiveRulesVaryBySeed(t *testing.T) {
	// Not a strict guarantee for every pair of seeds, but these two differ.
	a := New(testContent(t), 1).ActiveRules(4)
	b := New(testContent(t), 2).ActiveRules(4)
	same := len(a) == len(b)
	if same {
		for i := range a {
			if a[i].ID != b[i].ID {
				same = false
				break
			}
		}
	}
	if same {
		t.Skip("seed pair happened to collide; selection still keyed on seed")
	}
}

// --- Generation wiring ---

func TestNextEncounterUsesSessionDay(t *testing.T) {
	s := New(testContent(t), 1)
	s.AdvanceDay()
	enc := s.NextEncounter()
	if enc.Day != s.Day() {
		t.Errorf("expected encounter on day %d, got %d", s.Day(), enc.Day)
	}
}

func TestDetermineEndingFreshSession(t *testing.T) {
	s := New(testContent(t), 1)
	if got := s.DetermineEnding(); got == "" {
		t.Error("expected a defined ending for a fresh session")
	}
}

// --- Observation ---

func TestSnapshotReflectsState(t *testing.T) {
	s := New(testContent(t), 1)
	s.Decide(validEncounter(), true)

	snap := s.Snapshot()
	if snap.Day != 1 || snap.Decisions != 1 {
		t.Errorf("unexpected snapshot counters: day %d, decisions %d", snap.Day, snap.Decisions)
	}
	if snap.Branch != narrative.BranchNeutral {
		t.Errorf("expected neutral branch, got %s", snap.Branch)
	}
	if snap.ImperialLoyalty <= 0 {
		t.Errorf("expected positive loyalty after a correct approval, got %d", snap.ImperialLoyalty)
	}
	if snap.ProjectedEnding == "" {
		t.Error("expected a projected ending")
	}
}

func TestHistoryTailNewestLast(t *testing.T) {
	s := New(testContent(t), 1)
	for i := 0; i < 4; i++ {
		s.Decide(validEncounter(), true)
	}
	tail := s.HistoryTail(2)
	if len(tail) != 2 {
		t.Fatalf("expected 2 records, got %d", len(tail))
	}
	full := s.HistoryTail(0)
	if len(full) != 4 {
		t.Errorf("expected full history for n=0, got %d", len(full))
	}
	if tail[1].ID != full[3].ID {
		t.Error("expected tail to end at the newest record")
	}
}

// Observation reads must be safe against the simulation's mutation steps.
// Run with -race; an unsynchronized read through the snapshot methods fails
// the detector here.
func TestConcurrentObservation(t *testing.T) {
	s := New(testContent(t), 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			s.Snapshot()
			s.LedgerTokens()
			s.HistoryTail(5)
			s.Dispatches(5)
			s.Events()
			s.Day()
			s.Suspicion()
		}
	}()

	for i := 0; i < 200; i++ {
		s.Decide(validEncounter(), i%2 == 0)
	}
	s.AdvanceDay()
	<-done
}

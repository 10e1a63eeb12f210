// Package session owns the authoritative game state for one play-through
// and wires the decision core together: encounter generation, the decision
// recorder, the consequence ledger, and the dispatch feed. All mutation
// happens on discrete, synchronous steps — there is no background work.
package session

import (
	"log/slog"
	"math/rand"
	"sync"

	"github.com/veyrin/outpost/internal/content"
	"github.com/veyrin/outpost/internal/encounter"
	"github.com/veyrin/outpost/internal/entropy"
	"github.com/veyrin/outpost/internal/ledger"
	"github.com/veyrin/outpost/internal/narrative"
	"github.com/veyrin/outpost/internal/news"
	"github.com/veyrin/outpost/internal/policy"
)

// Event is a notable occurrence at the gate, kept for display and audit.
type Event struct {
	Day         int    `json:"day"`
	Description string `json:"description"`
	Category    string `json:"category"` // "decision", "consequence", "story"
}

const eventCap = 1000

// Session is the one authoritative instance per play-through.
type Session struct {
	// mu guards step boundaries so observation reads see consistent state.
	// Steps themselves are single-threaded and non-reentrant by contract.
	mu sync.Mutex

	content    *content.Content
	rng        *entropy.Source
	classifier *encounter.Classifier
	recorder   *narrative.Recorder
	tokens     *ledger.Ledger
	feed       *news.Feed

	day       int
	suspicion int
	events    []Event
}

// New starts a fresh session on day 1 with the given seed.
func New(c *content.Content, seed int64) *Session {
	return build(c, entropy.NewSource(seed), narrative.NewState(), nil, 1, 0)
}

// Resume reconstructs a session from persisted state: the narrative state,
// the token ledger, the day counter, and the random stream position.
func Resume(c *content.Content, seed int64, draws uint64, day, suspicion int, state *narrative.State, tokens []ledger.Token) *Session {
	s := build(c, entropy.Restore(seed, draws), state, tokens, day, suspicion)
	slog.Info("session resumed",
		"day", day,
		"decisions", len(state.History),
		"pending_tokens", s.tokens.Pending(),
	)
	return s
}

func build(c *content.Content, rng *entropy.Source, state *narrative.State, tokens []ledger.Token, day, suspicion int) *Session {
	s := &Session{
		content:   c,
		rng:       rng,
		day:       day,
		suspicion: suspicion,
		feed:      &news.Feed{},
	}
	s.recorder = narrative.NewRecorder(state, narrative.Thresholds{
		NeutralBand:                c.Tuning.NeutralBand,
		ImperialLoyaltyThreshold:   c.Tuning.ImperialLoyaltyThreshold,
		InsurgentSympathyThreshold: c.Tuning.InsurgentSympathyThreshold,
		ComplexResistanceThreshold: c.Tuning.ComplexResistanceThreshold,
	})
	s.tokens = ledger.New(s.deliverConsequence)
	if tokens != nil {
		s.tokens.Restore(tokens)
	}
	s.classifier = encounter.NewClassifier(c, rng, s, rng.Seed())
	return s
}

// ActiveRules returns the gate directives in force on a day. Deterministic
// for a fixed seed and day, independent of call order, so re-evaluating a
// past day reproduces its rules.
func (s *Session) ActiveRules(day int) []policy.DayRule {
	all := s.content.DayRules
	n := s.content.Tuning.RulesPerDay
	if n >= len(all) {
		out := make([]policy.DayRule, len(all))
		copy(out, all)
		return out
	}

	// A throwaway generator keyed on (seed, day); the session's shared
	// source is never consumed here.
	dayRng := rand.New(rand.NewSource(s.rng.Seed()*1_000_003 + int64(day)))
	idx := dayRng.Perm(len(all))[:n]
	out := make([]policy.DayRule, 0, n)
	for _, i := range idx {
		out = append(out, all[i])
	}
	return out
}

// NextEncounter generates the next ship arrival for the current day.
func (s *Session) NextEncounter() *encounter.Encounter {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.recorder.State()
	return s.classifier.Generate(s.day, st.ImperialLoyalty, st.InsurgentSympathy)
}

// AdvanceDay moves to the next day and processes every consequence token
// that has come due. Once begun it runs to completion — no partial-day
// rollback. Returns the new day's dispatches.
func (s *Session) AdvanceDay() []news.Dispatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.day++
	fired := s.tokens.ProcessDay(s.day)

	st := s.recorder.State()
	slog.Info("day advanced",
		"day", s.day,
		"consequences", len(fired),
		"loyalty", st.ImperialLoyalty,
		"sympathy", st.InsurgentSympathy,
		"suspicion", s.suspicion,
		"branch", string(st.CurrentBranch),
	)
	return s.feed.ForDay(s.day)
}

// deliverConsequence is the ledger sink: it applies the payload's deltas,
// unlocks any scenario tag, and publishes the dispatch. Runs inside
// AdvanceDay's step; it must not call back into the ledger.
func (s *Session) deliverConsequence(tok ledger.Token) {
	s.recorder.ApplyConsequence(tok.Payload.LoyaltyDelta)
	s.suspicion += tok.Payload.SuspicionDelta
	if s.suspicion < 0 {
		s.suspicion = 0
	}

	headline := tok.Payload.Note
	body := ""
	if sc := s.content.ScenarioByID(tok.Payload.ScenarioID); sc != nil {
		headline = sc.Headline
		body = sc.Body
		if sc.UnlockTag != "" {
			s.recorder.UnlockStoryTag(sc.UnlockTag)
		}
	}
	if tok.Payload.FamilyImpact {
		s.recorder.UnlockStoryTag("family_marked")
	}

	s.feed.Publish(news.Dispatch{
		Day:      s.day,
		Category: "consequence",
		Headline: headline,
		Body:     body,
	})
	s.addEvent("consequence", headline)
}

// DetermineEnding classifies the session's final outcome.
func (s *Session) DetermineEnding() narrative.EndingType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return narrative.DetermineEnding(s.recorder.State())
}

func (s *Session) addEvent(category, description string) {
	s.events = append(s.events, Event{Day: s.day, Description: description, Category: category})
	if len(s.events) > eventCap {
		s.events = s.events[len(s.events)-eventCap:]
	}
}

// Snapshot is a consistent point-in-time view of the session, taken on a
// step boundary.
type Snapshot struct {
	Day               int                  `json:"day"`
	Suspicion         int                  `json:"suspicion"`
	ImperialLoyalty   int                  `json:"imperial_loyalty"`
	InsurgentSympathy int                  `json:"insurgent_sympathy"`
	Branch            narrative.Branch     `json:"branch"`
	Progression       int                  `json:"progression"`
	Decisions         int                  `json:"decisions"`
	PendingTokens     int                  `json:"pending_tokens"`
	ProjectedEnding   narrative.EndingType `json:"projected_ending"`
}

// Snapshot returns a copy of the session's top-level state. Safe to call
// concurrently with the simulation steps; reads block until the current step
// finishes.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.recorder.State()
	return Snapshot{
		Day:               s.day,
		Suspicion:         s.suspicion,
		ImperialLoyalty:   st.ImperialLoyalty,
		InsurgentSympathy: st.InsurgentSympathy,
		Branch:            st.CurrentBranch,
		Progression:       st.ProgressionLevel,
		Decisions:         len(st.History),
		PendingTokens:     s.tokens.Pending(),
		ProjectedEnding:   narrative.DetermineEnding(st),
	}
}

// HistoryTail returns a copy of the newest n decisions, newest last.
// n <= 0 returns the full history.
func (s *Session) HistoryTail(n int) []narrative.DecisionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist := s.recorder.State().History
	if n <= 0 || n > len(hist) {
		n = len(hist)
	}
	out := make([]narrative.DecisionRecord, n)
	copy(out, hist[len(hist)-n:])
	return out
}

// LedgerTokens returns a copy of the full token audit log.
func (s *Session) LedgerTokens() []ledger.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.Tokens()
}

// Dispatches returns a copy of the newest n feed dispatches.
func (s *Session) Dispatches(n int) []news.Dispatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.Front(n)
}

// Report renders the narrative diagnostic report on a step boundary.
func (s *Session) Report() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.GenerateReport()
}

// Day returns the current day counter.
func (s *Session) Day() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

// Suspicion returns the current suspicion meter.
func (s *Session) Suspicion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspicion
}

// Events returns a copy of the recent event log.
func (s *Session) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Accessors for the simulation goroutine's own collaborators (persistence,
// CLI). These hand out live structures; concurrent observers go through the
// snapshot methods above instead.

func (s *Session) Seed() int64                   { return s.rng.Seed() }
func (s *Session) Draws() uint64                 { return s.rng.Draws() }
func (s *Session) Recorder() *narrative.Recorder { return s.recorder }
func (s *Session) Ledger() *ledger.Ledger        { return s.tokens }
func (s *Session) Feed() *news.Feed              { return s.feed }
func (s *Session) Content() *content.Content     { return s.content }

// Package ledger schedules delayed narrative consequences tied to past
// decisions. The ledger is append-only: tokens are marked triggered during a
// day advance but never deleted, so the full record stays auditable.
package ledger

import (
	"log/slog"

	"github.com/google/uuid"
)

// Payload is the consequence delivered when a token triggers. The ledger
// never resolves the scenario reference itself; a missing scenario is the
// lookup collaborator's problem.
type Payload struct {
	ScenarioID     string `json:"scenario_id"`
	LoyaltyDelta   int    `json:"loyalty_delta"`
	SuspicionDelta int    `json:"suspicion_delta"`
	FamilyImpact   bool   `json:"family_impact"`
	Note           string `json:"note,omitempty"`
}

// Token is one scheduled consequence. Created at decision time, mutated
// exactly once (marked triggered), retained indefinitely.
type Token struct {
	ID         string  `json:"id"`
	DecisionID string  `json:"decision_id"`
	DayCreated int     `json:"day_created"`
	TriggerDay int     `json:"trigger_day"`
	Payload    Payload `json:"payload"`
	Triggered  bool    `json:"triggered"`
}

// Sink receives each triggered token exactly once.
type Sink func(Token)

// Ledger holds the session's consequence tokens.
type Ledger struct {
	tokens []*Token
	sink   Sink
}

// New creates an empty ledger delivering to the given sink. A nil sink is
// allowed; triggered tokens are then only marked.
func New(sink Sink) *Ledger {
	return &Ledger{sink: sink}
}

// AddToken schedules a consequence for currentDay + delayDays.
func (l *Ledger) AddToken(decisionID string, currentDay, delayDays int, p Payload) Token {
	tok := &Token{
		ID:         uuid.NewString(),
		DecisionID: decisionID,
		DayCreated: currentDay,
		TriggerDay: currentDay + delayDays,
		Payload:    p,
	}
	l.tokens = append(l.tokens, tok)
	slog.Debug("consequence token scheduled",
		"token", tok.ID,
		"decision", decisionID,
		"trigger_day", tok.TriggerDay,
		"scenario", p.ScenarioID,
	)
	return *tok
}

// ProcessDay triggers every untriggered token whose trigger day has arrived
// and delivers its payload exactly once. Repeated calls for the same or an
// earlier day re-deliver nothing. Once begun, all eligible tokens for the
// day are processed to completion. Non-reentrant: the sink must not call
// back into ProcessDay.
func (l *Ledger) ProcessDay(currentDay int) []Token {
	var fired []Token
	for _, tok := range l.tokens {
		if tok.Triggered || tok.TriggerDay > currentDay {
			continue
		}
		tok.Triggered = true
		fired = append(fired, *tok)
		if l.sink != nil {
			l.sink(*tok)
		}
	}
	if len(fired) > 0 {
		slog.Info("consequence tokens triggered", "day", currentDay, "count", len(fired))
	}
	return fired
}

// Pending counts tokens that have not yet triggered.
func (l *Ledger) Pending() int {
	n := 0
	for _, tok := range l.tokens {
		if !tok.Triggered {
			n++
		}
	}
	return n
}

// Tokens returns a copy of the full audit log.
func (l *Ledger) Tokens() []Token {
	out := make([]Token, len(l.tokens))
	for i, tok := range l.tokens {
		out[i] = *tok
	}
	return out
}

// Restore reloads tokens from persistence, preserving order and triggered
// flags.
func (l *Ledger) Restore(tokens []Token) {
	l.tokens = make([]*Token, len(tokens))
	for i := range tokens {
		t := tokens[i]
		l.tokens[i] = &t
	}
}

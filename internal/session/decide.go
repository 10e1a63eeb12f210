package session

import (
	"fmt"
	"log/slog"

	"github.com/veyrin/outpost/internal/encounter"
	"github.com/veyrin/outpost/internal/ledger"
	"github.com/veyrin/outpost/internal/narrative"
)

// Decide records the player's verdict on an encounter. Fully synchronous:
// the narrative state, chain bookkeeping, and any scheduled consequence are
// consistent before it returns.
func (s *Session) Decide(enc *encounter.Encounter, approve bool) narrative.DecisionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	correct := approve == enc.ShouldApprove
	category := categorize(enc)
	pressure := grade(enc)
	imperial, insurgent := s.points(category, approve, enc.ShouldApprove)

	verb := "denied"
	if approve {
		verb = "approved"
	}
	context := fmt.Sprintf("%s %s (%s) at the gate", verb, enc.ShipName, enc.CategoryID)
	if !enc.ShouldApprove {
		context += fmt.Sprintf(" [%s]", enc.InvalidReason)
	}

	rec := s.recorder.Record("", imperial, insurgent, context, category, pressure)

	if !correct {
		// Wrong calls draw attention from the watch office.
		s.suspicion += 5
		s.scheduleConsequence(rec.ID, enc, approve)
	}

	if enc.IsStoryShip && approve {
		if s.recorder.UnlockStoryTag(enc.StoryTag) {
			s.addEvent("story", fmt.Sprintf("story thread opened: %s", enc.StoryTag))
		}
	}

	s.addEvent("decision", context)
	slog.Info("decision recorded",
		"day", s.day,
		"ship", enc.ShipName,
		"approved", approve,
		"correct", correct,
		"category", string(category),
		"pressure", narrative.PressureName[pressure],
	)
	return rec
}

// scheduleConsequence parks a delayed effect for a wrong call, when the
// encounter's category configures one for this outcome.
func (s *Session) scheduleConsequence(decisionID string, enc *encounter.Encounter, approve bool) {
	var ref string
	for i := range s.content.Categories {
		if s.content.Categories[i].ID == enc.CategoryID {
			if approve {
				ref = s.content.Categories[i].ApproveScenario
			} else {
				ref = s.content.Categories[i].DenyScenario
			}
			break
		}
	}
	if ref == "" {
		return
	}
	sc := s.content.ScenarioByID(ref)
	if sc == nil {
		return
	}
	s.tokens.AddToken(decisionID, s.day, sc.DelayDays, ledger.Payload{
		ScenarioID:     sc.ID,
		LoyaltyDelta:   sc.LoyaltyDelta,
		SuspicionDelta: sc.SuspicionDelta,
		FamilyImpact:   sc.FamilyImpact,
		Note:           sc.Headline,
	})
}

// points maps a verdict against ground truth onto imperial/insurgent point
// deltas. Enforcing the rules earns imperial loyalty; letting violators
// through — or obstructing legitimate traffic — feeds insurgent sympathy.
func (s *Session) points(category narrative.Category, approve, shouldApprove bool) (int, int) {
	weight := s.content.Tuning.PointWeights[string(category)]
	if weight == 0 {
		weight = 5
	}
	half := (weight + 1) / 2

	switch {
	case !approve && !shouldApprove:
		return weight, 0
	case approve && shouldApprove:
		return half, 0
	case approve && !shouldApprove:
		return 0, weight
	default: // denied a legitimate ship
		return 0, half
	}
}

// categorize assigns the decision's narrative domain from what the
// encounter actually carried.
func categorize(enc *encounter.Encounter) narrative.Category {
	switch {
	case enc.IsStoryShip:
		return narrative.CategoryPolitical
	case enc.Manifest != nil && enc.Manifest.HasContraband:
		return narrative.CategoryTactical
	case enc.Manifest != nil && enc.Manifest.HasFalseEntries:
		return narrative.CategoryFinancial
	default:
		return narrative.CategoryMoral
	}
}

// grade assigns decision pressure from the encounter's suspicion level.
func grade(enc *encounter.Encounter) narrative.Pressure {
	switch {
	case enc.IsStoryShip:
		return narrative.PressureCritical
	case enc.Suspicion >= 60:
		return narrative.PressureHigh
	case enc.Suspicion >= 30:
		return narrative.PressureMedium
	default:
		return narrative.PressureLow
	}
}

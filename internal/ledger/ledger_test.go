package ledger

import "testing"

// --- Scheduling ---

func TestAddTokenTriggerDay(t *testing.T) {
	l := New(nil)
	tok := l.AddToken("d1", 5, 3, Payload{ScenarioID: "sc-1"})

	if tok.TriggerDay != 8 {
		t.Errorf("expected trigger day 8, got %d", tok.TriggerDay)
	}
	if tok.Triggered {
		t.Error("expected new token untriggered")
	}
	if tok.ID == "" {
		t.Error("expected generated token id")
	}
}

// --- Delivery ---

// A token added with a 3-day delay on day 5 stays silent on day 7, fires
// exactly once on day 8, and never re-fires.
func TestProcessDayAtMostOnce(t *testing.T) {
	var delivered []Token
	l := New(func(tok Token) { delivered = append(delivered, tok) })
	l.AddToken("d1", 5, 3, Payload{ScenarioID: "sc-1"})

	if fired := l.ProcessDay(7); len(fired) != 0 {
		t.Fatalf("expected nothing on day 7, got %d", len(fired))
	}
	if fired := l.ProcessDay(8); len(fired) != 1 {
		t.Fatalf("expected 1 trigger on day 8, got %d", len(fired))
	}
	if fired := l.ProcessDay(8); len(fired) != 0 {
		t.Fatalf("expected no re-delivery on repeated day 8, got %d", len(fired))
	}
	if fired := l.ProcessDay(6); len(fired) != 0 {
		t.Fatalf("expected no delivery for an earlier day, got %d", len(fired))
	}
	if len(delivered) != 1 {
		t.Errorf("expected sink called exactly once, got %d", len(delivered))
	}
}

func TestProcessDayCatchesUpLateTokens(t *testing.T) {
	l := New(nil)
	l.AddToken("d1", 1, 1, Payload{})
	l.AddToken("d2", 1, 2, Payload{})

	// Jumping past both trigger days delivers both in one pass.
	if fired := l.ProcessDay(10); len(fired) != 2 {
		t.Errorf("expected both overdue tokens, got %d", len(fired))
	}
}

// --- Audit log ---

func TestTokensNeverDeleted(t *testing.T) {
	l := New(nil)
	l.AddToken("d1", 1, 1, Payload{})
	l.ProcessDay(5)

	toks := l.Tokens()
	if len(toks) != 1 {
		t.Fatalf("expected triggered token retained, got %d", len(toks))
	}
	if !toks[0].Triggered {
		t.Error("expected token marked triggered")
	}
	if l.Pending() != 0 {
		t.Errorf("expected 0 pending, got %d", l.Pending())
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	l := New(nil)
	l.AddToken("d1", 1, 2, Payload{ScenarioID: "sc-1"})
	l.AddToken("d2", 1, 9, Payload{ScenarioID: "sc-2"})
	l.ProcessDay(3)

	restored := New(nil)
	restored.Restore(l.Tokens())

	if restored.Pending() != 1 {
		t.Fatalf("expected 1 pending after restore, got %d", restored.Pending())
	}
	// The already-triggered token must not fire again.
	if fired := restored.ProcessDay(3); len(fired) != 0 {
		t.Errorf("expected no re-delivery after restore, got %d", len(fired))
	}
	if fired := restored.ProcessDay(10); len(fired) != 1 {
		t.Errorf("expected the pending token to fire, got %d", len(fired))
	}
}

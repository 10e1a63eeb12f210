package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veyrin/outpost/internal/content"
	"github.com/veyrin/outpost/internal/narrative"
	"github.com/veyrin/outpost/internal/session"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	sess := session.New(content.Seed(), 7)
	sess.Decide(sess.NextEncounter(), true)
	sess.Decide(sess.NextEncounter(), false)
	srv := &Server{Session: sess}
	return srv.Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestStatusEndpoint(t *testing.T) {
	h := testHandler(t)
	w := get(t, h, "/api/v1/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var snap session.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Day != 1 || snap.Decisions != 2 {
		t.Errorf("unexpected snapshot: day %d, decisions %d", snap.Day, snap.Decisions)
	}
	if snap.ProjectedEnding == "" {
		t.Error("expected a projected ending")
	}
}

func TestHistoryEndpointLimit(t *testing.T) {
	h := testHandler(t)
	w := get(t, h, "/api/v1/history?limit=1")
	if w.Code != http.StatusOK {
		t.Fatalf("history: got %d", w.Code)
	}
	var hist []narrative.DecisionRecord
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hist) != 1 {
		t.Errorf("expected 1 record with limit=1, got %d", len(hist))
	}
}

func TestReportEndpointRateLimited(t *testing.T) {
	h := testHandler(t)
	for i := 0; i < 30; i++ {
		if w := get(t, h, "/api/v1/report"); w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i+1, w.Code)
		}
	}
	if w := get(t, h, "/api/v1/report"); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 past the limit, got %d", w.Code)
	}
}

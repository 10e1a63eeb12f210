package policy

import "strings"

// RuleKind identifies a gate directive's mechanical check.
type RuleKind string

const (
	RuleCheckForContraband RuleKind = "check_for_contraband"
	RuleVerifyManifest     RuleKind = "verify_manifest"
	RuleForceInspection    RuleKind = "force_inspection"
	RuleKeywordWatch       RuleKind = "keyword_watch" // no mechanical check, keywords only
)

// DayRule is one gate directive active for the current day.
type DayRule struct {
	ID          string   `json:"id" yaml:"id"`
	Kind        RuleKind `json:"kind" yaml:"kind"`
	Description string   `json:"description" yaml:"description"`

	// Keywords to scan manifests for. When empty, keywords are derived
	// from the description (see ScanKeywords).
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// ruleStopwords are description words that never become scan keywords.
var ruleStopwords = map[string]bool{
	"all": true, "and": true, "any": true, "are": true, "been": true,
	"directive": true, "every": true, "for": true, "from": true, "gate": true,
	"have": true, "inspect": true, "manifest": true, "manifests": true,
	"must": true, "not": true, "report": true, "ship": true, "ships": true,
	"that": true, "the": true, "their": true, "this": true, "today": true,
	"until": true, "verify": true, "with": true,
}

// ScanKeywords returns the rule's manifest-scan keywords: the configured
// list when present, otherwise significant words of the description
// (lowercased, length >= 4, stopwords removed).
func (r *DayRule) ScanKeywords() []string {
	if len(r.Keywords) > 0 {
		out := make([]string, len(r.Keywords))
		for i, k := range r.Keywords {
			out[i] = strings.ToLower(k)
		}
		return out
	}
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(r.Description), func(c rune) bool {
		return c < 'a' || c > 'z'
	}) {
		if len(w) >= 4 && !ruleStopwords[w] {
			out = append(out, w)
		}
	}
	return out
}

// Reason identifies the first check a manifest failed.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonMissing    Reason = "missing manifest"
	ReasonFaction    Reason = "faction not authorized"
	ReasonDay        Reason = "outside valid day window"
	ReasonClearance  Reason = "insufficient clearance"
	ReasonDayRule    Reason = "day rule violation"
	ReasonAccessCode Reason = "invalid access code"
)

// Verdict is the outcome of manifest evaluation.
type Verdict struct {
	Valid  bool
	Reason Reason
}

// EvaluateManifest runs the four manifest checks in fixed priority order
// (faction, day, clearance, day rules) and returns the first failure.
// A nil manifest fails immediately.
func EvaluateManifest(m *CargoManifest, shipFaction string, code *AccessCode, day int, rules []DayRule) Verdict {
	if m == nil {
		return Verdict{Valid: false, Reason: ReasonMissing}
	}
	if !m.AuthorizesFaction(shipFaction) {
		return Verdict{Valid: false, Reason: ReasonFaction}
	}
	if !m.ValidOnDay(day) {
		return Verdict{Valid: false, Reason: ReasonDay}
	}
	if !clearanceSufficient(m, code) {
		return Verdict{Valid: false, Reason: ReasonClearance}
	}
	for i := range rules {
		if !compliesWithRule(m, &rules[i]) {
			return Verdict{Valid: false, Reason: ReasonDayRule}
		}
	}
	return Verdict{Valid: true, Reason: ReasonNone}
}

// Validate reports whether the manifest passes every check. This is the
// conjunction the encounter verdict is built on: any single failing check
// fails the whole manifest.
func Validate(m *CargoManifest, shipFaction string, code *AccessCode, day int, rules []DayRule) bool {
	return EvaluateManifest(m, shipFaction, code, day, rules).Valid
}

// clearanceSufficient checks the manifest's required clearance against the
// maximum the access code permits. No code restricts the ship to Standard.
func clearanceSufficient(m *CargoManifest, code *AccessCode) bool {
	max := ClearanceStandard
	if code != nil {
		max = MaxClearanceFor(code.Level)
	}
	return ClearanceRank[m.RequiredClearance] <= ClearanceRank[max]
}

// compliesWithRule evaluates one active directive against the manifest.
// Rules are conjunctive; there is no partial or severity scoring.
func compliesWithRule(m *CargoManifest, r *DayRule) bool {
	switch r.Kind {
	case RuleCheckForContraband:
		if m.HasContraband {
			return false
		}
	case RuleVerifyManifest:
		if m.HasFalseEntries {
			return false
		}
	case RuleForceInspection:
		// Inspection only catches contraband that is easy to find.
		if m.HasContraband && m.EasilyDetectable {
			return false
		}
	}

	// Every directive's keywords are scanned against the manifest text.
	// Naive substring match: "no betrayal" in a manifest note still trips
	// a "betrayal" watch. That behavior is load-bearing; do not add
	// negation or stemming handling.
	for _, kw := range r.ScanKeywords() {
		for _, field := range m.TextFields() {
			if strings.Contains(strings.ToLower(field), kw) {
				return false
			}
		}
	}
	return true
}

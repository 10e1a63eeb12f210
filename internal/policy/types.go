// Package policy holds the static compatibility and validation rules that
// decide whether a ship encounter is legitimate: faction authorization,
// clearance ordering, day windows, and active gate directives.
package policy

import "strings"

// ClearanceLevel is the ordinal access restriction on a cargo manifest.
type ClearanceLevel string

const (
	ClearanceStandard   ClearanceLevel = "standard"
	ClearanceRestricted ClearanceLevel = "restricted"
	ClearanceClassified ClearanceLevel = "classified"
)

// ClearanceRank maps clearance to a comparable integer. Standard < Restricted < Classified.
var ClearanceRank = map[ClearanceLevel]int{
	ClearanceStandard:   0,
	ClearanceRestricted: 1,
	ClearanceClassified: 2,
}

// AccessLevel is the ordinal permission tier carried by a ship's credential.
type AccessLevel string

const (
	AccessLow          AccessLevel = "low"
	AccessMedium       AccessLevel = "medium"
	AccessHigh         AccessLevel = "high"
	AccessUnrestricted AccessLevel = "unrestricted"
)

// MaxClearanceFor returns the highest manifest clearance an access level
// permits. Monotonic: each level's permitted set contains the previous one's.
func MaxClearanceFor(level AccessLevel) ClearanceLevel {
	switch level {
	case AccessLow:
		return ClearanceStandard
	case AccessMedium:
		return ClearanceRestricted
	case AccessHigh, AccessUnrestricted:
		return ClearanceClassified
	default:
		// Unknown levels permit nothing above Standard.
		return ClearanceStandard
	}
}

// AccessCode is the credential presented by an arriving ship.
type AccessCode struct {
	Level    AccessLevel `json:"level" yaml:"level"`
	Code     string      `json:"code" yaml:"code"`
	FirstDay int         `json:"first_day" yaml:"first_day"` // 0 = open-ended
	LastDay  int         `json:"last_day" yaml:"last_day"`   // 0 = open-ended
}

// ValidOnDay reports whether the code's validity window covers the given day.
func (c *AccessCode) ValidOnDay(day int) bool {
	if c == nil {
		return false
	}
	if c.FirstDay > 0 && day < c.FirstDay {
		return false
	}
	if c.LastDay > 0 && day > c.LastDay {
		return false
	}
	return true
}

// CargoManifest describes what a ship claims to be carrying.
type CargoManifest struct {
	RequiredClearance ClearanceLevel `json:"required_clearance" yaml:"required_clearance"`
	ValidFactions     []string       `json:"valid_factions" yaml:"valid_factions"`
	FirstDay          int            `json:"first_day" yaml:"first_day"` // 0 = open-ended
	LastDay           int            `json:"last_day" yaml:"last_day"`   // 0 = open-ended

	HasContraband    bool `json:"has_contraband" yaml:"has_contraband"`
	HasFalseEntries  bool `json:"has_false_entries" yaml:"has_false_entries"`
	EasilyDetectable bool `json:"easily_detectable" yaml:"easily_detectable"`

	// Free-text fields scanned for directive keywords.
	DeclaredGoods string `json:"declared_goods" yaml:"declared_goods"`
	Notes         string `json:"notes" yaml:"notes"`
	Origin        string `json:"origin" yaml:"origin"`
}

// ValidOnDay reports whether the manifest's day window covers the given day.
func (m *CargoManifest) ValidOnDay(day int) bool {
	if m.FirstDay > 0 && day < m.FirstDay {
		return false
	}
	if m.LastDay > 0 && day > m.LastDay {
		return false
	}
	return true
}

// AuthorizesFaction reports whether the manifest declares the faction as a
// valid carrier. Case-insensitive exact match.
func (m *CargoManifest) AuthorizesFaction(faction string) bool {
	for _, f := range m.ValidFactions {
		if strings.EqualFold(f, faction) {
			return true
		}
	}
	return false
}

// TextFields returns the manifest's scannable free-text fields.
func (m *CargoManifest) TextFields() []string {
	return []string{m.DeclaredGoods, m.Notes, m.Origin}
}

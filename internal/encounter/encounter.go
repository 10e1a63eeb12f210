// Package encounter generates ship arrivals and computes their ground-truth
// verdict from the faction and manifest policies.
package encounter

import "github.com/veyrin/outpost/internal/policy"

// Encounter is one generated ship arrival. Created per generation request
// and discarded once decided; the decision itself is what persists.
type Encounter struct {
	ID  string `json:"id"`
	Day int    `json:"day"`

	ShipName   string `json:"ship_name"`
	CategoryID string `json:"category_id"`
	Faction    string `json:"faction"`

	CaptainID      string `json:"captain_id"`
	CaptainName    string `json:"captain_name"`
	CaptainFaction string `json:"captain_faction"`

	AccessCode *policy.AccessCode    `json:"access_code,omitempty"`
	Manifest   *policy.CargoManifest `json:"manifest"`

	IsStoryShip bool   `json:"is_story_ship"`
	StoryTag    string `json:"story_tag,omitempty"`

	// Suspicion is the category base plus manifest contributions, used by
	// the session to grade decision pressure.
	Suspicion int `json:"suspicion"`

	// Ground truth, computed at generation time.
	ShouldApprove bool          `json:"should_approve"`
	InvalidReason policy.Reason `json:"invalid_reason,omitempty"`
}

// Package content defines the game's static definitions — ship categories,
// captains, manifest templates, gate directives, consequence scenarios, and
// narrative tuning — as plain immutable value objects built by an explicit
// loader rather than runtime-discovered assets.
package content

import (
	"fmt"

	"github.com/veyrin/outpost/internal/policy"
)

// ShipCategory is one class of traffic the gate sees, with its faction
// policy and generation parameters.
type ShipCategory struct {
	ID     string               `yaml:"id"`
	Name   string               `yaml:"name"`
	Policy policy.FactionPolicy `yaml:"policy"`

	// BaseWeight sets how often this category shows up relative to others.
	BaseWeight float64 `yaml:"base_weight"`

	// CaptainPool lists candidate captain IDs in declaration order; the
	// generator takes the first compatible match, ties broken by order.
	CaptainPool    []string `yaml:"captain_pool"`
	DefaultCaptain string   `yaml:"default_captain"`

	ManifestPool []string `yaml:"manifest_pool"`
	ShipNames    []string `yaml:"ship_names"`

	// Access codes issued to this category. ForgedCodeChance is the odds a
	// generated code carries a prefix outside the category's valid set.
	CodeLevels       []policy.AccessLevel `yaml:"code_levels"`
	ForgedCodeChance float64              `yaml:"forged_code_chance"`

	// Story content. StoryGate is the earliest day this category may emit
	// its story ship (0 = never).
	StoryGate int    `yaml:"story_gate"`
	StoryTag  string `yaml:"story_tag"`

	// Consequence scenarios scheduled when a ship of this category is
	// approved or denied. Empty = no delayed consequence.
	ApproveScenario string `yaml:"approve_scenario"`
	DenyScenario    string `yaml:"deny_scenario"`
}

// Captain is a candidate commander. Faction order is load-bearing: the
// generator tests factions in declaration order.
type Captain struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Factions []string `yaml:"factions"`
}

// ManifestTemplate is the recipe a concrete cargo manifest is rolled from.
type ManifestTemplate struct {
	ID                string                `yaml:"id"`
	RequiredClearance policy.ClearanceLevel `yaml:"required_clearance"`
	ValidFactions     []string              `yaml:"valid_factions"`
	FirstDay          int                   `yaml:"first_day"`
	LastDay           int                   `yaml:"last_day"`

	DeclaredGoods string `yaml:"declared_goods"`
	Notes         string `yaml:"notes"`
	Origin        string `yaml:"origin"`

	ContrabandChance float64 `yaml:"contraband_chance"`
	FalseEntryChance float64 `yaml:"false_entry_chance"`
	DetectableChance float64 `yaml:"detectable_chance"`
}

// Scenario is a delayed narrative consequence referenced by token payloads.
type Scenario struct {
	ID       string `yaml:"id"`
	Headline string `yaml:"headline"`
	Body     string `yaml:"body"`

	LoyaltyDelta   int  `yaml:"loyalty_delta"`
	SuspicionDelta int  `yaml:"suspicion_delta"`
	FamilyImpact   bool `yaml:"family_impact"`

	DelayDays int    `yaml:"delay_days"`
	UnlockTag string `yaml:"unlock_tag"`
}

// Tuning holds the narrative thresholds and session knobs.
type Tuning struct {
	NeutralBand                int `yaml:"neutral_band"`
	ImperialLoyaltyThreshold   int `yaml:"imperial_loyalty_threshold"`
	InsurgentSympathyThreshold int `yaml:"insurgent_sympathy_threshold"`
	ComplexResistanceThreshold int `yaml:"complex_resistance_threshold"`

	RulesPerDay int `yaml:"rules_per_day"`

	// Base point magnitude per decision category.
	PointWeights map[string]int `yaml:"point_weights"`
}

// Content is the full loaded definition set. Never mutated after Load/Seed.
type Content struct {
	Categories []ShipCategory     `yaml:"categories"`
	Captains   []Captain          `yaml:"captains"`
	Manifests  []ManifestTemplate `yaml:"manifests"`
	DayRules   []policy.DayRule   `yaml:"day_rules"`
	Scenarios  []Scenario         `yaml:"scenarios"`
	Tuning     Tuning             `yaml:"tuning"`

	captainIndex  map[string]*Captain
	manifestIndex map[string]*ManifestTemplate
	scenarioIndex map[string]*Scenario
}

// CaptainByID returns a captain definition, or nil when unknown.
func (c *Content) CaptainByID(id string) *Captain { return c.captainIndex[id] }

// ManifestByID returns a manifest template, or nil when unknown.
func (c *Content) ManifestByID(id string) *ManifestTemplate { return c.manifestIndex[id] }

// ScenarioByID returns a consequence scenario, or nil when unknown.
func (c *Content) ScenarioByID(id string) *Scenario { return c.scenarioIndex[id] }

// Finalize applies tuning defaults, builds the lookup indexes, and checks
// referential integrity. Must be called once before a content set is used.
func (c *Content) Finalize() error {
	c.applyDefaults()
	c.buildIndexes()
	return c.validate()
}

func (c *Content) buildIndexes() {
	c.captainIndex = make(map[string]*Captain, len(c.Captains))
	for i := range c.Captains {
		c.captainIndex[c.Captains[i].ID] = &c.Captains[i]
	}
	c.manifestIndex = make(map[string]*ManifestTemplate, len(c.Manifests))
	for i := range c.Manifests {
		c.manifestIndex[c.Manifests[i].ID] = &c.Manifests[i]
	}
	c.scenarioIndex = make(map[string]*Scenario, len(c.Scenarios))
	for i := range c.Scenarios {
		c.scenarioIndex[c.Scenarios[i].ID] = &c.Scenarios[i]
	}
}

// applyDefaults fills zero-valued tuning knobs with their defaults.
func (c *Content) applyDefaults() {
	t := &c.Tuning
	if t.NeutralBand == 0 {
		t.NeutralBand = 10
	}
	if t.ImperialLoyaltyThreshold == 0 {
		t.ImperialLoyaltyThreshold = 50
	}
	if t.InsurgentSympathyThreshold == 0 {
		t.InsurgentSympathyThreshold = -50
	}
	if t.ComplexResistanceThreshold == 0 {
		t.ComplexResistanceThreshold = 25
	}
	if t.RulesPerDay == 0 {
		t.RulesPerDay = 2
	}
	if t.PointWeights == nil {
		t.PointWeights = map[string]int{
			"tactical":  8,
			"financial": 5,
			"political": 10,
			"moral":     6,
		}
	}
}

// validate checks referential integrity: every pool and scenario reference
// must resolve. Misconfigured thresholds (overlapping bands) are not checked;
// the classifier resolves those by evaluation order.
func (c *Content) validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("content: no ship categories")
	}
	for _, cat := range c.Categories {
		if len(cat.CaptainPool) == 0 {
			return fmt.Errorf("content: category %q has no captain pool", cat.ID)
		}
		for _, id := range cat.CaptainPool {
			if c.CaptainByID(id) == nil {
				return fmt.Errorf("content: category %q references unknown captain %q", cat.ID, id)
			}
		}
		if cat.DefaultCaptain != "" && c.CaptainByID(cat.DefaultCaptain) == nil {
			return fmt.Errorf("content: category %q has unknown default captain %q", cat.ID, cat.DefaultCaptain)
		}
		if len(cat.ManifestPool) == 0 {
			return fmt.Errorf("content: category %q has no manifest pool", cat.ID)
		}
		for _, id := range cat.ManifestPool {
			if c.ManifestByID(id) == nil {
				return fmt.Errorf("content: category %q references unknown manifest %q", cat.ID, id)
			}
		}
		for _, ref := range []string{cat.ApproveScenario, cat.DenyScenario} {
			if ref != "" && c.ScenarioByID(ref) == nil {
				return fmt.Errorf("content: category %q references unknown scenario %q", cat.ID, ref)
			}
		}
	}
	return nil
}

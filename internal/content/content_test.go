package content

import (
	"os"
	"path/filepath"
	"testing"
)

// --- Seed content ---

func TestSeedValidates(t *testing.T) {
	c := Seed()
	if err := c.validate(); err != nil {
		t.Fatalf("seed content failed validation: %v", err)
	}
}

func TestSeedTuningDefaults(t *testing.T) {
	c := Seed()
	if c.Tuning.NeutralBand != 10 {
		t.Errorf("expected neutral band 10, got %d", c.Tuning.NeutralBand)
	}
	if c.Tuning.ImperialLoyaltyThreshold != 50 {
		t.Errorf("expected imperial threshold 50, got %d", c.Tuning.ImperialLoyaltyThreshold)
	}
	if c.Tuning.InsurgentSympathyThreshold != -50 {
		t.Errorf("expected insurgent threshold -50, got %d", c.Tuning.InsurgentSympathyThreshold)
	}
	if c.Tuning.ComplexResistanceThreshold != 25 {
		t.Errorf("expected complex threshold 25, got %d", c.Tuning.ComplexResistanceThreshold)
	}
}

func TestSeedLookups(t *testing.T) {
	c := Seed()
	if c.CaptainByID("cpt-varno") == nil {
		t.Error("expected seed captain lookup to resolve")
	}
	if c.ScenarioByID("missing") != nil {
		t.Error("expected unknown scenario to return nil")
	}
}

// --- YAML loading ---

const minimalYAML = `
categories:
  - id: freighter
    name: Freighter
    policy:
      associated_factions: [Guild]
      access_code_prefixes: ["FLG-"]
      base_suspicion: 30
    base_weight: 1
    captain_pool: [cpt-a]
    manifest_pool: [mf-1]
captains:
  - id: cpt-a
    name: Captain A
    factions: [Guild]
manifests:
  - id: mf-1
    required_clearance: standard
    valid_factions: [Guild]
    declared_goods: ore
day_rules:
  - id: rule-1
    kind: check_for_contraband
    description: Contraband sweep in effect.
`

func TestLoadMinimal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Categories) != 1 || c.Categories[0].ID != "freighter" {
		t.Error("expected one freighter category")
	}
	if !c.Categories[0].Policy.IsAccessCodeValid("FLG-0001") {
		t.Error("expected loaded policy to validate its prefix")
	}
	if c.Tuning.RulesPerDay != 2 {
		t.Errorf("expected default rules per day, got %d", c.Tuning.RulesPerDay)
	}
}

func TestLoadRejectsDanglingRefs(t *testing.T) {
	bad := minimalYAML + `
scenarios: []
`
	path := filepath.Join(t.TempDir(), "content.yaml")
	broken := []byte(bad)
	// Point the category at a captain that does not exist.
	broken = append(broken, []byte("\n")...)
	if err := os.WriteFile(path, broken, 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error on valid content: %v", err)
	}

	c.Categories[0].CaptainPool = []string{"cpt-missing"}
	if err := c.validate(); err == nil {
		t.Error("expected dangling captain reference to fail validation")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

package encounter

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/veyrin/outpost/internal/content"
	"github.com/veyrin/outpost/internal/entropy"
	"github.com/veyrin/outpost/internal/policy"
)

// RuleProvider supplies the gate directives active on a given day.
type RuleProvider interface {
	ActiveRules(day int) []policy.DayRule
}

// Generation odds. Tuned against the seed content; not exposed as config.
const (
	noCodeChance      = 0.08 // ship arrives with no access code at all
	expiredCodeChance = 0.1  // code's validity window ended yesterday
	storyShipChance   = 0.25 // story-gated category emits its story ship
	priorityBoost     = 1.25 // weight multiplier for priority traffic
	leaningBias       = 1.25 // contraband multiplier when sympathy outruns loyalty
)

// Classifier composes the faction and manifest policies into generated
// encounters with a computed ground-truth verdict.
type Classifier struct {
	content *content.Content
	rng     *entropy.Source
	rules   RuleProvider

	// drift varies category traffic smoothly day to day.
	drift opensimplex.Noise
}

// NewClassifier builds a classifier with explicit collaborators: the loaded
// content set, the session's random source, and the day-rule provider.
func NewClassifier(c *content.Content, rng *entropy.Source, rules RuleProvider, seed int64) *Classifier {
	return &Classifier{
		content: c,
		rng:     rng,
		rules:   rules,
		drift:   opensimplex.NewNormalized(seed),
	}
}

// Generate creates one encounter for the given day. The loyalty/sympathy
// totals bias what shows up: a gate drifting toward the insurgency sees more
// contraband pressure.
func (g *Classifier) Generate(day, imperialLoyalty, insurgentSympathy int) *Encounter {
	cat := g.pickCategory(day)

	captain, captainFaction, degraded := g.pickCaptain(cat)
	if degraded {
		slog.Warn("no compatible captain, using default pairing",
			"category", cat.ID,
			"captain", captain.ID,
		)
	}

	faction := g.pickFaction(cat)
	code := g.buildAccessCode(cat, day)
	manifest := g.buildManifest(cat, imperialLoyalty, insurgentSympathy)

	enc := &Encounter{
		ID:             uuid.NewString(),
		Day:            day,
		ShipName:       pick(g.rng, cat.ShipNames, cat.Name),
		CategoryID:     cat.ID,
		Faction:        faction,
		CaptainID:      captain.ID,
		CaptainName:    captain.Name,
		CaptainFaction: captainFaction,
		AccessCode:     code,
		Manifest:       manifest,
		Suspicion:      suspicion(cat, manifest),
	}

	if cat.StoryGate > 0 && day >= cat.StoryGate && g.rng.Chance(storyShipChance) {
		enc.IsStoryShip = true
		enc.StoryTag = cat.StoryTag
	}

	g.classify(enc, cat)

	slog.Debug("encounter generated",
		"id", enc.ID,
		"day", day,
		"category", cat.ID,
		"ship", enc.ShipName,
		"should_approve", enc.ShouldApprove,
		"reason", string(enc.InvalidReason),
	)
	return enc
}

// classify computes the encounter's ground truth: the manifest must pass
// every policy check and the access code must be valid for the category.
// The invalid reason records the first failing check in fixed priority
// order: faction, day, clearance, day rule, then access code.
func (g *Classifier) classify(enc *Encounter, cat *content.ShipCategory) {
	rules := g.rules.ActiveRules(enc.Day)

	// Special-clearance categories are exempt from the clearance check:
	// their writ outranks whatever code tier the ship presents.
	clearanceCode := enc.AccessCode
	if cat.Policy.SpecialClearance {
		clearanceCode = &policy.AccessCode{Level: policy.AccessUnrestricted}
	}
	verdict := policy.EvaluateManifest(enc.Manifest, enc.Faction, clearanceCode, enc.Day, rules)

	codeOK := enc.AccessCode != nil &&
		cat.Policy.IsAccessCodeValid(enc.AccessCode.Code) &&
		enc.AccessCode.ValidOnDay(enc.Day)

	enc.ShouldApprove = verdict.Valid && codeOK
	switch {
	case !verdict.Valid:
		enc.InvalidReason = verdict.Reason
	case !codeOK:
		enc.InvalidReason = policy.ReasonAccessCode
	default:
		enc.InvalidReason = policy.ReasonNone
	}
}

// pickCategory selects a ship category by base weight modulated by the
// traffic-drift field sampled at the current day.
func (g *Classifier) pickCategory(day int) *content.ShipCategory {
	cats := g.content.Categories
	weights := make([]float64, len(cats))
	for i := range cats {
		w := cats[i].BaseWeight * (0.5 + g.drift.Eval2(float64(day)*0.13, float64(i)*7.7))
		if cats[i].Policy.PriorityTraffic {
			w *= priorityBoost
		}
		weights[i] = w
	}
	return &cats[g.rng.WeightedIndex(weights)]
}

// pickCaptain walks the category's captain pool in declaration order and
// takes the first captain with a compatible faction — first match, not best
// match; ties broken by order. Falls back to the category's default captain
// when nothing in the pool is compatible.
func (g *Classifier) pickCaptain(cat *content.ShipCategory) (*content.Captain, string, bool) {
	for _, id := range cat.CaptainPool {
		captain := g.content.CaptainByID(id)
		if captain == nil {
			continue
		}
		for _, f := range captain.Factions {
			if cat.Policy.IsCaptainCompatible(f) {
				return captain, f, false
			}
		}
	}

	// Degraded match: non-fatal, the gate still sees a ship.
	fallbackID := cat.DefaultCaptain
	if fallbackID == "" && len(cat.CaptainPool) > 0 {
		fallbackID = cat.CaptainPool[0]
	}
	captain := g.content.CaptainByID(fallbackID)
	faction := cat.Policy.PrimaryFaction(cat.ID)
	if len(captain.Factions) > 0 {
		faction = captain.Factions[0]
	}
	return captain, faction, true
}

// pickFaction chooses the faction the ship flies under from the category's
// associated set, or the primary fallback when none are configured.
func (g *Classifier) pickFaction(cat *content.ShipCategory) string {
	assoc := cat.Policy.AssociatedFactions
	if len(assoc) == 0 {
		return cat.Policy.PrimaryFaction(cat.ID)
	}
	return assoc[g.rng.Intn(len(assoc))]
}

// buildAccessCode issues the ship's credential. Some ships arrive with no
// code, a forged prefix, or an expired window; those are the invalid
// encounters the player is paid to catch.
func (g *Classifier) buildAccessCode(cat *content.ShipCategory, day int) *policy.AccessCode {
	if g.rng.Chance(noCodeChance) {
		return nil
	}

	level := policy.AccessLow
	if len(cat.CodeLevels) > 0 {
		level = cat.CodeLevels[g.rng.Intn(len(cat.CodeLevels))]
	}

	prefix := "XX-"
	if !g.rng.Chance(cat.ForgedCodeChance) && len(cat.Policy.AccessCodePrefixes) > 0 {
		prefix = cat.Policy.AccessCodePrefixes[g.rng.Intn(len(cat.Policy.AccessCodePrefixes))]
	}

	code := &policy.AccessCode{
		Level: level,
		Code:  fmt.Sprintf("%s%04d", prefix, g.rng.Intn(10000)),
	}
	if g.rng.Chance(expiredCodeChance) {
		code.LastDay = day - 1
	}
	return code
}

// buildManifest instantiates a concrete manifest from one of the category's
// templates, rolling the hidden flags.
func (g *Classifier) buildManifest(cat *content.ShipCategory, imperialLoyalty, insurgentSympathy int) *policy.CargoManifest {
	tpl := g.content.ManifestByID(cat.ManifestPool[g.rng.Intn(len(cat.ManifestPool))])

	contraband := tpl.ContrabandChance
	if insurgentSympathy > imperialLoyalty {
		contraband *= leaningBias
	}

	m := &policy.CargoManifest{
		RequiredClearance: tpl.RequiredClearance,
		ValidFactions:     append([]string(nil), tpl.ValidFactions...),
		FirstDay:          tpl.FirstDay,
		LastDay:           tpl.LastDay,
		DeclaredGoods:     tpl.DeclaredGoods,
		Notes:             tpl.Notes,
		Origin:            tpl.Origin,
		HasContraband:     g.rng.Chance(contraband),
		HasFalseEntries:   g.rng.Chance(tpl.FalseEntryChance),
	}
	if cat.Policy.ContrabandExempt {
		m.HasContraband = false
	}
	if m.HasContraband {
		m.EasilyDetectable = g.rng.Chance(tpl.DetectableChance)
	}
	return m
}

func suspicion(cat *content.ShipCategory, m *policy.CargoManifest) int {
	s := cat.Policy.BaseSuspicion
	if m.HasContraband {
		s += 20
	}
	if m.HasFalseEntries {
		s += 15
	}
	if s > 100 {
		s = 100
	}
	return s
}

func pick(rng *entropy.Source, options []string, fallback string) string {
	if len(options) == 0 {
		return fallback
	}
	return options[rng.Intn(len(options))]
}

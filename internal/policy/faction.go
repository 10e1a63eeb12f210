package policy

import "strings"

// FactionPolicy holds the static compatibility rules for one ship category.
// Values are loaded once from content and never mutated.
type FactionPolicy struct {
	AssociatedFactions        []string `json:"associated_factions" yaml:"associated_factions"`
	CompatibleCaptainFactions []string `json:"compatible_captain_factions" yaml:"compatible_captain_factions"`
	AccessCodePrefixes        []string `json:"access_code_prefixes" yaml:"access_code_prefixes"`

	BaseSuspicion    int  `json:"base_suspicion" yaml:"base_suspicion"` // 0–100
	SpecialClearance bool `json:"special_clearance" yaml:"special_clearance"`
	PriorityTraffic  bool `json:"priority_traffic" yaml:"priority_traffic"`
	ContrabandExempt bool `json:"contraband_exempt" yaml:"contraband_exempt"`
}

// IsFactionAssociated reports whether the faction belongs to this category.
// Case-insensitive exact match; an empty set associates with nothing.
func (p *FactionPolicy) IsFactionAssociated(faction string) bool {
	for _, f := range p.AssociatedFactions {
		if strings.EqualFold(f, faction) {
			return true
		}
	}
	return false
}

// IsCaptainCompatible reports whether a captain of the given faction may
// command a ship of this category. When no compatible-captain set is
// configured, falls back to the associated-faction set so under-configured
// categories still pair with their own faction's captains.
func (p *FactionPolicy) IsCaptainCompatible(captainFaction string) bool {
	if len(p.CompatibleCaptainFactions) == 0 {
		return p.IsFactionAssociated(captainFaction)
	}
	for _, f := range p.CompatibleCaptainFactions {
		if strings.EqualFold(f, captainFaction) {
			return true
		}
	}
	return false
}

// IsAccessCodeValid reports whether the code string matches one of the
// category's configured prefixes. Case-insensitive. An empty code or an
// empty prefix set is invalid.
func (p *FactionPolicy) IsAccessCodeValid(code string) bool {
	if code == "" || len(p.AccessCodePrefixes) == 0 {
		return false
	}
	lc := strings.ToLower(code)
	for _, prefix := range p.AccessCodePrefixes {
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(lc, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

// PrimaryFaction returns the category's first associated faction, or the
// fallback name lower-cased when none are configured.
func (p *FactionPolicy) PrimaryFaction(fallback string) string {
	if len(p.AssociatedFactions) > 0 {
		return p.AssociatedFactions[0]
	}
	return strings.ToLower(fallback)
}

package content

import "github.com/veyrin/outpost/internal/policy"

// Seed returns the built-in definition set used by new games and tests.
func Seed() *Content {
	c := &Content{
		Categories: []ShipCategory{
			{
				ID:   "imperial-patrol",
				Name: "Imperial Patrol Cutter",
				Policy: policy.FactionPolicy{
					AssociatedFactions:        []string{"Imperium"},
					CompatibleCaptainFactions: []string{"Imperium"},
					AccessCodePrefixes:        []string{"IMP-", "NAV-"},
					BaseSuspicion:             5,
					SpecialClearance:          true,
					PriorityTraffic:           true,
					ContrabandExempt:          true,
				},
				BaseWeight:       1.4,
				CaptainPool:      []string{"cpt-varno", "cpt-esselt", "cpt-drayce"},
				DefaultCaptain:   "cpt-varno",
				ManifestPool:     []string{"mf-ordnance", "mf-provisions"},
				ShipNames:        []string{"Vigilant", "Iron Accord", "Lawbringer"},
				CodeLevels:       []policy.AccessLevel{policy.AccessHigh, policy.AccessUnrestricted},
				ForgedCodeChance: 0.05,
				ApproveScenario:  "sc-patrol-favor",
				DenyScenario:     "sc-patrol-report",
			},
			{
				ID:   "bulk-freighter",
				Name: "Combine Bulk Freighter",
				Policy: policy.FactionPolicy{
					AssociatedFactions: []string{"Veyrin Combine", "Free Lanes Guild"},
					// No compatible-captain set: falls back to the
					// associated factions.
					AccessCodePrefixes: []string{"CMB-", "FLG-"},
					BaseSuspicion:      30,
				},
				BaseWeight:       3.0,
				CaptainPool:      []string{"cpt-hollis", "cpt-marek", "cpt-odu"},
				DefaultCaptain:   "cpt-hollis",
				ManifestPool:     []string{"mf-ore", "mf-machinery", "mf-provisions"},
				ShipNames:        []string{"Long Haul", "Crown of Slag", "Pale Ledger"},
				CodeLevels:       []policy.AccessLevel{policy.AccessLow, policy.AccessMedium},
				ForgedCodeChance: 0.15,
				ApproveScenario:  "sc-smuggled-arms",
				DenyScenario:     "sc-starved-dock",
			},
			{
				ID:   "passenger-liner",
				Name: "Free Lanes Passenger Liner",
				Policy: policy.FactionPolicy{
					AssociatedFactions:        []string{"Free Lanes Guild"},
					CompatibleCaptainFactions: []string{"Free Lanes Guild", "Pilgrim Fleet"},
					AccessCodePrefixes:        []string{"FLG-", "CIV-"},
					BaseSuspicion:             20,
				},
				BaseWeight:       2.2,
				CaptainPool:      []string{"cpt-odu", "cpt-senna", "cpt-hollis"},
				DefaultCaptain:   "cpt-senna",
				ManifestPool:     []string{"mf-passengers", "mf-provisions"},
				ShipNames:        []string{"Mercy of Distance", "Songline", "Third Dawn"},
				CodeLevels:       []policy.AccessLevel{policy.AccessLow, policy.AccessMedium},
				ForgedCodeChance: 0.1,
				ApproveScenario:  "sc-refugee-cell",
				DenyScenario:     "sc-turned-away",
			},
			{
				ID:   "pilgrim-barge",
				Name: "Pilgrim Fleet Barge",
				Policy: policy.FactionPolicy{
					AssociatedFactions:        []string{"Pilgrim Fleet"},
					CompatibleCaptainFactions: []string{"Pilgrim Fleet"},
					AccessCodePrefixes:        []string{"PLG-"},
					BaseSuspicion:             40,
				},
				BaseWeight:       1.2,
				CaptainPool:      []string{"cpt-senna", "cpt-imral"},
				DefaultCaptain:   "cpt-imral",
				ManifestPool:     []string{"mf-relics", "mf-passengers"},
				ShipNames:        []string{"Ash Procession", "Ninth Vigil"},
				CodeLevels:       []policy.AccessLevel{policy.AccessLow},
				ForgedCodeChance: 0.2,
				StoryGate:        2,
				StoryTag:         "pilgrim_exodus",
				ApproveScenario:  "sc-exodus-word",
				DenyScenario:     "sc-turned-away",
			},
			{
				ID:   "salvage-skiff",
				Name: "Independent Salvage Skiff",
				Policy: policy.FactionPolicy{
					AssociatedFactions:        []string{"Free Lanes Guild"},
					CompatibleCaptainFactions: []string{"Free Lanes Guild", "Veyrin Combine"},
					AccessCodePrefixes:        []string{"SLV-", "FLG-"},
					BaseSuspicion:             55,
				},
				BaseWeight:       1.0,
				CaptainPool:      []string{"cpt-marek", "cpt-drayce", "cpt-odu"},
				DefaultCaptain:   "cpt-marek",
				ManifestPool:     []string{"mf-scrap", "mf-machinery"},
				ShipNames:        []string{"Rustwake", "Gleaner", "Half a Prayer"},
				CodeLevels:       []policy.AccessLevel{policy.AccessLow, policy.AccessMedium},
				ForgedCodeChance: 0.3,
				StoryGate:        3,
				StoryTag:         "ghost_cartel",
				ApproveScenario:  "sc-smuggled-arms",
				DenyScenario:     "sc-starved-dock",
			},
		},
		Captains: []Captain{
			{ID: "cpt-varno", Name: "Commander Helia Varno", Factions: []string{"Imperium"}},
			{ID: "cpt-esselt", Name: "Captain Ruon Esselt", Factions: []string{"Imperium", "Veyrin Combine"}},
			{ID: "cpt-drayce", Name: "Captain Mica Drayce", Factions: []string{"Veyrin Combine", "Imperium"}},
			{ID: "cpt-hollis", Name: "Captain Brin Hollis", Factions: []string{"Free Lanes Guild"}},
			{ID: "cpt-marek", Name: "Captain Tovan Marek", Factions: []string{"Veyrin Combine", "Free Lanes Guild"}},
			{ID: "cpt-odu", Name: "Captain Sefa Odu", Factions: []string{"Free Lanes Guild", "Pilgrim Fleet"}},
			{ID: "cpt-senna", Name: "Captain Ilo Senna", Factions: []string{"Pilgrim Fleet", "Free Lanes Guild"}},
			{ID: "cpt-imral", Name: "Elder-Captain Vess Imral", Factions: []string{"Pilgrim Fleet"}},
		},
		Manifests: []ManifestTemplate{
			{
				ID:                "mf-ordnance",
				RequiredClearance: policy.ClearanceClassified,
				ValidFactions:     []string{"Imperium"},
				DeclaredGoods:     "sealed ordnance crates, fleet resupply",
				Notes:             "priority transfer under naval seal",
				Origin:            "Karthan Anchorage",
				ContrabandChance:  0.05,
				FalseEntryChance:  0.05,
				DetectableChance:  0.5,
			},
			{
				ID:                "mf-provisions",
				RequiredClearance: policy.ClearanceStandard,
				ValidFactions:     []string{"Imperium", "Veyrin Combine", "Free Lanes Guild", "Pilgrim Fleet"},
				DeclaredGoods:     "dry provisions, water cells, medical stores",
				Notes:             "perishables, expedite handling",
				Origin:            "Cenna Verge",
				ContrabandChance:  0.1,
				FalseEntryChance:  0.15,
				DetectableChance:  0.6,
			},
			{
				ID:                "mf-ore",
				RequiredClearance: policy.ClearanceStandard,
				ValidFactions:     []string{"Veyrin Combine", "Free Lanes Guild"},
				DeclaredGoods:     "unrefined ore, slag ballast",
				Notes:             "bulk tonnage, hold seals intact",
				Origin:            "Drift Nine",
				ContrabandChance:  0.2,
				FalseEntryChance:  0.2,
				DetectableChance:  0.4,
			},
			{
				ID:                "mf-machinery",
				RequiredClearance: policy.ClearanceRestricted,
				ValidFactions:     []string{"Veyrin Combine", "Free Lanes Guild"},
				DeclaredGoods:     "refinery machinery, spare couplings",
				Notes:             "fragile cargo, crane required",
				Origin:            "Veyrin Yards",
				ContrabandChance:  0.25,
				FalseEntryChance:  0.2,
				DetectableChance:  0.35,
			},
			{
				ID:                "mf-passengers",
				RequiredClearance: policy.ClearanceStandard,
				ValidFactions:     []string{"Free Lanes Guild", "Pilgrim Fleet"},
				DeclaredGoods:     "registered passengers, personal effects",
				Notes:             "transit visas on file",
				Origin:            "Halsey Reach",
				ContrabandChance:  0.15,
				FalseEntryChance:  0.25,
				DetectableChance:  0.3,
			},
			{
				ID:                "mf-relics",
				RequiredClearance: policy.ClearanceRestricted,
				ValidFactions:     []string{"Pilgrim Fleet"},
				DeclaredGoods:     "devotional relics, censer oil",
				Notes:             "sacred cargo, handling by crew only",
				Origin:            "the Orrery",
				ContrabandChance:  0.3,
				FalseEntryChance:  0.2,
				DetectableChance:  0.25,
			},
			{
				ID:                "mf-scrap",
				RequiredClearance: policy.ClearanceStandard,
				ValidFactions:     []string{"Free Lanes Guild", "Veyrin Combine"},
				DeclaredGoods:     "hull scrap, salvage rights paperwork",
				Notes:             "wreck registry pending",
				Origin:            "the Graveyard Lanes",
				ContrabandChance:  0.35,
				FalseEntryChance:  0.3,
				DetectableChance:  0.45,
			},
		},
		DayRules: []policy.DayRule{
			{
				ID:          "rule-contraband",
				Kind:        policy.RuleCheckForContraband,
				Description: "Contraband sweep in effect. All holds subject to scan.",
			},
			{
				ID:          "rule-verify",
				Kind:        policy.RuleVerifyManifest,
				Description: "Cross-check every manifest entry against cargo seals.",
			},
			{
				ID:          "rule-inspection",
				Kind:        policy.RuleForceInspection,
				Description: "Mandatory physical inspection of flagged holds.",
			},
			{
				ID:          "rule-arms-watch",
				Kind:        policy.RuleKeywordWatch,
				Description: "Gate bulletin: interdict undeclared weapons traffic.",
				Keywords:    []string{"weapons", "ordnance", "munitions"},
			},
			{
				ID:          "rule-relic-embargo",
				Kind:        policy.RuleKeywordWatch,
				Description: "Temple embargo in force on relic movements.",
				Keywords:    []string{"relic", "relics"},
			},
		},
		Scenarios: []Scenario{
			{
				ID:             "sc-patrol-favor",
				Headline:       "Patrol command notes the gate's cooperation",
				Body:           "A commendation is entered into the watch record.",
				LoyaltyDelta:   3,
				SuspicionDelta: -2,
				DelayDays:      2,
			},
			{
				ID:             "sc-patrol-report",
				Headline:       "Patrol command files a conduct report",
				Body:           "A denied cutter's commander lodged a formal grievance.",
				LoyaltyDelta:   -4,
				SuspicionDelta: 5,
				DelayDays:      1,
			},
			{
				ID:             "sc-smuggled-arms",
				Headline:       "Seized crates traced through the gate",
				Body:           "Arms recovered in the lower districts were waved through days ago.",
				LoyaltyDelta:   -6,
				SuspicionDelta: 8,
				DelayDays:      3,
			},
			{
				ID:             "sc-starved-dock",
				Headline:       "Dockside rations run short",
				Body:           "A turned-away freighter carried the quarter's grain allotment.",
				LoyaltyDelta:   -2,
				SuspicionDelta: 0,
				FamilyImpact:   true,
				DelayDays:      2,
			},
			{
				ID:             "sc-refugee-cell",
				Headline:       "Passenger liner linked to insurgent cell",
				Body:           "Three of its transit visas were forged by the same hand.",
				LoyaltyDelta:   -5,
				SuspicionDelta: 6,
				DelayDays:      4,
				UnlockTag:      "visa_forger",
			},
			{
				ID:             "sc-turned-away",
				Headline:       "Turned-away pilgrims anchor beyond the lane markers",
				Body:           "The barge holds station off the gate, waiting.",
				LoyaltyDelta:   1,
				SuspicionDelta: 1,
				DelayDays:      2,
			},
			{
				ID:             "sc-exodus-word",
				Headline:       "Word of an exodus spreads through the fleet",
				Body:           "Pilgrim traffic doubles as the story travels.",
				LoyaltyDelta:   0,
				SuspicionDelta: 2,
				DelayDays:      3,
				UnlockTag:      "pilgrim_exodus",
			},
		},
	}
	c.applyDefaults()
	c.buildIndexes()
	return c
}

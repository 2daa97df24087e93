package archetype

import "bottells/signal"

// WarningRange is how many turns ahead an archetype telegraphs its plans.
type WarningRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Policy holds the tunable tell parameters of one archetype.
type Policy struct {
	EmissionRate      float64      `json:"emissionRate" yaml:"emissionRate"`           // 0.0–1.0: chance a classified decision leaks a tell
	BluffRate         float64      `json:"bluffRate" yaml:"bluffRate"`                 // 0.0–1.0: chance an emitted tell is inverted
	DeceptionModifier int          `json:"deceptionModifier" yaml:"deceptionModifier"` // added to the emitter DC
	AdvanceWarning    WarningRange `json:"advanceWarning" yaml:"advanceWarning"`
}

var defaultPolicies = map[signal.Archetype]Policy{
	signal.ArchetypeWarlord: {
		EmissionRate:      0.70,
		BluffRate:         0.10,
		DeceptionModifier: 0,
		AdvanceWarning:    WarningRange{Min: 1, Max: 2},
	},
	signal.ArchetypeDiplomat: {
		EmissionRate:      0.80,
		BluffRate:         0.20,
		DeceptionModifier: 2,
		AdvanceWarning:    WarningRange{Min: 2, Max: 4},
	},
	signal.ArchetypeMerchant: {
		EmissionRate:      0.60,
		BluffRate:         0.25,
		DeceptionModifier: 1,
		AdvanceWarning:    WarningRange{Min: 2, Max: 3},
	},
	signal.ArchetypeSchemer: {
		EmissionRate:      0.40,
		BluffRate:         0.50,
		DeceptionModifier: 5,
		AdvanceWarning:    WarningRange{Min: 1, Max: 2},
	},
	signal.ArchetypeTurtle: {
		EmissionRate:      0.70,
		BluffRate:         0.05,
		DeceptionModifier: -2,
		AdvanceWarning:    WarningRange{Min: 3, Max: 5},
	},
	signal.ArchetypeBlitzkrieg: {
		EmissionRate:      0.30,
		BluffRate:         0.15,
		DeceptionModifier: 1,
		AdvanceWarning:    WarningRange{Min: 0, Max: 1},
	},
	signal.ArchetypeTechRush: {
		EmissionRate:      0.50,
		BluffRate:         0.15,
		DeceptionModifier: 1,
		AdvanceWarning:    WarningRange{Min: 2, Max: 3},
	},
	signal.ArchetypeOpportunist: {
		EmissionRate:      0.50,
		BluffRate:         0.35,
		DeceptionModifier: 0,
		AdvanceWarning:    WarningRange{Min: 1, Max: 3},
	},
}

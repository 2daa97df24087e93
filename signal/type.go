package signal

import (
	"fmt"
	"strings"
)

// Type is the category of behavioral signal a bot can leak.
type Type byte

const (
	TypeNone                Type = 0
	TypeMilitaryBuildup     Type = 1
	TypeFleetMovement       Type = 2
	TypeTargetFixation      Type = 3
	TypeDiplomaticOverture  Type = 4
	TypeEconomicPreparation Type = 5
	TypeSilence             Type = 6
	TypeAggressionSpike     Type = 7
	TypeTreatyInterest      Type = 8
)

var TypeDictionary = map[Type]string{
	TypeNone:                "none",
	TypeMilitaryBuildup:     "military_buildup",
	TypeFleetMovement:       "fleet_movement",
	TypeTargetFixation:      "target_fixation",
	TypeDiplomaticOverture:  "diplomatic_overture",
	TypeEconomicPreparation: "economic_preparation",
	TypeSilence:             "silence",
	TypeAggressionSpike:     "aggression_spike",
	TypeTreatyInterest:      "treaty_interest",
}

// AllTypes lists every emittable signal type in declaration order.
func AllTypes() []Type {
	return []Type{
		TypeMilitaryBuildup,
		TypeFleetMovement,
		TypeTargetFixation,
		TypeDiplomaticOverture,
		TypeEconomicPreparation,
		TypeSilence,
		TypeAggressionSpike,
		TypeTreatyInterest,
	}
}

func (t Type) String() string {
	if name, ok := TypeDictionary[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is one of the eight emittable types.
func (t Type) Valid() bool {
	return t >= TypeMilitaryBuildup && t <= TypeTreatyInterest
}

// ParseType resolves a snake_case signal name.
func ParseType(raw string) (Type, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for t, name := range TypeDictionary {
		if t != TypeNone && name == key {
			return t, true
		}
	}
	return TypeNone, false
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("marshal signal type %d: not emittable", t)
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, ok := ParseType(string(text))
	if !ok {
		return fmt.Errorf("unsupported signal type %q", string(text))
	}
	*t = parsed
	return nil
}

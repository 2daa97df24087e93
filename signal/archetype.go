package signal

import (
	"fmt"
	"strings"
)

// Archetype is the fixed personality profile of a bot empire.
type Archetype byte

const (
	ArchetypeWarlord     Archetype = 1
	ArchetypeDiplomat    Archetype = 2
	ArchetypeMerchant    Archetype = 3
	ArchetypeSchemer     Archetype = 4
	ArchetypeTurtle      Archetype = 5
	ArchetypeBlitzkrieg  Archetype = 6
	ArchetypeTechRush    Archetype = 7
	ArchetypeOpportunist Archetype = 8
)

// FallbackArchetype stands in for empires missing from an archetype map.
const FallbackArchetype = ArchetypeOpportunist

var ArchetypeDictionary = map[Archetype]string{
	ArchetypeWarlord:     "warlord",
	ArchetypeDiplomat:    "diplomat",
	ArchetypeMerchant:    "merchant",
	ArchetypeSchemer:     "schemer",
	ArchetypeTurtle:      "turtle",
	ArchetypeBlitzkrieg:  "blitzkrieg",
	ArchetypeTechRush:    "tech_rush",
	ArchetypeOpportunist: "opportunist",
}

func AllArchetypes() []Archetype {
	return []Archetype{
		ArchetypeWarlord,
		ArchetypeDiplomat,
		ArchetypeMerchant,
		ArchetypeSchemer,
		ArchetypeTurtle,
		ArchetypeBlitzkrieg,
		ArchetypeTechRush,
		ArchetypeOpportunist,
	}
}

func (a Archetype) String() string {
	if name, ok := ArchetypeDictionary[a]; ok {
		return name
	}
	return "unknown"
}

func (a Archetype) Valid() bool {
	_, ok := ArchetypeDictionary[a]
	return ok
}

// ParseArchetype matches raw against the archetype names, ignoring case
// and surrounding space.
func ParseArchetype(raw string) (Archetype, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for a, name := range ArchetypeDictionary {
		if name == key {
			return a, true
		}
	}
	return 0, false
}

func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("marshal archetype %d: unknown", a)
	}
	return []byte(a.String()), nil
}

func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, ok := ParseArchetype(string(text))
	if !ok {
		return fmt.Errorf("unsupported archetype %q", string(text))
	}
	*a = parsed
	return nil
}

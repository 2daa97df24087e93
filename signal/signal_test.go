package signal

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseTypeCoversDictionary(t *testing.T) {
	for _, typ := range AllTypes() {
		got, ok := ParseType(typ.String())
		if !ok || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v; want %v", typ.String(), got, ok, typ)
		}
	}
	if _, ok := ParseType("none"); ok {
		t.Fatalf("expected none to be rejected as an emittable type")
	}
	if _, ok := ParseType("bogus"); ok {
		t.Fatalf("expected unknown name to be rejected")
	}
}

func TestIntelLevelOrdering(t *testing.T) {
	levels := AllIntelLevels()
	for i := 1; i < len(levels); i++ {
		if !levels[i].AtLeast(levels[i-1]) || levels[i-1].AtLeast(levels[i]) {
			t.Fatalf("expected %v > %v", levels[i], levels[i-1])
		}
	}
}

func TestArchetypeDictionaryIsExhaustive(t *testing.T) {
	if len(AllArchetypes()) != 8 || len(ArchetypeDictionary) != 8 {
		t.Fatalf("expected exactly 8 archetypes")
	}
	if !FallbackArchetype.Valid() {
		t.Fatalf("fallback archetype must be a registered archetype")
	}
}

func TestTextRoundTripThroughJSONAndYAML(t *testing.T) {
	type record struct {
		Signal    Type           `json:"signal" yaml:"signal"`
		Tier      IntelLevel     `json:"tier" yaml:"tier"`
		Archetype Archetype      `json:"archetype" yaml:"archetype"`
		Mood      EmotionalState `json:"mood" yaml:"mood"`
	}

	var fromJSON record
	if err := json.Unmarshal([]byte(`{"signal":"fleet_movement","tier":"moderate","archetype":"tech_rush","mood":"vengeful"}`), &fromJSON); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	var fromYAML record
	if err := yaml.Unmarshal([]byte("signal: fleet_movement\ntier: moderate\narchetype: tech_rush\nmood: vengeful\n"), &fromYAML); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	want := record{TypeFleetMovement, IntelModerate, ArchetypeTechRush, EmotionVengeful}
	if fromJSON != want || fromYAML != want {
		t.Fatalf("unexpected decode: json=%+v yaml=%+v", fromJSON, fromYAML)
	}

	if err := json.Unmarshal([]byte(`{"signal":"teleport"}`), &fromJSON); err == nil {
		t.Fatalf("expected unknown signal name to fail")
	}
	if _, err := TypeNone.MarshalText(); err == nil {
		t.Fatalf("expected none to refuse marshalling")
	}
}

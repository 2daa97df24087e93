package archetype

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bottells/signal"
)

func TestDefaultIsExhaustive(t *testing.T) {
	table := Default()
	for _, a := range signal.AllArchetypes() {
		p, ok := table.Lookup(a)
		if !ok {
			t.Fatalf("missing default policy for %s", a)
		}
		if err := p.validate(); err != nil {
			t.Fatalf("default policy for %s invalid: %v", a, err)
		}
	}
	if got := table.Policy(signal.ArchetypeTurtle).DeceptionModifier; got != -2 {
		t.Fatalf("turtle deception modifier = %d, want -2", got)
	}
}

func TestPolicyFallsBackForUnknownArchetype(t *testing.T) {
	table := Default()
	got := table.Policy(signal.Archetype(200))
	want := table.Policy(signal.FallbackArchetype)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fallback policy mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLMergesOverDefaults(t *testing.T) {
	table, err := LoadYAML([]byte(`
schemer:
  bluffRate: 0.6
turtle:
  advanceWarning: {min: 4, max: 6}
`))
	if err != nil {
		t.Fatalf("LoadYAML returned error: %v", err)
	}

	schemer := table.Policy(signal.ArchetypeSchemer)
	if schemer.BluffRate != 0.6 {
		t.Fatalf("schemer bluff rate = %.2f, want 0.6", schemer.BluffRate)
	}
	if schemer.EmissionRate != defaultPolicies[signal.ArchetypeSchemer].EmissionRate {
		t.Fatalf("omitted field should keep default")
	}
	if got := table.Policy(signal.ArchetypeTurtle).AdvanceWarning; got != (WarningRange{Min: 4, Max: 6}) {
		t.Fatalf("turtle warning = %+v", got)
	}
	// defaults must not be mutated by a load
	if defaultPolicies[signal.ArchetypeSchemer].BluffRate == 0.6 {
		t.Fatalf("LoadYAML leaked into package defaults")
	}
}

func TestLoadJSONRejectsBadInput(t *testing.T) {
	tcs := []struct {
		name string
		data string
		want error
	}{
		{"unknown archetype", `{"pirate":{"bluffRate":0.1}}`, ErrUnknownArchetype},
		{"rate above one", `{"warlord":{"emissionRate":1.5}}`, ErrInvalidPolicy},
		{"negative bluff", `{"warlord":{"bluffRate":-0.1}}`, ErrInvalidPolicy},
		{"inverted warning", `{"warlord":{"advanceWarning":{"min":3,"max":1}}}`, ErrInvalidPolicy},
		{"case-folded duplicate", `{"turtle":{"bluffRate":0.1},"TURTLE":{"bluffRate":0.9}}`, ErrInvalidPolicy},
		{"padded duplicate", `{"schemer":{"bluffRate":0.1}," schemer ":{"bluffRate":0.2}}`, ErrInvalidPolicy},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadJSON([]byte(tc.data))
			if !errors.Is(err, tc.want) {
				t.Fatalf("LoadJSON error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadYAMLRejectsCaseFoldedDuplicates(t *testing.T) {
	data := "turtle:\n  bluffRate: 0.1\nTurtle:\n  bluffRate: 0.9\n"
	for i := 0; i < 20; i++ {
		_, err := LoadYAML([]byte(data))
		if !errors.Is(err, ErrInvalidPolicy) {
			t.Fatalf("LoadYAML error = %v, want %v", err, ErrInvalidPolicy)
		}
	}
}

func TestLoadFilePicksDecoderByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "policies.json")
	if err := os.WriteFile(jsonPath, []byte(`{"diplomat":{"deceptionModifier":4}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	yamlPath := filepath.Join(dir, "policies.yaml")
	if err := os.WriteFile(yamlPath, []byte("diplomat:\n  deceptionModifier: 3\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fromJSON, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile json: %v", err)
	}
	fromYAML, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}
	if fromJSON.Policy(signal.ArchetypeDiplomat).DeceptionModifier != 4 || fromYAML.Policy(signal.ArchetypeDiplomat).DeceptionModifier != 3 {
		t.Fatalf("unexpected modifiers: json=%d yaml=%d",
			fromJSON.Policy(signal.ArchetypeDiplomat).DeceptionModifier,
			fromYAML.Policy(signal.ArchetypeDiplomat).DeceptionModifier)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

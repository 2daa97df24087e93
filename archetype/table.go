// Package archetype holds the per-archetype tell policies.
//
// A Table is built once, either from the compiled-in defaults or from a
// policy file layered over them, and never changes afterwards. Readers may
// share one Table across goroutines without locking.
package archetype

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"bottells/signal"
)

var (
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrInvalidPolicy    = errors.New("invalid policy")
)

// Table is a frozen lookup keyed by every archetype.
type Table struct {
	policies map[signal.Archetype]Policy
}

// Default returns the compiled-in policy table.
func Default() *Table {
	t := &Table{policies: make(map[signal.Archetype]Policy, len(defaultPolicies))}
	for a, p := range defaultPolicies {
		t.policies[a] = p
	}
	return t
}

// Policy returns the policy for a. Unknown archetypes get the fallback
// archetype's policy.
func (t *Table) Policy(a signal.Archetype) Policy {
	if p, ok := t.policies[a]; ok {
		return p
	}
	return t.policies[signal.FallbackArchetype]
}

// Lookup returns the policy for a and whether a is registered.
func (t *Table) Lookup(a signal.Archetype) (Policy, bool) {
	p, ok := t.policies[a]
	return p, ok
}

// All returns a copy of every policy.
func (t *Table) All() map[signal.Archetype]Policy {
	out := make(map[signal.Archetype]Policy, len(t.policies))
	for a, p := range t.policies {
		out[a] = p
	}
	return out
}

// policyOverride is the on-disk shape: any omitted field keeps its default.
type policyOverride struct {
	EmissionRate      *float64      `json:"emissionRate" yaml:"emissionRate"`
	BluffRate         *float64      `json:"bluffRate" yaml:"bluffRate"`
	DeceptionModifier *int          `json:"deceptionModifier" yaml:"deceptionModifier"`
	AdvanceWarning    *WarningRange `json:"advanceWarning" yaml:"advanceWarning"`
}

// LoadFile loads policy overrides from a YAML or JSON file, chosen by
// extension.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	default:
		return LoadYAML(data)
	}
}

// LoadYAML layers YAML overrides keyed by archetype name over the defaults.
func LoadYAML(data []byte) (*Table, error) {
	var raw map[string]policyOverride
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse policy YAML: %w", err)
	}
	return build(raw)
}

// LoadJSON layers JSON overrides keyed by archetype name over the defaults.
func LoadJSON(data []byte) (*Table, error) {
	var raw map[string]policyOverride
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse policy JSON: %w", err)
	}
	return build(raw)
}

func build(raw map[string]policyOverride) (*Table, error) {
	t := Default()
	seen := make(map[signal.Archetype]struct{}, len(raw))
	for name, o := range raw {
		a, ok := signal.ParseArchetype(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
		}
		// "turtle" and "Turtle" fold to the same archetype.
		if _, dup := seen[a]; dup {
			return nil, fmt.Errorf("%w: duplicate archetype %q", ErrInvalidPolicy, name)
		}
		seen[a] = struct{}{}
		p := t.policies[a]
		if o.EmissionRate != nil {
			p.EmissionRate = *o.EmissionRate
		}
		if o.BluffRate != nil {
			p.BluffRate = *o.BluffRate
		}
		if o.DeceptionModifier != nil {
			p.DeceptionModifier = *o.DeceptionModifier
		}
		if o.AdvanceWarning != nil {
			p.AdvanceWarning = *o.AdvanceWarning
		}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("archetype %s: %w", a, err)
		}
		t.policies[a] = p
	}
	return t, nil
}

func (p Policy) validate() error {
	if p.EmissionRate < 0 || p.EmissionRate > 1 {
		return fmt.Errorf("%w: emissionRate %.2f outside [0,1]", ErrInvalidPolicy, p.EmissionRate)
	}
	if p.BluffRate < 0 || p.BluffRate > 1 {
		return fmt.Errorf("%w: bluffRate %.2f outside [0,1]", ErrInvalidPolicy, p.BluffRate)
	}
	if p.AdvanceWarning.Min < 0 || p.AdvanceWarning.Min > p.AdvanceWarning.Max {
		return fmt.Errorf("%w: advanceWarning [%d,%d]", ErrInvalidPolicy, p.AdvanceWarning.Min, p.AdvanceWarning.Max)
	}
	return nil
}

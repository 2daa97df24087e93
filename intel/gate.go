// Package intel projects stored tells into what one viewer is allowed to see.
//
// Visibility is tiered per empire: basic intel shows that something is
// happening, moderate shows what kind of signal it is, full adds the emitter's
// emotional context. Bluffs are displayed as-is unless the viewer passes a
// hidden perception check against the emitter.
package intel

import (
	"bottells/perception"
	"bottells/signal"
	"bottells/tell"
)

// MinimumTierForVisibility is the lowest tier that sees any tells at all.
func MinimumTierForVisibility() signal.IntelLevel {
	return signal.IntelBasic
}

// CanSeeAny reports whether tier notices that a tell exists at all.
func CanSeeAny(tier signal.IntelLevel) bool {
	return tier.AtLeast(MinimumTierForVisibility())
}

// CanSeeType reports whether tier reads the tell type. Basic intel only
// sees that something is happening.
func CanSeeType(tier signal.IntelLevel) bool {
	return tier == signal.IntelModerate || tier == signal.IntelFull
}

// CanSeeEmotionalContext reports whether tier reads the emitter's mood.
func CanSeeEmotionalContext(tier signal.IntelLevel) bool {
	return tier == signal.IntelFull
}

func tierOf(tiers map[string]signal.IntelLevel, empireID string) signal.IntelLevel {
	if tier, ok := tiers[empireID]; ok {
		return tier
	}
	return signal.IntelUnknown
}

// FilterByIntel drops tells the viewer wrote, tells expired before
// currentTurn, and tells from empires the viewer has too little intel on.
// tiers holds the viewer's intel level per emitting empire; missing empires
// count as unknown.
func FilterByIntel(tells []tell.Tell, viewerID string, tiers map[string]signal.IntelLevel, currentTurn int) []tell.Tell {
	out := make([]tell.Tell, 0, len(tells))
	for _, t := range tells {
		if t.EmpireID == viewerID {
			continue
		}
		if t.Expired(currentTurn) {
			continue
		}
		if !CanSeeAny(tierOf(tiers, t.EmpireID)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterByTarget keeps tells aimed at targetID.
func FilterByTarget(tells []tell.Tell, targetID string) []tell.Tell {
	out := make([]tell.Tell, 0, len(tells))
	for _, t := range tells {
		if t.TargetEmpireID == targetID {
			out = append(out, t)
		}
	}
	return out
}

// FilterByType keeps tells whose displayed type is one of types.
func FilterByType(tells []tell.Tell, types ...signal.Type) []tell.Tell {
	want := make(map[signal.Type]struct{}, len(types))
	for _, typ := range types {
		want[typ] = struct{}{}
	}
	out := make([]tell.Tell, 0, len(tells))
	for _, t := range tells {
		if _, ok := want[t.Type]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Projection is one tell as a specific viewer perceives it. It is derived on
// every query and never stored.
type Projection struct {
	Tell              tell.Tell   `json:"tell"`
	PerceivedTruth    bool        `json:"perceivedTruth"`
	DisplayType       signal.Type `json:"displayType"`
	DisplayConfidence float64     `json:"displayConfidence"`
	SignalDetected    bool        `json:"signalDetected"`
}

// ProjectRequest carries the per-empire lookups a projection needs. Missing
// entries fall back to unknown intel, the fallback archetype and default
// stats.
type ProjectRequest struct {
	Tiers         map[string]signal.IntelLevel
	Archetypes    map[string]signal.Archetype
	Stats         map[string]perception.Stats
	ResearchBonus int
}

// Gate runs the perception checks behind projections.
type Gate struct {
	engine *perception.Engine
}

// NewGate returns a Gate that rolls perception checks on engine.
func NewGate(engine *perception.Engine) *Gate {
	return &Gate{engine: engine}
}

// Project resolves every tell for the viewer, in input order. Each tell gets
// one fresh perception check.
func (g *Gate) Project(tells []tell.Tell, req ProjectRequest) []Projection {
	out := make([]Projection, 0, len(tells))
	for _, t := range tells {
		tier := tierOf(req.Tiers, t.EmpireID)
		arch, ok := req.Archetypes[t.EmpireID]
		if !ok {
			arch = signal.FallbackArchetype
		}
		var stats *perception.Stats
		if s, ok := req.Stats[t.EmpireID]; ok {
			stats = &s
		}

		res := g.engine.Check(perception.CheckRequest{
			Tier:          tier,
			ResearchBonus: req.ResearchBonus,
			Tell:          t,
			Archetype:     arch,
			Stats:         stats,
		})

		p := Projection{
			Tell:              t,
			DisplayType:       t.Type,
			DisplayConfidence: t.Confidence,
			SignalDetected:    CanSeeAny(tier),
		}
		if t.IsBluff && res.Success && res.RevealedType != nil {
			p.DisplayType = *res.RevealedType
			p.PerceivedTruth = true
			p.DisplayConfidence = min(1.0, t.Confidence*1.2)
		}
		out = append(out, p)
	}
	return out
}

// ViewRequest is the usual per-viewer query: filter, then project.
type ViewRequest struct {
	ViewerID    string
	CurrentTurn int
	ProjectRequest
}

// View filters tells for the viewer and projects what survives.
func (g *Gate) View(tells []tell.Tell, req ViewRequest) []Projection {
	visible := FilterByIntel(tells, req.ViewerID, req.Tiers, req.CurrentTurn)
	return g.Project(visible, req.ProjectRequest)
}

// BluffDetectionProbability previews the chance of seeing through an
// archetype's bluffs. It never rolls.
func (g *Gate) BluffDetectionProbability(tier signal.IntelLevel, a signal.Archetype, researchBonus int) float64 {
	return g.engine.EstimateSuccessProbability(tier, a, researchBonus)
}

package tell

import (
	"math"
	"sort"

	"bottells/archetype"
	"bottells/dice"
	"bottells/signal"
)

const (
	maxBluffRate    = 0.8
	baseConfidence  = 0.6
	minConfidence   = 0.1
	maxConfidence   = 1.0
	bluffConfidence = 0.85
	minDuration     = 3
	maxDuration     = 5
)

var bluffMultipliers = map[signal.EmotionalState]float64{
	signal.EmotionDesperate:  1.5,
	signal.EmotionFearful:    1.3,
	signal.EmotionConfident:  0.7,
	signal.EmotionTriumphant: 0.7,
	signal.EmotionVengeful:   0.5,
}

var confidenceMultipliers = map[signal.EmotionalState]float64{
	signal.EmotionConfident:  1.2,
	signal.EmotionArrogant:   1.3,
	signal.EmotionDesperate:  0.8,
	signal.EmotionVengeful:   1.4,
	signal.EmotionFearful:    0.7,
	signal.EmotionTriumphant: 1.1,
	signal.EmotionNeutral:    1.0,
}

// TurnContext is what the generator needs to know about the emitting bot.
type TurnContext struct {
	Archetype signal.Archetype
	Emotion   *signal.Emotion // nil when the bot has no emotional state
	Turn      int
}

// Generator produces tells from decisions. Each call consumes draws from its
// Source in a fixed order, so a Generator built on a seeded Source replays
// exactly. A Generator is not safe for concurrent use.
type Generator struct {
	table *archetype.Table
	src   dice.Source
	newID IDFunc
}

type Option func(*Generator)

// WithIDs overrides how tell identifiers are minted.
func WithIDs(f IDFunc) Option {
	return func(g *Generator) {
		if f != nil {
			g.newID = f
		}
	}
}

// NewGenerator returns a Generator drawing from src. A nil table means
// the compiled-in defaults.
func NewGenerator(table *archetype.Table, src dice.Source, opts ...Option) *Generator {
	if table == nil {
		table = archetype.Default()
	}
	g := &Generator{
		table: table,
		src:   src,
		newID: RandomIDs(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ShouldEmit draws once against the archetype's emission rate.
func (g *Generator) ShouldEmit(a signal.Archetype) bool {
	return g.src.Float64() < g.table.Policy(a).EmissionRate
}

// ShouldBluff draws once against the emotion-adjusted bluff rate.
func (g *Generator) ShouldBluff(a signal.Archetype, emotion *signal.Emotion) bool {
	return g.src.Float64() < BluffRate(g.table.Policy(a), emotion)
}

// BluffRate is the archetype bluff rate scaled by emotion and capped at 0.8.
func BluffRate(p archetype.Policy, emotion *signal.Emotion) float64 {
	rate := p.BluffRate
	if emotion != nil {
		if m, ok := bluffMultipliers[emotion.State]; ok {
			rate *= m
		}
	}
	return math.Min(rate, maxBluffRate)
}

// Confidence is how strongly a tell reads, in [0.1, 1.0].
func (g *Generator) Confidence(a signal.Archetype, emotion *signal.Emotion, isBluff bool) float64 {
	return Confidence(g.table.Policy(a), emotion, isBluff)
}

// Confidence computes tell confidence for policy p without a Generator.
// The result is clamped to [0.1, 1.0].
func Confidence(p archetype.Policy, emotion *signal.Emotion, isBluff bool) float64 {
	c := baseConfidence + (p.EmissionRate-0.5)*0.3
	if emotion != nil {
		m, ok := confidenceMultipliers[emotion.State]
		if !ok {
			m = 1.0
		}
		c = c*m + emotion.Intensity*0.1
	}
	if isBluff {
		c *= bluffConfidence
	}
	return clamp(c, minConfidence, maxConfidence)
}

// Duration draws how many turns a tell stays visible, in [3, 5].
func (g *Generator) Duration(a signal.Archetype) int {
	w := g.table.Policy(a).AdvanceWarning
	base := (w.Min+w.Max)/2 + 3
	variance := g.src.Roll(3) - 2
	d := base + variance
	if d < minDuration {
		return minDuration
	}
	if d > maxDuration {
		return maxDuration
	}
	return d
}

// FromDecision attempts to turn one decision into a tell.
//
// The emission draw always happens; the bluff draw happens only when the
// emission draw succeeds. Replays depend on this variable draw count.
func (g *Generator) FromDecision(d Decision, empireID, gameID string, ctx TurnContext) Result {
	trueType := Classify(d)
	if trueType == signal.TypeNone {
		return Result{Generated: false, Reason: ReasonNoSignal}
	}
	if !g.ShouldEmit(ctx.Archetype) {
		return Result{Generated: false, Reason: ReasonNotRevealed}
	}

	isBluff := g.ShouldBluff(ctx.Archetype, ctx.Emotion)
	displayType := trueType
	if isBluff {
		displayType = Invert(trueType)
	}
	confidence := g.Confidence(ctx.Archetype, ctx.Emotion, isBluff)
	duration := g.Duration(ctx.Archetype)

	t := &Tell{
		ID:             g.newID(),
		EmpireID:       empireID,
		GameID:         gameID,
		Type:           displayType,
		TargetEmpireID: targetOf(d),
		IsBluff:        isBluff,
		Confidence:     confidence,
		CreatedAtTurn:  ctx.Turn,
		ExpiresAtTurn:  ctx.Turn + duration,
	}
	if isBluff {
		intention := trueType
		t.TrueIntention = &intention
	}
	return Result{Generated: true, Tell: t}
}

// ForTurn runs FromDecision over decisions in order. When more than one tell
// is generated only the highest-priority one is returned; ties keep the
// earliest. Otherwise every result, generated or not, is returned.
func (g *Generator) ForTurn(decisions []Decision, empireID, gameID string, ctx TurnContext) []Result {
	results := make([]Result, 0, len(decisions))
	generated := make([]Result, 0, len(decisions))
	for _, d := range decisions {
		r := g.FromDecision(d, empireID, gameID, ctx)
		results = append(results, r)
		if r.Generated {
			generated = append(generated, r)
		}
	}
	if len(generated) <= 1 {
		return results
	}

	sort.SliceStable(generated, func(i, j int) bool {
		return Priority(generated[i].Tell.Type) > Priority(generated[j].Tell.Type)
	})
	return generated[:1]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

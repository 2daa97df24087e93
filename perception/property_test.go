package perception

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"bottells/dice"
	"bottells/signal"
	"bottells/tell"
)

func genTier() gopter.Gen {
	return gen.IntRange(int(signal.IntelUnknown), int(signal.IntelFull))
}

func genArchetype() gopter.Gen {
	return gen.IntRange(int(signal.ArchetypeWarlord), int(signal.ArchetypeOpportunist))
}

func TestEmitterDifficultyIsMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	e := NewEngine(nil, dice.New(1))

	properties.Property("difficulty never drops as command rises", prop.ForAll(
		func(a, cmd, doc, step int) bool {
			arch := signal.Archetype(a)
			return e.EmitterDifficulty(arch, Stats{Command: cmd + step, Doctrine: doc}) >=
				e.EmitterDifficulty(arch, Stats{Command: cmd, Doctrine: doc})
		},
		genArchetype(), gen.IntRange(-20, 40), gen.IntRange(-20, 40), gen.IntRange(0, 10),
	))
	properties.Property("difficulty never drops as doctrine rises", prop.ForAll(
		func(a, cmd, doc, step int) bool {
			arch := signal.Archetype(a)
			return e.EmitterDifficulty(arch, Stats{Command: cmd, Doctrine: doc + step}) >=
				e.EmitterDifficulty(arch, Stats{Command: cmd, Doctrine: doc})
		},
		genArchetype(), gen.IntRange(-20, 40), gen.IntRange(-20, 40), gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func TestObserverPerceptionIsMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("perception grows with tier, research and roll", prop.ForAll(
		func(tier, research, roll int) bool {
			base := ObserverPerception(signal.IntelLevel(tier), research, roll)
			if tier < int(signal.IntelFull) && ObserverPerception(signal.IntelLevel(tier+1), research, roll) < base {
				return false
			}
			if ObserverPerception(signal.IntelLevel(tier), research+1, roll) < base {
				return false
			}
			if roll < 20 && ObserverPerception(signal.IntelLevel(tier), research, roll+1) < base {
				return false
			}
			return true
		},
		genTier(), gen.IntRange(0, 12), gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

func TestEstimateSuccessProbabilityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	e := NewEngine(nil, dice.New(1))

	properties.Property("probability stays within [0,1]", prop.ForAll(
		func(tier, a, research int) bool {
			p := e.EstimateSuccessProbability(signal.IntelLevel(tier), signal.Archetype(a), research)
			return p >= 0 && p <= 1
		},
		genTier(), genArchetype(), gen.IntRange(-30, 30),
	))
	properties.Property("probability never drops as tier or research improve", prop.ForAll(
		func(tier, a, research int) bool {
			arch := signal.Archetype(a)
			base := e.EstimateSuccessProbability(signal.IntelLevel(tier), arch, research)
			if tier < int(signal.IntelFull) && e.EstimateSuccessProbability(signal.IntelLevel(tier+1), arch, research) < base {
				return false
			}
			return e.EstimateSuccessProbability(signal.IntelLevel(tier), arch, research+1) >= base
		},
		genTier(), genArchetype(), gen.IntRange(-30, 30),
	))

	properties.TestingRun(t)
}

func TestCheckNeverRevealsTruthfulTell(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("truthful tells reveal nothing at any roll", prop.ForAll(
		func(tier, a, roll int) bool {
			e := NewEngine(nil, fixedRoll(roll))
			res := e.Check(CheckRequest{
				Tier:      signal.IntelLevel(tier),
				Tell:      bluffTell(signal.TypeSilence, signal.TypeFleetMovement),
				Archetype: signal.Archetype(a),
			})
			truthful := e.Check(CheckRequest{
				Tier:      signal.IntelLevel(tier),
				Tell:      truthfulTell(),
				Archetype: signal.Archetype(a),
			})
			return truthful.RevealedType == nil && !truthful.IsBluff &&
				(res.RevealedType != nil) == res.Success
		},
		genTier(), genArchetype(), gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

func truthfulTell() tell.Tell {
	return tell.Tell{EmpireID: "e1", Type: signal.TypeMilitaryBuildup, Confidence: 0.5}
}

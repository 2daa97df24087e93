// Package perception resolves whether an observer sees through a bluff.
//
// Every check pits an observer's perception (intel tier, research and one
// hidden d20) against the emitter's deception difficulty. The estimators in
// this package are closed-form and never roll; use them for previews.
package perception

import (
	"math"

	"bottells/archetype"
	"bottells/dice"
	"bottells/signal"
	"bottells/tell"
)

const (
	baseScore        = 10
	maxResearchBonus = 5
	averageRoll      = 10
	defaultStat      = 10
	commandWeight    = 1.0
	doctrineWeight   = 0.5
)

var tierModifiers = map[signal.IntelLevel]int{
	signal.IntelUnknown:  0,
	signal.IntelBasic:    2,
	signal.IntelModerate: 5,
	signal.IntelFull:     8,
}

// Stats are the emitter's command (deception skill) and doctrine
// (psychological resistance).
type Stats struct {
	Command  int `json:"cmd" yaml:"cmd"`
	Doctrine int `json:"doc" yaml:"doc"`
}

// DefaultStats is assumed for empires without recorded stats.
var DefaultStats = Stats{Command: defaultStat, Doctrine: defaultStat}

// Result is one resolved perception check.
type Result struct {
	Roll         int          `json:"roll"`
	Perception   int          `json:"perception"`
	Difficulty   int          `json:"difficulty"`
	Margin       int          `json:"margin"`
	Success      bool         `json:"success"`
	IsBluff      bool         `json:"isBluff"`
	RevealedType *signal.Type `json:"revealedType,omitempty"` // set only when a bluff is seen through
}

// CheckRequest describes one observer looking at one tell.
type CheckRequest struct {
	Tier          signal.IntelLevel
	ResearchBonus int
	Tell          tell.Tell
	Archetype     signal.Archetype
	Stats         *Stats // nil uses DefaultStats
}

// Engine runs perception checks. It draws from its Source on Check and
// RollDie only; everything else is deterministic.
type Engine struct {
	table *archetype.Table
	src   dice.Source
}

func NewEngine(table *archetype.Table, src dice.Source) *Engine {
	if table == nil {
		table = archetype.Default()
	}
	return &Engine{table: table, src: src}
}

// RollDie rolls the hidden d20. A non-nil seed makes the roll a pure
// function of the seed and leaves the engine's Source untouched.
func (e *Engine) RollDie(seed *int64) int {
	if seed != nil {
		return dice.SeededRoll(*seed, dice.D20)
	}
	return e.src.Roll(dice.D20)
}

// TierModifier is the flat perception bonus a tier grants.
func TierModifier(tier signal.IntelLevel) int {
	return tierModifiers[tier]
}

// ObserverPerception is 10 + tier modifier + research (capped at 5) + roll.
func ObserverPerception(tier signal.IntelLevel, researchBonus, roll int) int {
	return baseScore + TierModifier(tier) + min(researchBonus, maxResearchBonus) + roll
}

// EmitterDifficulty is the DC an observer must meet to see through a bluff.
func (e *Engine) EmitterDifficulty(a signal.Archetype, stats Stats) int {
	cmd := int(math.Floor(float64(stats.Command-defaultStat) * commandWeight))
	doc := int(math.Floor(float64(stats.Doctrine-defaultStat) * doctrineWeight))
	return baseScore + cmd + doc + e.table.Policy(a).DeceptionModifier
}

// StaticPerception is perception with an average roll, for previews.
func StaticPerception(tier signal.IntelLevel, researchBonus int) int {
	return ObserverPerception(tier, researchBonus, averageRoll)
}

// Check draws exactly one hidden roll and resolves the observer against the
// tell. Nothing is cached: checking the same tell twice rolls twice.
func (e *Engine) Check(req CheckRequest) Result {
	stats := DefaultStats
	if req.Stats != nil {
		stats = *req.Stats
	}
	roll := e.RollDie(nil)
	perception := ObserverPerception(req.Tier, req.ResearchBonus, roll)
	difficulty := e.EmitterDifficulty(req.Archetype, stats)

	res := Result{
		Roll:       roll,
		Perception: perception,
		Difficulty: difficulty,
		Margin:     perception - difficulty,
		Success:    perception >= difficulty,
		IsBluff:    req.Tell.IsBluff,
	}
	if res.IsBluff && res.Success && req.Tell.TrueIntention != nil {
		revealed := *req.Tell.TrueIntention
		res.RevealedType = &revealed
	}
	return res
}

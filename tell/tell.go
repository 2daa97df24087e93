// Package tell turns bot decisions into behavioral signals.
//
// A decision is classified into a signal type, then two draws decide whether
// the bot leaks it at all and whether the leak is an inverted bluff. The
// resulting Tell is immutable; per-viewer interpretation lives in package
// intel.
package tell

import "bottells/signal"

// Tell is one behavioral signal emitted by a bot empire.
type Tell struct {
	ID             string       `json:"id"`
	EmpireID       string       `json:"empireId"`
	GameID         string       `json:"gameId"`
	Type           signal.Type  `json:"tellType"`
	TargetEmpireID string       `json:"targetEmpireId,omitempty"`
	IsBluff        bool         `json:"isBluff"`
	TrueIntention  *signal.Type `json:"trueIntention,omitempty"` // set iff IsBluff
	Confidence     float64      `json:"confidence"`
	CreatedAtTurn  int          `json:"createdAtTurn"`
	ExpiresAtTurn  int          `json:"expiresAtTurn"`
}

// Expired reports whether the tell is no longer visible at turn. A tell is
// still visible on its expiry turn.
func (t Tell) Expired(turn int) bool {
	return t.ExpiresAtTurn < turn
}

// Intention returns what the bot actually intends: the true intention for
// a bluff, the displayed type otherwise.
func (t Tell) Intention() signal.Type {
	if t.IsBluff && t.TrueIntention != nil {
		return *t.TrueIntention
	}
	return t.Type
}

const (
	ReasonNoSignal    = "decision produces no signal"
	ReasonNotRevealed = "archetype rolled not to reveal"
)

// Result is the outcome of one generation attempt. Tell is nil unless
// Generated is true; Reason is empty when Generated is true.
type Result struct {
	Generated bool   `json:"generated"`
	Reason    string `json:"reason,omitempty"`
	Tell      *Tell  `json:"tell,omitempty"`
}

// inversions is the bluff table. It is directed: following an arrow twice
// does not necessarily return to the start.
var inversions = map[signal.Type]signal.Type{
	signal.TypeMilitaryBuildup:     signal.TypeDiplomaticOverture,
	signal.TypeFleetMovement:       signal.TypeSilence,
	signal.TypeTargetFixation:      signal.TypeEconomicPreparation,
	signal.TypeDiplomaticOverture:  signal.TypeAggressionSpike,
	signal.TypeEconomicPreparation: signal.TypeMilitaryBuildup,
	signal.TypeSilence:             signal.TypeDiplomaticOverture,
	signal.TypeAggressionSpike:     signal.TypeTreatyInterest,
	signal.TypeTreatyInterest:      signal.TypeAggressionSpike,
}

// Invert returns the signal a bluff displays in place of t. Types outside
// the table are returned unchanged.
func Invert(t signal.Type) signal.Type {
	if inv, ok := inversions[t]; ok {
		return inv
	}
	return t
}

var priorities = map[signal.Type]int{
	signal.TypeAggressionSpike:     10,
	signal.TypeMilitaryBuildup:     8,
	signal.TypeTargetFixation:      7,
	signal.TypeFleetMovement:       6,
	signal.TypeDiplomaticOverture:  5,
	signal.TypeTreatyInterest:      4,
	signal.TypeEconomicPreparation: 3,
	signal.TypeSilence:             1,
}

// Priority ranks signal types when only one tell per turn may survive.
func Priority(t signal.Type) int {
	return priorities[t]
}

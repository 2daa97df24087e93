package intel

import (
	"fmt"

	"bottells/signal"
)

var descriptions = map[signal.Type]string{
	signal.TypeMilitaryBuildup:     "Significant military buildup observed",
	signal.TypeFleetMovement:       "Fleet movements detected near the border",
	signal.TypeTargetFixation:      "Intelligence suggests focus on a specific target",
	signal.TypeDiplomaticOverture:  "Diplomatic overtures are being prepared",
	signal.TypeEconomicPreparation: "Economic resources are being stockpiled",
	signal.TypeSilence:             "Communications have gone quiet",
	signal.TypeAggressionSpike:     "Hostile intentions are escalating",
	signal.TypeTreatyInterest:      "Interest in a treaty has been signalled",
}

// Describe renders a projection for a viewer at tier. Below basic intel the
// result is empty; basic intel gets only a coarse bucket.
func Describe(p Projection, tier signal.IntelLevel) string {
	if !CanSeeAny(tier) {
		return ""
	}
	if !CanSeeType(tier) {
		switch {
		case IsThreat(p.DisplayType):
			return "Hostile activity detected"
		case IsDiplomatic(p.DisplayType):
			return "Diplomatic signals detected"
		default:
			return "Activity detected"
		}
	}
	if d, ok := descriptions[p.DisplayType]; ok {
		return d
	}
	return "Activity detected"
}

// DescribeEmotion renders the emitter's mood, visible only with full intel.
func DescribeEmotion(e *signal.Emotion, tier signal.IntelLevel) string {
	if e == nil || !CanSeeEmotionalContext(tier) {
		return ""
	}
	switch {
	case e.Intensity >= 0.7:
		return fmt.Sprintf("Appears intensely %s", e.State)
	case e.Intensity >= 0.3:
		return fmt.Sprintf("Appears %s", e.State)
	default:
		return fmt.Sprintf("Appears faintly %s", e.State)
	}
}

package signal

import (
	"fmt"
	"strings"
)

// EmotionalState is the mood a bot is in when it decides.
type EmotionalState byte

const (
	EmotionNeutral    EmotionalState = 0
	EmotionConfident  EmotionalState = 1
	EmotionArrogant   EmotionalState = 2
	EmotionDesperate  EmotionalState = 3
	EmotionVengeful   EmotionalState = 4
	EmotionFearful    EmotionalState = 5
	EmotionTriumphant EmotionalState = 6
)

var EmotionalStateDictionary = map[EmotionalState]string{
	EmotionNeutral:    "neutral",
	EmotionConfident:  "confident",
	EmotionArrogant:   "arrogant",
	EmotionDesperate:  "desperate",
	EmotionVengeful:   "vengeful",
	EmotionFearful:    "fearful",
	EmotionTriumphant: "triumphant",
}

func (s EmotionalState) String() string {
	if name, ok := EmotionalStateDictionary[s]; ok {
		return name
	}
	return "unknown"
}

// ParseEmotionalState matches raw against the emotional state names,
// ignoring case and surrounding space.
func ParseEmotionalState(raw string) (EmotionalState, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for s, name := range EmotionalStateDictionary {
		if name == key {
			return s, true
		}
	}
	return EmotionNeutral, false
}

func (s EmotionalState) MarshalText() ([]byte, error) {
	if _, ok := EmotionalStateDictionary[s]; !ok {
		return nil, fmt.Errorf("marshal emotional state %d: unknown", s)
	}
	return []byte(s.String()), nil
}

func (s *EmotionalState) UnmarshalText(text []byte) error {
	parsed, ok := ParseEmotionalState(string(text))
	if !ok {
		return fmt.Errorf("unsupported emotional state %q", string(text))
	}
	*s = parsed
	return nil
}

// Emotion is a bot's current emotional state and how strongly it is felt.
type Emotion struct {
	State     EmotionalState `json:"state" yaml:"state"`
	Intensity float64        `json:"intensity" yaml:"intensity"` // 0.0–1.0
}

package replay

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	"bottells/perception"
	"bottells/tell"
)

// TurnSpec is a scripted game: who the bots are, what they decide each turn
// and who is watching. The same TurnSpec always replays to the same tape.
type TurnSpec struct {
	GameID   string          `json:"game_id,omitempty"`
	Seed     int64           `json:"seed"`
	Policies json.RawMessage `json:"policies,omitempty"` // archetype overrides, same shape as a policy file
	Bots     []BotSpec       `json:"bots"`
	Turns    []TurnStep      `json:"turns"`
	Viewers  []ViewerSpec    `json:"viewers,omitempty"`
}

type BotSpec struct {
	EmpireID  string            `json:"empire_id"`
	Archetype string            `json:"archetype"`
	Stats     *perception.Stats `json:"stats,omitempty"`
	Emotion   *EmotionSpec      `json:"emotion,omitempty"`
}

type EmotionSpec struct {
	State     string  `json:"state"`
	Intensity float64 `json:"intensity"`
}

// TurnStep is one game turn. Emotions are applied before any decision is
// turned into a tell.
type TurnStep struct {
	Turn      int                    `json:"turn"`
	Emotions  map[string]EmotionSpec `json:"emotions,omitempty"`
	Decisions []DecisionSpec         `json:"decisions"`
}

type DecisionSpec struct {
	EmpireID string `json:"empire_id"`
	tell.Decision
}

// ViewerSpec is an empire watching the game. Intel maps emitting empire to
// intel tier name; missing empires are unknown.
type ViewerSpec struct {
	EmpireID      string            `json:"empire_id"`
	Intel         map[string]string `json:"intel"`
	ResearchBonus int               `json:"research_bonus,omitempty"`
}

type TurnTape struct {
	TapeVersion int           `json:"tape_version"`
	GameID      string        `json:"game_id"`
	Seed        int64         `json:"seed"`
	Events      []ReplayEvent `json:"events"`
}

type ReplayEvent struct {
	Type        string           `json:"type"`
	Seq         uint64           `json:"seq"`
	Turn        int              `json:"turn"`
	Value       *structpb.Struct `json:"value,omitempty"`
	EnvelopeB64 string           `json:"envelope_b64,omitempty"`
}

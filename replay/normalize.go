package replay

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bottells/archetype"
	"bottells/bot"
	"bottells/signal"
	"bottells/tell"
)

const defaultGameID = "replay_local"

type normalizedTurn struct {
	turn      int
	emotions  map[string]signal.Emotion
	decisions map[string][]tell.Decision
}

type normalizedViewer struct {
	empireID      string
	tiers         map[string]signal.IntelLevel
	researchBonus int
}

type normalizedSpec struct {
	gameID  string
	seed    int64
	table   *archetype.Table
	bots    []bot.BotSpec
	turns   []normalizedTurn
	viewers []normalizedViewer
}

func normalizeSpec(spec TurnSpec) (normalizedSpec, error) {
	var out normalizedSpec
	if spec.Seed == 0 {
		return out, headerError("invalid_seed", "seed must be non-zero")
	}
	out.seed = spec.Seed
	out.gameID = strings.TrimSpace(spec.GameID)
	if out.gameID == "" {
		out.gameID = defaultGameID
	}

	out.table = archetype.Default()
	if len(spec.Policies) > 0 {
		table, err := archetype.LoadJSON(spec.Policies)
		if err != nil {
			reason := "invalid_policy"
			if errors.Is(err, archetype.ErrUnknownArchetype) {
				reason = "unknown_archetype"
			}
			return out, headerError(reason, "%v", err)
		}
		out.table = table
	}

	if len(spec.Bots) == 0 {
		return out, headerError("invalid_bot", "at least one bot is required")
	}
	seen := make(map[string]struct{}, len(spec.Bots))
	for i, b := range spec.Bots {
		id := strings.TrimSpace(b.EmpireID)
		if id == "" {
			return out, headerError("invalid_bot", "bot %d has no empire_id", i)
		}
		if _, dup := seen[id]; dup {
			return out, &ReplayError{StepIndex: -1, Reason: "duplicate_bot", Message: "empire listed twice", EmpireID: id}
		}
		seen[id] = struct{}{}

		a, ok := signal.ParseArchetype(b.Archetype)
		if !ok {
			return out, &ReplayError{StepIndex: -1, Reason: "unknown_archetype", Message: fmt.Sprintf("unsupported archetype %q", b.Archetype), EmpireID: id}
		}
		ns := bot.BotSpec{EmpireID: id, Archetype: a, Stats: b.Stats}
		if b.Emotion != nil {
			e, err := parseEmotion(*b.Emotion)
			if err != nil {
				return out, &ReplayError{StepIndex: -1, Reason: "invalid_emotion", Message: err.Error(), EmpireID: id}
			}
			ns.Emotion = &e
		}
		out.bots = append(out.bots, ns)
	}

	lastTurn := 0
	for stepIdx, step := range spec.Turns {
		if step.Turn <= lastTurn {
			return out, &ReplayError{StepIndex: int32(stepIdx), Reason: "invalid_turn", Message: fmt.Sprintf("turn %d does not follow turn %d", step.Turn, lastTurn)}
		}
		lastTurn = step.Turn

		nt := normalizedTurn{
			turn:      step.Turn,
			emotions:  make(map[string]signal.Emotion, len(step.Emotions)),
			decisions: make(map[string][]tell.Decision),
		}
		for id, es := range step.Emotions {
			if _, ok := seen[id]; !ok {
				return out, &ReplayError{StepIndex: int32(stepIdx), Reason: "invalid_emotion", Message: "emotion for an empire that is not a bot", EmpireID: id}
			}
			e, err := parseEmotion(es)
			if err != nil {
				return out, &ReplayError{StepIndex: int32(stepIdx), Reason: "invalid_emotion", Message: err.Error(), EmpireID: id}
			}
			nt.emotions[id] = e
		}
		for _, d := range step.Decisions {
			id := strings.TrimSpace(d.EmpireID)
			if _, ok := seen[id]; !ok {
				return out, &ReplayError{StepIndex: int32(stepIdx), Reason: "invalid_decision", Message: "decision for an empire that is not a bot", EmpireID: id}
			}
			if d.Kind == "" {
				return out, &ReplayError{StepIndex: int32(stepIdx), Reason: "invalid_decision", Message: "decision kind is required", EmpireID: id}
			}
			nt.decisions[id] = append(nt.decisions[id], d.Decision)
		}
		out.turns = append(out.turns, nt)
	}

	for i, v := range spec.Viewers {
		id := strings.TrimSpace(v.EmpireID)
		if id == "" {
			return out, headerError("invalid_viewer", "viewer %d has no empire_id", i)
		}
		if v.ResearchBonus < 0 {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_viewer", Message: "research_bonus must be >= 0", EmpireID: id}
		}
		nv := normalizedViewer{
			empireID:      id,
			tiers:         make(map[string]signal.IntelLevel, len(v.Intel)),
			researchBonus: v.ResearchBonus,
		}
		for target, raw := range v.Intel {
			tier, ok := signal.ParseIntelLevel(raw)
			if !ok {
				return out, &ReplayError{StepIndex: -1, Reason: "invalid_viewer", Message: fmt.Sprintf("unsupported intel level %q for %s", raw, target), EmpireID: id}
			}
			nv.tiers[target] = tier
		}
		out.viewers = append(out.viewers, nv)
	}
	return out, nil
}

func parseEmotion(es EmotionSpec) (signal.Emotion, error) {
	state, ok := signal.ParseEmotionalState(es.State)
	if !ok {
		return signal.Emotion{}, fmt.Errorf("unsupported emotional state %q", es.State)
	}
	if es.Intensity < 0 || es.Intensity > 1 {
		return signal.Emotion{}, fmt.Errorf("emotion intensity %.2f outside [0,1]", es.Intensity)
	}
	return signal.Emotion{State: state, Intensity: es.Intensity}, nil
}

// sortedEmpires returns the keys of m in a stable order for tape output.
func sortedEmpires[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

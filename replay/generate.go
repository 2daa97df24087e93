package replay

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"bottells/archetype"
	"bottells/bot"
	"bottells/dice"
	"bottells/intel"
	"bottells/perception"
	"bottells/signal"
	"bottells/tell"
)

const (
	EventTellEmitted      = "tellEmitted"
	EventTellWithheld     = "tellWithheld"
	EventViewerProjection = "viewerProjection"
)

type options struct {
	log         *zap.Logger
	table       *archetype.Table
	maxParallel int
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.log = logger
		}
	}
}

// WithTable sets the policy table for specs that carry no policies of
// their own.
func WithTable(table *archetype.Table) Option {
	return func(o *options) {
		o.table = table
	}
}

func WithMaxParallel(n int) Option {
	return func(o *options) {
		o.maxParallel = n
	}
}

// GenerateTurnTape plays spec turn by turn: bots turn decisions into tells,
// then every viewer projects the tells still active. Perception rolls come
// from a Source derived from spec.Seed, so the tape is a pure function of
// spec.
func GenerateTurnTape(ctx context.Context, spec TurnSpec, opts ...Option) (*TurnTape, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}
	if len(spec.Policies) == 0 && o.table != nil {
		ns.table = o.table
	}

	master := dice.New(ns.seed)
	manager, err := bot.NewManager(bot.Config{GameID: ns.gameID, Seed: master.Int63(), MaxParallel: o.maxParallel}, ns.table,
		bot.WithLogger(o.log),
		bot.WithIDFactory(bot.SequentialIDFactory),
	)
	if err != nil {
		return nil, headerError("engine_init_failed", "%v", err)
	}
	for _, b := range ns.bots {
		if _, err := manager.Spawn(b); err != nil {
			return nil, &ReplayError{StepIndex: -1, Reason: "invalid_bot", Message: err.Error(), EmpireID: b.EmpireID}
		}
	}
	gate := intel.NewGate(perception.NewEngine(ns.table, dice.New(master.Int63())))

	builder := newTapeBuilder(ns.gameID)
	var active []tell.Tell
	// emitter emotion at the time each active tell was created, by tell ID
	moods := make(map[string]*signal.Emotion)
	for stepIdx, step := range ns.turns {
		for _, id := range sortedEmpires(step.emotions) {
			e := step.emotions[id]
			if err := manager.SetEmotion(id, &e); err != nil {
				return nil, &ReplayError{StepIndex: int32(stepIdx), Reason: "invalid_emotion", Message: err.Error(), EmpireID: id}
			}
		}

		results, err := manager.RunTurn(ctx, step.turn, step.decisions)
		if err != nil {
			reason := "turn_failed"
			if errors.Is(err, bot.ErrUnknownBot) {
				reason = "invalid_decision"
			}
			return nil, &ReplayError{StepIndex: int32(stepIdx), Reason: reason, Message: err.Error()}
		}

		for _, id := range sortedEmpires(results) {
			for _, r := range results[id] {
				if r.Generated {
					active = append(active, *r.Tell)
					if inst := manager.Get(id); inst != nil {
						moods[r.Tell.ID] = inst.Emotion()
					}
					err = builder.push(EventTellEmitted, step.turn, map[string]any{"tell": tellToMap(r.Tell)})
				} else {
					err = builder.push(EventTellWithheld, step.turn, withheldToMap(id, r))
				}
				if err != nil {
					return nil, &ReplayError{StepIndex: int32(stepIdx), Reason: "encode_failed", Message: err.Error(), EmpireID: id}
				}
			}
		}

		for _, t := range active {
			if t.Expired(step.turn) {
				delete(moods, t.ID)
			}
		}
		active = pruneExpired(active, step.turn)
		archetypes := manager.Archetypes()
		stats := manager.Stats()
		for _, v := range ns.viewers {
			projections := gate.View(active, intel.ViewRequest{
				ViewerID:    v.empireID,
				CurrentTurn: step.turn,
				ProjectRequest: intel.ProjectRequest{
					Tiers:         v.tiers,
					Archetypes:    archetypes,
					Stats:         stats,
					ResearchBonus: v.researchBonus,
				},
			})
			for _, p := range projections {
				tier := v.tiers[p.Tell.EmpireID]
				emotion := intel.DescribeEmotion(moods[p.Tell.ID], tier)
				payload := projectionToMap(v.empireID, p, intel.Describe(p, tier), emotion)
				if err := builder.push(EventViewerProjection, step.turn, payload); err != nil {
					return nil, &ReplayError{StepIndex: int32(stepIdx), Reason: "encode_failed", Message: err.Error(), EmpireID: v.empireID}
				}
			}
		}
	}

	return &TurnTape{
		TapeVersion: 1,
		GameID:      ns.gameID,
		Seed:        ns.seed,
		Events:      builder.events,
	}, nil
}

func pruneExpired(tells []tell.Tell, turn int) []tell.Tell {
	out := tells[:0]
	for _, t := range tells {
		if !t.Expired(turn) {
			out = append(out, t)
		}
	}
	return out
}

type tapeBuilder struct {
	gameID string
	seq    uint64
	events []ReplayEvent
}

func newTapeBuilder(gameID string) *tapeBuilder {
	return &tapeBuilder{
		gameID: gameID,
		events: make([]ReplayEvent, 0, 64),
	}
}

func (b *tapeBuilder) push(eventType string, turn int, payload map[string]any) error {
	b.seq++
	env, err := structpb.NewStruct(map[string]any{
		"gameId":  b.gameID,
		"seq":     b.seq,
		"turn":    turn,
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		return err
	}
	encoded, err := encodeEnvelope(env)
	if err != nil {
		return err
	}
	b.events = append(b.events, ReplayEvent{
		Type:        eventType,
		Seq:         b.seq,
		Turn:        turn,
		Value:       env,
		EnvelopeB64: encoded,
	})
	return nil
}

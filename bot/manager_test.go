package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"bottells/perception"
	"bottells/signal"
	"bottells/tell"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestManager(t *testing.T, seed int64, maxParallel int) *Manager {
	t.Helper()
	m, err := NewManager(Config{GameID: "g1", Seed: seed, MaxParallel: maxParallel}, nil, WithIDFactory(SequentialIDFactory))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	for _, spec := range []BotSpec{
		{EmpireID: "warlord", Archetype: signal.ArchetypeWarlord},
		{EmpireID: "schemer", Archetype: signal.ArchetypeSchemer, Emotion: &signal.Emotion{State: signal.EmotionDesperate, Intensity: 0.9}},
		{EmpireID: "turtle", Archetype: signal.ArchetypeTurtle, Stats: &perception.Stats{Command: 14, Doctrine: 8}},
	} {
		if _, err := m.Spawn(spec); err != nil {
			t.Fatalf("spawn %s: %v", spec.EmpireID, err)
		}
	}
	return m
}

func turnDecisions() map[string][]tell.Decision {
	return map[string][]tell.Decision{
		"warlord": {
			{Kind: tell.DecisionAttack, TargetID: "turtle"},
			{Kind: tell.DecisionBuildUnits, UnitType: "heavy_cruisers"},
		},
		"schemer": {
			{Kind: tell.DecisionCovertOp, Operation: "sabotage", TargetID: "warlord"},
		},
		"turtle": {
			{Kind: tell.DecisionBuildUnits, UnitType: "stations"},
			{Kind: tell.DecisionDoNothing},
		},
	}
}

func runTurns(t *testing.T, m *Manager, turns int) []map[string][]tell.Result {
	t.Helper()
	var out []map[string][]tell.Result
	for turn := 1; turn <= turns; turn++ {
		results, err := m.RunTurn(context.Background(), turn, turnDecisions())
		if err != nil {
			t.Fatalf("turn %d: %v", turn, err)
		}
		out = append(out, results)
	}
	return out
}

func TestNewManagerValidatesConfig(t *testing.T) {
	tests := []Config{
		{},
		{GameID: "g1", MaxParallel: -1},
	}
	for _, cfg := range tests {
		if _, err := NewManager(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("NewManager(%+v) err = %v, want ErrInvalidConfig", cfg, err)
		}
	}
}

func TestNewManagerPicksSeed(t *testing.T) {
	m, err := NewManager(Config{GameID: "g1"}, nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if m.Seed() == 0 {
		t.Fatalf("expected a random master seed")
	}
	if m.cfg.MaxParallel != DefaultMaxParallel {
		t.Fatalf("maxParallel = %d, want %d", m.cfg.MaxParallel, DefaultMaxParallel)
	}
}

func TestSpawnRejectsBadBots(t *testing.T) {
	m := newTestManager(t, 1, 0)

	if _, err := m.Spawn(BotSpec{EmpireID: "warlord", Archetype: signal.ArchetypeWarlord}); !errors.Is(err, ErrDuplicateBot) {
		t.Fatalf("duplicate spawn err = %v", err)
	}
	if _, err := m.Spawn(BotSpec{Archetype: signal.ArchetypeWarlord}); !errors.Is(err, ErrInvalidBot) {
		t.Fatalf("missing empire err = %v", err)
	}
	if _, err := m.Spawn(BotSpec{EmpireID: "x", Archetype: signal.Archetype(99)}); !errors.Is(err, ErrInvalidBot) {
		t.Fatalf("bad archetype err = %v", err)
	}
	if m.Count() != 3 {
		t.Fatalf("count = %d, want 3", m.Count())
	}
}

func TestRosterLifecycle(t *testing.T) {
	m := newTestManager(t, 1, 0)

	if !m.IsBot("turtle") || m.Get("turtle").Stats.Command != 14 {
		t.Fatalf("turtle not seated with its stats")
	}
	if m.Get("warlord").Stats != perception.DefaultStats {
		t.Fatalf("warlord should default stats")
	}
	if diff := cmp.Diff(map[string]signal.Archetype{
		"warlord": signal.ArchetypeWarlord,
		"schemer": signal.ArchetypeSchemer,
		"turtle":  signal.ArchetypeTurtle,
	}, m.Archetypes()); diff != "" {
		t.Fatalf("archetypes mismatch (-want +got):\n%s", diff)
	}

	m.Despawn("turtle")
	m.Despawn("turtle")
	if m.IsBot("turtle") || m.Count() != 2 {
		t.Fatalf("turtle should be gone, count=%d", m.Count())
	}
}

func TestSetEmotion(t *testing.T) {
	m := newTestManager(t, 1, 0)

	e := signal.Emotion{State: signal.EmotionVengeful, Intensity: 0.4}
	if err := m.SetEmotion("warlord", &e); err != nil {
		t.Fatalf("set emotion: %v", err)
	}
	e.Intensity = 1
	if got := m.Get("warlord").Emotion(); got == nil || got.Intensity != 0.4 {
		t.Fatalf("emotion not copied: %+v", got)
	}
	if err := m.SetEmotion("warlord", nil); err != nil || m.Get("warlord").Emotion() != nil {
		t.Fatalf("emotion not cleared: %v", err)
	}
	if err := m.SetEmotion("nobody", &e); !errors.Is(err, ErrUnknownBot) {
		t.Fatalf("unknown bot err = %v", err)
	}
}

func TestRunTurnIsDeterministic(t *testing.T) {
	a := runTurns(t, newTestManager(t, 42, 1), 5)
	b := runTurns(t, newTestManager(t, 42, 8), 5)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed diverged (-serial +parallel):\n%s", diff)
	}
}

func TestRunTurnBotsDrawIndependently(t *testing.T) {
	full := newTestManager(t, 9, 0)
	solo := newTestManager(t, 9, 0)

	for turn := 1; turn <= 5; turn++ {
		all, err := full.RunTurn(context.Background(), turn, turnDecisions())
		if err != nil {
			t.Fatalf("full turn %d: %v", turn, err)
		}
		one, err := solo.RunTurn(context.Background(), turn, map[string][]tell.Decision{"schemer": turnDecisions()["schemer"]})
		if err != nil {
			t.Fatalf("solo turn %d: %v", turn, err)
		}
		if diff := cmp.Diff(all["schemer"], one["schemer"]); diff != "" {
			t.Fatalf("turn %d: schemer depends on other bots (-full +solo):\n%s", turn, diff)
		}
	}
}

func TestRunTurnStampsTells(t *testing.T) {
	m := newTestManager(t, 3, 0)
	results, err := m.RunTurn(context.Background(), 7, turnDecisions())
	if err != nil {
		t.Fatalf("run turn: %v", err)
	}
	for empireID, rs := range results {
		for _, r := range rs {
			if !r.Generated {
				continue
			}
			if r.Tell.EmpireID != empireID || r.Tell.GameID != "g1" || r.Tell.CreatedAtTurn != 7 || r.Tell.ID == "" {
				t.Fatalf("badly stamped tell: %+v", r.Tell)
			}
		}
	}
	for _, r := range results["turtle"] {
		if r.Generated && r.Tell.Type == signal.TypeNone {
			t.Fatalf("do-nothing produced a tell")
		}
	}
}

func TestRunTurnUnknownBot(t *testing.T) {
	m := newTestManager(t, 1, 0)
	_, err := m.RunTurn(context.Background(), 1, map[string][]tell.Decision{"ghost": {{Kind: tell.DecisionAttack}}})
	if !errors.Is(err, ErrUnknownBot) {
		t.Fatalf("err = %v, want ErrUnknownBot", err)
	}
}

func TestRunTurnCancelled(t *testing.T) {
	m := newTestManager(t, 1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.RunTurn(ctx, 1, turnDecisions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

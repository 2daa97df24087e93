package bot

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bottells/archetype"
	"bottells/dice"
	"bottells/perception"
	"bottells/signal"
	"bottells/tell"
)

// BotSpec describes a bot to seat in the roster.
type BotSpec struct {
	EmpireID  string
	Archetype signal.Archetype
	Stats     *perception.Stats // nil uses perception.DefaultStats
	Emotion   *signal.Emotion
}

// Instance is one seated bot. Its generator owns a private Source seeded
// from the manager, so its draws never interleave with other bots.
type Instance struct {
	EmpireID  string
	Archetype signal.Archetype
	Stats     perception.Stats
	Seed      int64

	mu        sync.Mutex
	emotion   *signal.Emotion
	generator *tell.Generator
}

// Emotion returns a copy of the bot's current emotional state, or nil.
func (b *Instance) Emotion() *signal.Emotion {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.emotion == nil {
		return nil
	}
	e := *b.emotion
	return &e
}

func (b *Instance) forTurn(decisions []tell.Decision, gameID string, turn int) []tell.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generator.ForTurn(decisions, b.EmpireID, gameID, tell.TurnContext{
		Archetype: b.Archetype,
		Emotion:   b.emotion,
		Turn:      turn,
	})
}

// IDFactory builds the tell id minter for one bot.
type IDFactory func(gameID, empireID string) tell.IDFunc

// SequentialIDFactory gives every bot name-based ids, so a replayed game
// mints the same ids.
func SequentialIDFactory(gameID, empireID string) tell.IDFunc {
	return tell.SequentialIDs(gameID + "/" + empireID)
}

type Option func(*Manager)

// WithLogger sets the manager's logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.log = logger
		}
	}
}

// WithIDFactory sets how spawned bots mint tell IDs. A nil factory is
// ignored.
func WithIDFactory(f IDFactory) Option {
	return func(m *Manager) {
		if f != nil {
			m.ids = f
		}
	}
}

// Manager keeps the bot roster of one game and turns their decisions into
// tells.
type Manager struct {
	cfg   Config
	table *archetype.Table
	log   *zap.Logger
	ids   IDFactory

	mu     sync.RWMutex
	master *dice.Rand
	bots   map[string]*Instance
}

// NewManager creates a manager for cfg. A nil table uses archetype.Default.
func NewManager(cfg Config, table *archetype.Table, opts ...Option) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if cfg.Seed == 0 {
		seed, err := dice.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed bot manager: %w", err)
		}
		cfg.Seed = seed
	}
	if table == nil {
		table = archetype.Default()
	}

	m := &Manager{
		cfg:    cfg,
		table:  table,
		log:    zap.NewNop(),
		ids:    func(string, string) tell.IDFunc { return tell.RandomIDs() },
		master: dice.New(cfg.Seed),
		bots:   make(map[string]*Instance),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(zap.String("game", cfg.GameID))
	return m, nil
}

// Seed is the master seed actually in use; log it to reproduce a game.
func (m *Manager) Seed() int64 {
	return m.cfg.Seed
}

func (m *Manager) GameID() string {
	return m.cfg.GameID
}

func (m *Manager) Table() *archetype.Table {
	return m.table
}

// Spawn seats a bot. Child seeds come from the master rng in spawn order.
func (m *Manager) Spawn(spec BotSpec) (*Instance, error) {
	if spec.EmpireID == "" {
		return nil, fmt.Errorf("%w: empire id is required", ErrInvalidBot)
	}
	if !spec.Archetype.Valid() {
		return nil, fmt.Errorf("%w: empire %s has archetype %d", ErrInvalidBot, spec.EmpireID, spec.Archetype)
	}
	stats := perception.DefaultStats
	if spec.Stats != nil {
		stats = *spec.Stats
	}
	var emotion *signal.Emotion
	if spec.Emotion != nil {
		e := *spec.Emotion
		emotion = &e
	}

	m.mu.Lock()
	if _, ok := m.bots[spec.EmpireID]; ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDuplicateBot, spec.EmpireID)
	}
	seed := m.master.Int63()
	inst := &Instance{
		EmpireID:  spec.EmpireID,
		Archetype: spec.Archetype,
		Stats:     stats,
		Seed:      seed,
		emotion:   emotion,
		generator: tell.NewGenerator(m.table, dice.New(seed), tell.WithIDs(m.ids(m.cfg.GameID, spec.EmpireID))),
	}
	m.bots[spec.EmpireID] = inst
	m.mu.Unlock()

	m.log.Info("bot spawned",
		zap.String("empire", spec.EmpireID),
		zap.Stringer("archetype", spec.Archetype),
		zap.Int64("seed", seed),
	)
	return inst, nil
}

// Despawn removes a bot. Removing an unknown bot is a no-op.
func (m *Manager) Despawn(empireID string) {
	m.mu.Lock()
	inst := m.bots[empireID]
	delete(m.bots, empireID)
	m.mu.Unlock()

	if inst != nil {
		m.log.Info("bot despawned", zap.String("empire", empireID))
	}
}

// Get returns the bot for empireID, or nil.
func (m *Manager) Get(empireID string) *Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bots[empireID]
}

func (m *Manager) IsBot(empireID string) bool {
	return m.Get(empireID) != nil
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bots)
}

// SetEmotion replaces a bot's emotional state; nil clears it.
func (m *Manager) SetEmotion(empireID string, emotion *signal.Emotion) error {
	inst := m.Get(empireID)
	if inst == nil {
		return fmt.Errorf("%w: %s", ErrUnknownBot, empireID)
	}
	var e *signal.Emotion
	if emotion != nil {
		copied := *emotion
		e = &copied
	}
	inst.mu.Lock()
	inst.emotion = e
	inst.mu.Unlock()
	return nil
}

// Archetypes returns each seated bot's archetype, keyed by empire.
func (m *Manager) Archetypes() map[string]signal.Archetype {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]signal.Archetype, len(m.bots))
	for id, b := range m.bots {
		out[id] = b.Archetype
	}
	return out
}

// Stats returns each seated bot's stats, keyed by empire.
func (m *Manager) Stats() map[string]perception.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]perception.Stats, len(m.bots))
	for id, b := range m.bots {
		out[id] = b.Stats
	}
	return out
}

// RunTurn generates tells for every empire in decisions. Bots run in
// parallel, bounded by Config.MaxParallel. Each bot draws only from its own
// Source, so the results do not depend on scheduling.
func (m *Manager) RunTurn(ctx context.Context, turn int, decisions map[string][]tell.Decision) (map[string][]tell.Result, error) {
	bots := make(map[string]*Instance, len(decisions))
	m.mu.RLock()
	for empireID := range decisions {
		inst := m.bots[empireID]
		if inst == nil {
			m.mu.RUnlock()
			return nil, fmt.Errorf("%w: %s", ErrUnknownBot, empireID)
		}
		bots[empireID] = inst
	}
	m.mu.RUnlock()

	var (
		mu  sync.Mutex
		out = make(map[string][]tell.Result, len(bots))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.MaxParallel)
	for empireID, inst := range bots {
		empireID, inst := empireID, inst
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results := inst.forTurn(decisions[empireID], m.cfg.GameID, turn)
			m.logResults(empireID, turn, results)

			mu.Lock()
			out[empireID] = results
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run turn %d: %w", turn, err)
	}
	return out, nil
}

func (m *Manager) logResults(empireID string, turn int, results []tell.Result) {
	for _, r := range results {
		if !r.Generated {
			m.log.Debug("tell withheld",
				zap.String("empire", empireID),
				zap.Int("turn", turn),
				zap.String("reason", r.Reason),
			)
			continue
		}
		m.log.Debug("tell generated",
			zap.String("empire", empireID),
			zap.Int("turn", turn),
			zap.Stringer("signal", r.Tell.Type),
			zap.Bool("bluff", r.Tell.IsBluff),
		)
	}
}

package bot

import (
	"errors"
	"fmt"
)

// DefaultMaxParallel bounds how many bots RunTurn evaluates at once when the
// config leaves it unset.
const DefaultMaxParallel = 8

var (
	ErrUnknownBot    = errors.New("unknown bot")
	ErrDuplicateBot  = errors.New("bot already spawned")
	ErrInvalidBot    = errors.New("invalid bot")
	ErrInvalidConfig = errors.New("invalid bot config")
)

// Config drives one Manager. A zero Seed picks a crypto-random master seed.
type Config struct {
	GameID      string
	Seed        int64
	MaxParallel int
}

func (c Config) validate() error {
	if c.GameID == "" {
		return fmt.Errorf("%w: game id is required", ErrInvalidConfig)
	}
	if c.MaxParallel < 0 {
		return fmt.Errorf("%w: maxParallel %d is negative", ErrInvalidConfig, c.MaxParallel)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.MaxParallel == 0 {
		c.MaxParallel = DefaultMaxParallel
	}
	return c
}

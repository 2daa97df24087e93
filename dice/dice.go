// Package dice provides the injectable random source used by tell generation
// and perception checks.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// D20 is the die every hidden perception roll uses.
const D20 = 20

// Source is the only randomness the tell core consumes.
//
// Float64 returns a uniform value in [0, 1). Roll returns a uniform value in
// [1, sides]. Callers depend on the order of calls, so implementations must
// not draw behind the caller's back.
type Source interface {
	Float64() float64
	Roll(sides int) int
}

// Rand is a Source backed by math/rand. It is not safe for concurrent use;
// give each bot or evaluation its own instance.
type Rand struct {
	rng *rand.Rand
}

// New returns a deterministic Source. The same seed always yields the same
// sequence of draws.
func New(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// NewRandom returns a Source seeded from crypto/rand.
func NewRandom() (*Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

func (r *Rand) Float64() float64 {
	return r.rng.Float64()
}

func (r *Rand) Roll(sides int) int {
	if sides <= 1 {
		return 1
	}
	return r.rng.Intn(sides) + 1
}

// Int63 exposes the raw generator so a master source can derive child seeds.
func (r *Rand) Int63() int64 {
	return r.rng.Int63()
}

// SeededRoll rolls a single die as a pure function of seed.
func SeededRoll(seed int64, sides int) int {
	return New(seed).Roll(sides)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

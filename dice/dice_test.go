package dice

import (
	"math/rand"
	"testing"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(7)
	b := New(7)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d diverged for equal seeds", i)
		}
		if a.Roll(D20) != b.Roll(D20) {
			t.Fatalf("roll %d diverged for equal seeds", i)
		}
	}
}

func TestRollMatchesMathRand(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	want := rng.Intn(20) + 1

	if got := New(3).Roll(D20); got != want {
		t.Fatalf("Roll = %d, want %d", got, want)
	}
}

func TestRollStaysInRange(t *testing.T) {
	src := New(11)
	for i := 0; i < 2000; i++ {
		v := src.Roll(D20)
		if v < 1 || v > D20 {
			t.Fatalf("roll out of range: %d", v)
		}
	}
	if got := src.Roll(1); got != 1 {
		t.Fatalf("one-sided die = %d, want 1", got)
	}
}

func TestSeededRollRepeats(t *testing.T) {
	first := SeededRoll(42, D20)
	for i := 0; i < 10; i++ {
		if got := SeededRoll(42, D20); got != first {
			t.Fatalf("SeededRoll(42) = %d, want %d", got, first)
		}
	}
}

func TestNewRandom(t *testing.T) {
	src, err := NewRandom()
	if err != nil {
		t.Fatalf("NewRandom returned error: %v", err)
	}
	if v := src.Roll(D20); v < 1 || v > D20 {
		t.Fatalf("roll out of range: %d", v)
	}
}

package domain

import (
	"math/rand"
	"testing"
)

func TestRollDice_SumMatchesRolls(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rolls, sum, ok := RollDice(10, 6, rng)
	if !ok {
		t.Fatalf("10d6 should be accepted")
	}
	if len(rolls) != 10 {
		t.Fatalf("want 10 rolls, got %d", len(rolls))
	}
	total := 0
	for _, r := range rolls {
		if r < 1 || r > 6 {
			t.Fatalf("roll %d out of 1..6", r)
		}
		total += r
	}
	if total != sum {
		t.Fatalf("sum mismatch: want %d, got %d", total, sum)
	}
}

func TestRollDice_RejectsOutOfRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []struct{ count, sides int }{
		{0, 6},
		{101, 6},
		{1, 0},
		{1, 10001},
		{-1, 6},
	}
	for _, c := range cases {
		if _, _, ok := RollDice(c.count, c.sides, rng); ok {
			t.Fatalf("%dd%d should be rejected", c.count, c.sides)
		}
	}
	if _, _, ok := RollDice(100, 10000, rng); !ok {
		t.Fatalf("boundary 100d10000 should be accepted")
	}
}

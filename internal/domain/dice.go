package domain

import "math/rand"

const (
	maxDiceCount = 100
	maxDiceSides = 10000
)

// RollDice rolls count independent uniform dice with the given number of
// sides. It returns the individual rolls and their sum, or ok=false when the
// request is out of the allowed range (count 1..100, sides 1..10000), in
// which case no rolls are performed.
func RollDice(count, sides int, rng *rand.Rand) (rolls []int, sum int, ok bool) {
	if count < 1 || count > maxDiceCount || sides < 1 || sides > maxDiceSides {
		return nil, 0, false
	}
	rolls = make([]int, count)
	for i := range rolls {
		rolls[i] = rng.Intn(sides) + 1
		sum += rolls[i]
	}
	return rolls, sum, true
}

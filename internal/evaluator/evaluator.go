// Package evaluator defines the hand-strength capability the table
// engine consults at a contested showdown. The engine only needs a
// comparable strength per seat; how that strength is computed is
// pluggable.
package evaluator

import (
	rand "math/rand/v2"

	"github.com/ammadhh/gemini-test-chips/internal/deck"
)

// Evaluator ranks a seat's hand against the community cards. Higher
// is stronger; equal values tie and split the pot.
type Evaluator interface {
	Rank(hole []deck.Card, community []deck.Card) (int, error)
}

// Random assigns each hand a uniform pseudo-random strength,
// ignoring the cards entirely. It exists because the engine needs a
// winner-picking placeholder for play-testing when no real ranking is
// configured.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a placeholder evaluator driven by rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Rank returns a random strength in [0, 1<<20).
func (r *Random) Rank(_ []deck.Card, _ []deck.Card) (int, error) {
	return r.rng.IntN(1 << 20), nil
}

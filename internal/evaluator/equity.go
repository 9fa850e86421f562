package evaluator

import (
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ammadhh/gemini-test-chips/internal/deck"
	"github.com/ammadhh/gemini-test-chips/internal/randutil"
)

// parallelThreshold is the sample count above which the Monte Carlo
// run is split across workers.
const parallelThreshold = 500

// CardSet is a 52-bit set of cards, one bit per suit/rank pair.
type CardSet uint64

func cardIndex(c deck.Card) int {
	return int(c.Rank-deck.Two)*4 + int(c.Suit)
}

// Add adds a card to the set.
func (cs *CardSet) Add(c deck.Card) {
	*cs |= 1 << cardIndex(c)
}

// Contains reports whether the card is in the set.
func (cs CardSet) Contains(c deck.Card) bool {
	return cs&(1<<cardIndex(c)) != 0
}

// Estimate approximates the probability that the hole cards win a
// showdown against the given number of opponents holding random
// cards, by Monte Carlo sampling of opponent hands and board runouts.
// Ties count as half a win. The result is in [0, 1].
func Estimate(rng *rand.Rand, hole, board []deck.Card, opponents, samples int) float64 {
	if len(hole) != 2 || len(board) > 5 || opponents < 1 || samples < 1 {
		return 0
	}
	if samples >= parallelThreshold {
		return estimateParallel(rng, hole, board, opponents, samples)
	}
	wins, ties, valid := sample(rng, hole, board, opponents, samples)
	if valid == 0 {
		return 0
	}
	return (float64(wins) + float64(ties)/2) / float64(valid)
}

func estimateParallel(rng *rand.Rand, hole, board []deck.Card, opponents, samples int) float64 {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}

	type result struct {
		wins, ties, valid int
	}
	results := make(chan result, workers)

	var g errgroup.Group
	per := samples / workers
	extra := samples % workers
	for w := 0; w < workers; w++ {
		n := per
		if w < extra {
			n++
		}
		// Each worker gets its own generator so samples stay
		// independent and reproducible for a given rng.
		seed := rng.Int64()
		g.Go(func() error {
			wins, ties, valid := sample(randutil.New(seed), hole, board, opponents, n)
			results <- result{wins, ties, valid}
			return nil
		})
	}

	_ = g.Wait() // workers never return an error
	close(results)

	var wins, ties, valid int
	for r := range results {
		wins += r.wins
		ties += r.ties
		valid += r.valid
	}
	if valid == 0 {
		return 0
	}
	return (float64(wins) + float64(ties)/2) / float64(valid)
}

// sample runs n Monte Carlo iterations and counts outright wins and
// ties for the hero hand.
func sample(rng *rand.Rand, hole, board []deck.Card, opponents, n int) (wins, ties, valid int) {
	var used CardSet
	for _, c := range hole {
		used.Add(c)
	}
	for _, c := range board {
		used.Add(c)
	}

	remaining := make([]deck.Card, 0, 52)
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			c := deck.Card{Suit: suit, Rank: rank}
			if !used.Contains(c) {
				remaining = append(remaining, c)
			}
		}
	}

	need := 2*opponents + 5 - len(board)
	if need > len(remaining) {
		return 0, 0, 0
	}

	eval := NewSevenCard()
	runout := make([]deck.Card, 5)
	oppHole := make([]deck.Card, 2)

	for i := 0; i < n; i++ {
		// Partial Fisher-Yates: the first `need` positions become
		// this sample's opponent holes and board runout.
		for j := 0; j < need; j++ {
			k := j + rng.IntN(len(remaining)-j)
			remaining[j], remaining[k] = remaining[k], remaining[j]
		}

		copy(runout, board)
		copy(runout[len(board):], remaining[2*opponents:need])

		heroRank, err := eval.Rank(hole, runout)
		if err != nil {
			continue
		}

		best := true
		tied := false
		for opp := 0; opp < opponents && best; opp++ {
			copy(oppHole, remaining[2*opp:2*opp+2])
			oppRank, err := eval.Rank(oppHole, runout)
			if err != nil {
				best = false
				break
			}
			switch {
			case oppRank > heroRank:
				best = false
			case oppRank == heroRank:
				tied = true
			}
		}

		valid++
		if best && tied {
			ties++
		} else if best {
			wins++
		}
	}
	return wins, ties, valid
}

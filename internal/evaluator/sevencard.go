package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/ammadhh/gemini-test-chips/internal/deck"
)

// SevenCard ranks hands with a real 7-card Texas Hold'em evaluation.
// It needs the full board, which the engine guarantees at any
// contested showdown (streets always run out to the river first).
type SevenCard struct{}

// NewSevenCard creates the evaluator.
func NewSevenCard() *SevenCard {
	return &SevenCard{}
}

// Rank evaluates two hole cards against five community cards.
func (SevenCard) Rank(hole []deck.Card, community []deck.Card) (int, error) {
	if len(hole) != 2 || len(community) != 5 {
		return 0, fmt.Errorf("seven-card evaluation needs 2 hole and 5 community cards, got %d and %d",
			len(hole), len(community))
	}

	var cards [7]poker.Card
	for i, c := range community {
		pc, err := convertCard(c)
		if err != nil {
			return 0, fmt.Errorf("community card %d: %w", i, err)
		}
		cards[i] = pc
	}
	for i, c := range hole {
		pc, err := convertCard(c)
		if err != nil {
			return 0, fmt.Errorf("hole card %d: %w", i, err)
		}
		cards[5+i] = pc
	}

	return int(poker.Eval7(&cards)), nil
}

// convertCard maps our card type onto the evaluator library's
// encoding (suits club..spade as 0..3, ranks ace-low 1..13).
func convertCard(c deck.Card) (poker.Card, error) {
	var none poker.Card
	var suit int
	switch c.Suit {
	case deck.Clubs:
		suit = 0
	case deck.Diamonds:
		suit = 1
	case deck.Hearts:
		suit = 2
	case deck.Spades:
		suit = 3
	default:
		return none, fmt.Errorf("invalid suit %d", c.Suit)
	}

	var rank int
	if c.Rank == deck.Ace {
		rank = 1
	} else {
		rank = int(c.Rank)
	}

	return poker.MakeCard(poker.Suit(suit), poker.Rank(rank))
}

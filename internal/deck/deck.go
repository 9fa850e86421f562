package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted is returned when a card is requested from an empty
// deck. A full deck comfortably covers one round of play, so hitting
// this indicates a bug in the calling state machine rather than a
// user-facing condition.
var ErrExhausted = errors.New("deck exhausted")

// Deck holds the unconsumed portion of a shuffled 52-card deck.
// It is created once per round and discarded when the round ends.
type Deck struct {
	cards []Card
}

// NewShuffled creates a full 52-card deck in pseudo-random order
// determined entirely by rng. The same rng state always produces the
// same ordering, which the tests rely on.
func NewShuffled(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// Draw removes and returns the top card of the deck.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Burn removes the top card and discards it. A burned card is never
// added to any hand or to the community cards.
func (d *Deck) Burn() error {
	_, err := d.Draw()
	return err
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

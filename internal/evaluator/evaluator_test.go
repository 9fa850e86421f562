package evaluator

import (
	"testing"

	"github.com/ammadhh/gemini-test-chips/internal/deck"
	"github.com/ammadhh/gemini-test-chips/internal/randutil"
)

func cards(cs ...deck.Card) []deck.Card { return cs }

func TestRandom_DeterministicForSeed(t *testing.T) {
	e1 := NewRandom(randutil.New(5))
	e2 := NewRandom(randutil.New(5))

	for i := 0; i < 20; i++ {
		r1, err1 := e1.Rank(nil, nil)
		r2, err2 := e2.Rank(nil, nil)
		if err1 != nil || err2 != nil {
			t.Fatalf("Rank failed: %v / %v", err1, err2)
		}
		if r1 != r2 {
			t.Fatalf("Ranks diverged at draw %d: %d vs %d", i, r1, r2)
		}
	}
}

func TestSevenCard_StrongerHandRanksHigher(t *testing.T) {
	e := NewSevenCard()

	community := cards(
		deck.NewCard(deck.Hearts, deck.Two),
		deck.NewCard(deck.Clubs, deck.Seven),
		deck.NewCard(deck.Diamonds, deck.Nine),
		deck.NewCard(deck.Spades, deck.Four),
		deck.NewCard(deck.Hearts, deck.Jack),
	)

	// Pair of aces versus king high.
	aces := cards(deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Clubs, deck.Ace))
	kingHigh := cards(deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Clubs, deck.Three))

	rAces, err := e.Rank(aces, community)
	if err != nil {
		t.Fatalf("Rank(aces) failed: %v", err)
	}
	rKing, err := e.Rank(kingHigh, community)
	if err != nil {
		t.Fatalf("Rank(kingHigh) failed: %v", err)
	}

	if rAces <= rKing {
		t.Errorf("Expected pair of aces (%d) to outrank king high (%d)", rAces, rKing)
	}
}

func TestSevenCard_IdenticalStrengthTies(t *testing.T) {
	e := NewSevenCard()

	// Board plays for both seats: broadway straight on the board.
	community := cards(
		deck.NewCard(deck.Hearts, deck.Ten),
		deck.NewCard(deck.Clubs, deck.Jack),
		deck.NewCard(deck.Diamonds, deck.Queen),
		deck.NewCard(deck.Spades, deck.King),
		deck.NewCard(deck.Hearts, deck.Ace),
	)

	h1 := cards(deck.NewCard(deck.Spades, deck.Two), deck.NewCard(deck.Clubs, deck.Three))
	h2 := cards(deck.NewCard(deck.Diamonds, deck.Two), deck.NewCard(deck.Hearts, deck.Three))

	r1, err := e.Rank(h1, community)
	if err != nil {
		t.Fatalf("Rank(h1) failed: %v", err)
	}
	r2, err := e.Rank(h2, community)
	if err != nil {
		t.Fatalf("Rank(h2) failed: %v", err)
	}

	if r1 != r2 {
		t.Errorf("Expected identical strengths when the board plays, got %d vs %d", r1, r2)
	}
}

func TestSevenCard_RejectsIncompleteBoard(t *testing.T) {
	e := NewSevenCard()

	hole := cards(deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Clubs, deck.Ace))
	flopOnly := cards(
		deck.NewCard(deck.Hearts, deck.Two),
		deck.NewCard(deck.Clubs, deck.Seven),
		deck.NewCard(deck.Diamonds, deck.Nine),
	)

	if _, err := e.Rank(hole, flopOnly); err == nil {
		t.Error("Expected error for incomplete board")
	}
	if _, err := e.Rank(hole[:1], flopOnly); err == nil {
		t.Error("Expected error for incomplete hole cards")
	}
}

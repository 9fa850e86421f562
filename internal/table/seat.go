package table

import "github.com/ammadhh/gemini-test-chips/internal/deck"

// Seat is one position at the table. Identity and chips persist
// across rounds; hand, bets and the folded flag reset each round.
// Seats never mutate themselves: all mutation happens inside the
// Controller so the chip-conservation invariant stays auditable in
// one place.
type Seat struct {
	ID         int
	Name       string
	Chips      int
	Hand       []deck.Card
	CurrentBet int // chips committed this street
	TotalBet   int // chips committed this round, for refunds on abort
	Folded     bool
	Human      bool
}

// Active reports whether the seat can still take actions: not folded
// and holding chips. A seat that went all-in stays in contention for
// the pot but is no longer Active for turn order.
func (s *Seat) Active() bool {
	return !s.Folded && s.Chips > 0
}

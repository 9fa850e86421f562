package table

import "github.com/ammadhh/gemini-test-chips/internal/deck"

// SeatView is the read-only projection of one seat.
type SeatView struct {
	ID         int
	Name       string
	Chips      int
	Hand       []deck.Card
	CurrentBet int
	Folded     bool
	Human      bool
}

// Snapshot is an immutable copy of the published table state.
// Presentation and statistics layers read snapshots and never touch
// controller-owned state.
type Snapshot struct {
	Seats          []SeatView
	Pot            int
	TableBet       int
	CommunityCards []deck.Card
	Street         Street
	Phase          Phase
	ActingSeat     int // index into Seats, -1 when no seat may act
	LastAction     string
}

// Snapshot returns a deep copy of the current table state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Seats:          make([]SeatView, len(c.seats)),
		Pot:            c.pot,
		TableBet:       c.tableBet,
		CommunityCards: append([]deck.Card(nil), c.community...),
		Street:         c.street,
		Phase:          c.phase,
		ActingSeat:     c.acting,
		LastAction:     c.lastAction,
	}
	for i, s := range c.seats {
		snap.Seats[i] = SeatView{
			ID:         s.ID,
			Name:       s.Name,
			Chips:      s.Chips,
			Hand:       append([]deck.Card(nil), s.Hand...),
			CurrentBet: s.CurrentBet,
			Folded:     s.Folded,
			Human:      s.Human,
		}
	}
	return snap
}

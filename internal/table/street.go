package table

// Street represents the betting round within a hand. Streets advance
// linearly and never move backward within one round.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Label is the display form used in the action line.
func (s Street) Label() string {
	return [...]string{"Pre-Flop", "Flop", "Turn", "River", "Showdown"}[s]
}

// Phase tracks the session-level state orthogonally to the street.
// GameOver is terminal: the session ends when a bust (either side)
// leaves fewer than two funded seats, and only ResetGame leaves it.
type Phase int

const (
	WaitingToStart Phase = iota
	InRound
	GameOver
)

func (p Phase) String() string {
	return [...]string{"waiting", "in-round", "game-over"}[p]
}

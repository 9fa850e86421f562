// Package policy implements decision making for automated seats. A
// decision is a pure function of the seat's view of the table and an
// RNG stream, so a fixed seed replays identically.
package policy

import rand "math/rand/v2"

// Action is the kind of betting action a policy chose.
type Action int

const (
	Check Action = iota
	Bet
	Call
	Fold
	Raise
)

// String returns the string representation of an action
func (a Action) String() string {
	return [...]string{"check", "bet", "call", "fold", "raise"}[a]
}

// Decision is a chosen action plus the target amount for Bet/Raise.
// For Raise the amount is the total the seat's bet is raised to, not
// the delta.
type Decision struct {
	Action Action
	Amount int
}

// Input is the slice of table state a policy is allowed to see.
type Input struct {
	Chips      int // chips the seat still holds
	CurrentBet int // what the seat has already put in this street
	TableBet   int // highest bet on the table this street
}

// DefaultIncrement is the fixed amount automated seats open or raise
// by when chips allow.
const DefaultIncrement = 50

// Policy holds the tunables for automated decisions.
type Policy struct {
	Increment int
}

// New creates a policy with the given bet/raise increment. Zero or
// negative increments fall back to DefaultIncrement.
func New(increment int) *Policy {
	if increment <= 0 {
		increment = DefaultIncrement
	}
	return &Policy{Increment: increment}
}

// Decide produces exactly one legal action for the given input. It
// never returns an action the seat cannot afford: an unaffordable
// raise degrades to a call, and an unaffordable call degrades to a
// fold.
func (p *Policy) Decide(rng *rand.Rand, in Input) Decision {
	if in.TableBet == 0 {
		// Nothing to call: coin flip between checking and opening.
		if rng.IntN(2) == 0 {
			return Decision{Action: Check}
		}
		return Decision{Action: Bet, Amount: min(in.Chips, p.Increment)}
	}

	toCall := in.TableBet - in.CurrentBet

	// d10: 1-5 call, 6-8 fold, 9-10 raise.
	switch roll := rng.IntN(10) + 1; {
	case roll <= 5:
		return p.callOrFold(in, toCall)
	case roll <= 8:
		return Decision{Action: Fold}
	default:
		target := in.TableBet + p.Increment
		if target-in.CurrentBet <= in.Chips {
			return Decision{Action: Raise, Amount: target}
		}
		return p.callOrFold(in, toCall)
	}
}

func (p *Policy) callOrFold(in Input, toCall int) Decision {
	if toCall <= in.Chips {
		return Decision{Action: Call}
	}
	return Decision{Action: Fold}
}

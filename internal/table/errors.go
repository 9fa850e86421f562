package table

import "errors"

// ErrInvalidAction is returned for any command that fails its
// precondition: wrong seat acting, amount out of bounds, wrong phase.
// State is left untouched and no log entry is written.
var ErrInvalidAction = errors.New("invalid action")

// ErrTurnScanExceeded indicates the turn-advancement scan ran past
// its bound without finding an actor. It signals a broken invariant
// in the state machine, never a user mistake, and aborts the round.
var ErrTurnScanExceeded = errors.New("turn scan bound exceeded")

// ErrConservation indicates the sum of seat chips and the pot
// drifted from the session's starting total. Like
// ErrTurnScanExceeded it is unrecoverable for the round.
var ErrConservation = errors.New("chip conservation violated")

package table

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/ammadhh/gemini-test-chips/internal/evaluator"
	"github.com/ammadhh/gemini-test-chips/internal/stats"
)

// Delays control the pacing of scheduled effects. They only shape
// how the game feels; correctness never depends on their values
// because the scheduler preserves submission order.
type Delays struct {
	Deal    time.Duration // new round announced -> hole cards dealt
	Think   time.Duration // automated seat "thinking time"
	Reveal  time.Duration // street closed -> community cards revealed
	Restart time.Duration // payout -> next round begins
}

// DefaultDelays paces the game roughly like the original app.
func DefaultDelays() Delays {
	return Delays{
		Deal:    500 * time.Millisecond,
		Think:   time.Second,
		Reveal:  700 * time.Millisecond,
		Restart: 2500 * time.Millisecond,
	}
}

// Option configures a Controller during creation.
type Option func(*config)

type config struct {
	seatNames     []string // seat 0 is the human
	startingChips int
	increment     int
	delays        Delays
	logger        *log.Logger
	eval          evaluator.Evaluator
	sink          stats.Sink
	decider       Decider
}

// WithSeats sets the seat names. The first name is the human seat;
// the rest are automated. At least two seats are required.
func WithSeats(names ...string) Option {
	return func(c *config) { c.seatNames = names }
}

// WithStartingChips sets the chips every seat begins the session
// with.
func WithStartingChips(chips int) Option {
	return func(c *config) { c.startingChips = chips }
}

// WithBotIncrement sets the fixed amount automated seats open or
// raise by.
func WithBotIncrement(n int) Option {
	return func(c *config) { c.increment = n }
}

// WithDelays overrides the pacing delays.
func WithDelays(d Delays) Option {
	return func(c *config) { c.delays = d }
}

// WithLogger sets the structured logger. Defaults to a discard
// logger.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithEvaluator sets the hand evaluator used at contested showdowns.
// Defaults to the random placeholder.
func WithEvaluator(e evaluator.Evaluator) Option {
	return func(c *config) { c.eval = e }
}

// WithStatsSink sets the sink that receives one win/loss
// notification per concluded round for the human seat.
func WithStatsSink(s stats.Sink) Option {
	return func(c *config) { c.sink = s }
}

// WithDecider overrides the automated-seat decision function. Tests
// use this to script exact action sequences.
func WithDecider(d Decider) Option {
	return func(c *config) { c.decider = d }
}

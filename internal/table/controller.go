// Package table implements the round/turn state machine for the
// betting engine: deck management, betting-round progression, actor
// sequencing, automated-seat moves and showdown resolution. One
// Controller owns all mutable game state; everything outside it sees
// snapshots and events only.
package table

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ammadhh/gemini-test-chips/internal/deck"
	"github.com/ammadhh/gemini-test-chips/internal/evaluator"
	"github.com/ammadhh/gemini-test-chips/internal/policy"
	"github.com/ammadhh/gemini-test-chips/internal/sched"
	"github.com/ammadhh/gemini-test-chips/internal/stats"
)

// Decider chooses one betting action for an automated seat.
// *policy.Policy is the production implementation.
type Decider interface {
	Decide(rng *rand.Rand, in policy.Input) policy.Decision
}

// Controller runs the betting-round state machine. All mutation
// happens under one mutex, and all deferred effects (deals, bot
// moves, reveals, restarts) go through the scheduler tagged with the
// round generation, so a reset turns any still-pending callback into
// a no-op.
type Controller struct {
	mu sync.Mutex

	logger    *log.Logger
	scheduler sched.Scheduler
	rng       *rand.Rand
	decider   Decider
	eval      evaluator.Evaluator
	sink      stats.Sink
	delays    Delays

	seats         []*Seat
	startingChips int
	initialTotal  int

	deck       *deck.Deck
	pot        int
	tableBet   int
	community  []deck.Card
	street     Street
	phase      Phase
	acting     int // -1 when no seat may act
	acted      []bool
	lastAction string
	generation uint64

	events bus
}

// New creates a Controller for one game session. The rng drives
// every random choice (shuffles, automated decisions, the placeholder
// evaluator), so a fixed seed replays a session exactly.
func New(rng *rand.Rand, scheduler sched.Scheduler, opts ...Option) *Controller {
	cfg := &config{
		seatNames:     []string{"Player 1", "AI 1", "AI 2"},
		startingChips: 1000,
		increment:     policy.DefaultIncrement,
		delays:        DefaultDelays(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.seatNames) < 2 {
		panic("table: at least 2 seats required")
	}
	if cfg.startingChips <= 0 {
		panic("table: starting chips must be positive")
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.eval == nil {
		cfg.eval = evaluator.NewRandom(rng)
	}
	if cfg.sink == nil {
		cfg.sink = stats.Nop{}
	}
	if cfg.decider == nil {
		cfg.decider = policy.New(cfg.increment)
	}

	c := &Controller{
		logger:        cfg.logger,
		scheduler:     scheduler,
		rng:           rng,
		decider:       cfg.decider,
		eval:          cfg.eval,
		sink:          cfg.sink,
		delays:        cfg.delays,
		startingChips: cfg.startingChips,
		acting:        -1,
	}
	for i, name := range cfg.seatNames {
		c.seats = append(c.seats, &Seat{
			ID:    i,
			Name:  name,
			Chips: cfg.startingChips,
			Human: i == 0,
		})
	}
	c.acted = make([]bool, len(c.seats))
	c.initialTotal = cfg.startingChips * len(c.seats)
	return c
}

// Subscribe registers s to receive events. Events are delivered
// synchronously while the controller lock is held; handlers must not
// call back into the command surface.
func (c *Controller) Subscribe(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events.subscribe(s)
}

// SetHumanName renames the human seat.
func (c *Controller) SetHumanName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidAction
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.humanSeat().Name = name
	c.logger.Info("player named", "name", name)
	return nil
}

// SetupNewRound starts a fresh round: new generation, fresh shuffled
// deck, per-round seat state cleared, hole cards dealt after the deal
// delay. It fails while a round is already running or after the
// human has busted.
func (c *Controller) SetupNewRound() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != WaitingToStart {
		return ErrInvalidAction
	}
	c.beginRound()
	return nil
}

// ResetGame discards the session: every seat returns to the starting
// stack and the table goes back to WaitingToStart. Pending callbacks
// from the old session become no-ops via the generation bump.
func (c *Controller) ResetGame() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.phase = WaitingToStart
	c.street = PreFlop
	c.deck = nil
	c.pot = 0
	c.tableBet = 0
	c.community = nil
	c.acting = -1
	c.lastAction = ""
	for i, s := range c.seats {
		s.Chips = c.startingChips
		s.Hand = nil
		s.CurrentBet = 0
		s.TotalBet = 0
		s.Folded = false
		c.acted[i] = false
	}
	c.initialTotal = c.startingChips * len(c.seats)
	c.logger.Info("game reset", "generation", c.generation)
	return nil
}

// Fold folds the human seat.
func (c *Controller) Fold() error { return c.humanCommand(policy.Fold, 0) }

// Check passes the action without betting. Valid only when the human
// seat has already matched the table bet.
func (c *Controller) Check() error { return c.humanCommand(policy.Check, 0) }

// Call matches the current table bet.
func (c *Controller) Call() error { return c.humanCommand(policy.Call, 0) }

// Bet opens the betting for amount. Valid only when nobody has bet
// this street.
func (c *Controller) Bet(amount int) error { return c.humanCommand(policy.Bet, amount) }

// Raise increases the table bet to amount.
func (c *Controller) Raise(amount int) error { return c.humanCommand(policy.Raise, amount) }

func (c *Controller) humanCommand(act policy.Action, amount int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != InRound || c.acting < 0 || !c.seats[c.acting].Human {
		return ErrInvalidAction
	}
	return c.apply(c.acting, act, amount)
}

// after schedules fn gated on the current generation. fn runs with
// the controller lock held.
func (c *Controller) after(delay time.Duration, fn func()) {
	gen := c.generation
	c.scheduler.Schedule(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation {
			return
		}
		fn()
	})
}

// beginRound resets per-round state and schedules the deal. Caller
// holds the lock.
func (c *Controller) beginRound() {
	playable := 0
	for _, s := range c.seats {
		if s.Chips > 0 {
			playable++
		}
	}
	if playable < 2 {
		// Everyone else is busted; there is no round to play.
		c.phase = GameOver
		c.lastAction = "Game over: no opponents left"
		c.logger.Info("game over, opponents busted")
		return
	}

	c.generation++
	c.phase = InRound
	c.street = PreFlop
	c.deck = nil
	c.pot = 0
	c.tableBet = 0
	c.community = nil
	c.acting = -1
	c.lastAction = "New round"
	for i, s := range c.seats {
		s.Hand = nil
		s.CurrentBet = 0
		s.TotalBet = 0
		// Seats that busted earlier sit the round out.
		s.Folded = s.Chips == 0
		c.acted[i] = false
	}
	c.logger.Info("round starting", "generation", c.generation)
	c.after(c.delays.Deal, c.dealRound)
}

// dealRound shuffles a fresh deck and deals two hole cards to every
// seat still holding chips, then hands the action to the first seat.
func (c *Controller) dealRound() {
	c.deck = deck.NewShuffled(c.rng)
	for _, s := range c.seats {
		if s.Folded {
			continue
		}
		for i := 0; i < 2; i++ {
			card, err := c.deck.Draw()
			if err != nil {
				c.abortRound(fmt.Errorf("dealing hole cards: %w", err))
				return
			}
			// Your own cards face you; automated hands stay hidden
			// until showdown.
			card.FaceUp = s.Human
			s.Hand = append(s.Hand, card)
		}
	}
	c.events.publish(RoundStartedEvent{Generation: c.generation})
	c.logger.Debug("hole cards dealt", "remaining", c.deck.Remaining())
	c.advanceTurn(0)
}

// apply validates and executes one betting action for the seat at
// idx, then advances the turn. Validation failures leave all state
// untouched.
func (c *Controller) apply(idx int, act policy.Action, amount int) error {
	s := c.seats[idx]

	switch act {
	case policy.Fold:
		s.Folded = true
		c.recordAction(s, "folds", 0)

	case policy.Check:
		if c.tableBet != s.CurrentBet {
			return ErrInvalidAction
		}
		c.recordAction(s, "checks", 0)

	case policy.Call:
		toCall := c.tableBet - s.CurrentBet
		if toCall <= 0 || s.Chips < toCall {
			return ErrInvalidAction
		}
		c.pay(s, toCall)
		c.recordAction(s, "calls", 0)

	case policy.Bet:
		if c.tableBet != 0 || amount <= 0 || amount > s.Chips {
			return ErrInvalidAction
		}
		c.pay(s, amount)
		c.tableBet = amount
		c.recordAction(s, fmt.Sprintf("bets $%d", amount), amount)

	case policy.Raise:
		if c.tableBet == 0 || amount <= c.tableBet || amount-s.CurrentBet > s.Chips {
			return ErrInvalidAction
		}
		c.pay(s, amount-s.CurrentBet)
		c.tableBet = amount
		c.recordAction(s, fmt.Sprintf("raises to $%d", amount), amount)

	default:
		return ErrInvalidAction
	}

	c.acted[idx] = true
	c.advanceTurn(idx + 1)
	return nil
}

// pay moves n chips from the seat into the pot and announces the
// movement.
func (c *Controller) pay(s *Seat, n int) {
	s.Chips -= n
	s.CurrentBet += n
	s.TotalBet += n
	c.pot += n
	c.events.publish(ChipsMovedEvent{Amount: n})
}

func (c *Controller) recordAction(s *Seat, verb string, amount int) {
	c.lastAction = fmt.Sprintf("%s %s", s.Name, verb)
	c.events.publish(ActionEvent{SeatName: s.Name, Action: verb, Amount: amount, Street: c.street})
	c.logger.Info("action", "seat", s.Name, "verb", verb, "pot", c.pot, "street", c.street)
}

// needsToAct reports whether the seat at idx still owes an action
// this street: it can act, and it either trails the table bet or has
// not acted since the street opened.
func (c *Controller) needsToAct(idx int) bool {
	s := c.seats[idx]
	return s.Active() && (s.CurrentBet < c.tableBet || !c.acted[idx])
}

// advanceTurn is the canonical turn-advancement step. from is the
// seat index the cyclic scan starts at.
func (c *Controller) advanceTurn(from int) {
	if c.contenders() <= 1 {
		c.resolveShowdown(false)
		return
	}

	anyToAct := false
	for i := range c.seats {
		if c.needsToAct(i) {
			anyToAct = true
			break
		}
	}
	if !anyToAct {
		c.closeStreet()
		return
	}

	idx, err := c.scanFrom(from)
	if err != nil {
		c.abortRound(err)
		return
	}
	c.acting = idx
	if !c.seats[idx].Human {
		c.scheduleBotMove(idx)
	}
	// A human actor suspends the machine until a command arrives.
}

// scanFrom walks the seats cyclically from the given index, skipping
// folded and chipless seats, until it finds one that owes an action.
// The bound is 2x the seat count; exceeding it means the street-close
// check above is broken.
func (c *Controller) scanFrom(from int) (int, error) {
	n := len(c.seats)
	for i := 0; i < 2*n; i++ {
		idx := (from + i) % n
		if c.needsToAct(idx) {
			return idx, nil
		}
	}
	return -1, ErrTurnScanExceeded
}

// contenders counts the seats still in contention for the pot.
// All-in seats count: being out of chips ends your turns, not your
// claim.
func (c *Controller) contenders() int {
	n := 0
	for _, s := range c.seats {
		if !s.Folded {
			n++
		}
	}
	return n
}

// scheduleBotMove asks the policy for a decision after the thinking
// delay and applies it through the same command path humans use.
func (c *Controller) scheduleBotMove(idx int) {
	c.after(c.delays.Think, func() {
		if c.phase != InRound || c.acting != idx {
			return
		}
		s := c.seats[idx]
		d := c.decider.Decide(c.rng, policy.Input{
			Chips:      s.Chips,
			CurrentBet: s.CurrentBet,
			TableBet:   c.tableBet,
		})
		if err := c.apply(idx, d.Action, d.Amount); err != nil {
			// The policy contract rules this out; fold rather than
			// stall the round.
			c.logger.Error("automated decision rejected", "seat", s.Name, "action", d.Action, "error", err)
			if err := c.apply(idx, policy.Fold, 0); err != nil {
				c.abortRound(fmt.Errorf("fold fallback rejected: %w", err))
			}
		}
	})
}

// closeStreet ends the current betting street. River closes into
// showdown; earlier streets schedule a community-card reveal.
func (c *Controller) closeStreet() {
	c.acting = -1
	if c.street == River {
		c.resolveShowdown(true)
		return
	}
	c.after(c.delays.Reveal, c.revealNextStreet)
}

// revealNextStreet resets the street betting state, burns and
// reveals community cards, and hands the action to the first seat
// that owes one.
func (c *Controller) revealNextStreet() {
	c.tableBet = 0
	for i, s := range c.seats {
		s.CurrentBet = 0
		c.acted[i] = false
	}

	reveal := 1
	if c.street == PreFlop {
		reveal = 3
	}
	if err := c.deck.Burn(); err != nil {
		c.abortRound(fmt.Errorf("burning before %v: %w", c.street+1, err))
		return
	}
	revealed := make([]string, 0, reveal)
	for i := 0; i < reveal; i++ {
		card, err := c.deck.Draw()
		if err != nil {
			c.abortRound(fmt.Errorf("revealing street: %w", err))
			return
		}
		card.FaceUp = true
		c.community = append(c.community, card)
		revealed = append(revealed, card.String())
	}
	c.street++
	c.lastAction = fmt.Sprintf("%s: %s", c.street.Label(), strings.Join(revealed, " "))
	c.events.publish(StreetEvent{Street: c.street, CommunityCards: append([]deck.Card(nil), c.community...)})
	c.logger.Info("street revealed", "street", c.street, "cards", strings.Join(revealed, " "), "pot", c.pot)

	// First to act on a new street is the first eligible seat from
	// the top of the order, not whoever closed the last street.
	c.advanceTurn(0)
}

// resolveShowdown awards the pot, notifies the stats sink exactly
// once, and either finishes the session or schedules the next round.
// contested is true when more than one seat reached the river.
func (c *Controller) resolveShowdown(contested bool) {
	if c.street == Showdown {
		return
	}
	c.street = Showdown
	c.acting = -1

	var inPot []int
	for i, s := range c.seats {
		if !s.Folded {
			inPot = append(inPot, i)
		}
	}
	if len(inPot) == 0 {
		c.abortRound(fmt.Errorf("no contenders at showdown"))
		return
	}

	winners := inPot
	if len(inPot) > 1 {
		var err error
		winners, err = c.rankContenders(inPot)
		if err != nil {
			c.abortRound(err)
			return
		}
		// Contested pots show every remaining hand.
		for _, i := range inPot {
			for j := range c.seats[i].Hand {
				c.seats[i].Hand[j].FaceUp = true
			}
		}
	}

	pot := c.pot
	share := pot / len(winners)
	remainder := pot % len(winners)
	humanShare := 0
	humanWon := false
	names := make([]string, 0, len(winners))
	for k, i := range winners {
		amount := share
		if k == 0 {
			amount += remainder // odd chip to the first winner in seat order
		}
		c.seats[i].Chips += amount
		if c.seats[i].Human {
			humanShare = amount
			humanWon = true
		}
		names = append(names, c.seats[i].Name)
	}
	c.pot = 0
	for _, s := range c.seats {
		s.CurrentBet = 0
		s.TotalBet = 0
	}
	c.tableBet = 0

	if pot > 0 {
		c.events.publish(ChipsMovedEvent{Amount: pot})
	}
	if len(winners) == 1 {
		c.lastAction = fmt.Sprintf("%s wins $%d", names[0], pot)
	} else {
		c.lastAction = fmt.Sprintf("%s split $%d", strings.Join(names, " and "), pot)
	}
	c.events.publish(RoundEndedEvent{WinnerNames: names, Pot: pot, AtShowdown: contested})
	c.logger.Info("round over", "winners", strings.Join(names, ","), "pot", pot, "showdown", contested)

	if humanWon {
		c.sink.LogWin(humanShare)
	} else {
		c.sink.LogLoss()
	}

	if err := c.checkConservation(); err != nil {
		c.logger.Error("invariant violation", "error", err)
		c.phase = GameOver
		c.lastAction = "internal error: " + err.Error()
		return
	}

	if c.humanSeat().Chips == 0 {
		c.phase = GameOver
		c.lastAction += ", you're out of chips"
		c.logger.Info("game over, human busted")
		return
	}
	c.phase = WaitingToStart
	c.after(c.delays.Restart, func() {
		if c.phase == WaitingToStart {
			c.beginRound()
		}
	})
}

// rankContenders asks the evaluator for each contender's strength
// and returns the best seats in seat order.
func (c *Controller) rankContenders(inPot []int) ([]int, error) {
	best := -1
	var winners []int
	for _, i := range inPot {
		s := c.seats[i]
		rank, err := c.eval.Rank(s.Hand, c.community)
		if err != nil {
			return nil, fmt.Errorf("ranking %s: %w", s.Name, err)
		}
		switch {
		case rank > best:
			best = rank
			winners = []int{i}
		case rank == best:
			winners = append(winners, i)
		}
	}
	return winners, nil
}

// abortRound handles unrecoverable invariant violations: every
// seat's round contribution is refunded from the pot so no chips are
// created or destroyed, then the round is torn down.
func (c *Controller) abortRound(err error) {
	c.logger.Error("aborting round", "error", err)
	for _, s := range c.seats {
		s.Chips += s.TotalBet
		c.pot -= s.TotalBet
		s.TotalBet = 0
		s.CurrentBet = 0
	}
	c.tableBet = 0
	c.generation++
	c.acting = -1
	c.street = PreFlop
	c.community = nil
	c.phase = WaitingToStart
	c.lastAction = "round aborted: " + err.Error()
}

func (c *Controller) checkConservation() error {
	total := c.pot
	for _, s := range c.seats {
		total += s.Chips
	}
	if total != c.initialTotal {
		return fmt.Errorf("%w: have %d, want %d", ErrConservation, total, c.initialTotal)
	}
	return nil
}

func (c *Controller) humanSeat() *Seat {
	for _, s := range c.seats {
		if s.Human {
			return s
		}
	}
	panic("table: no human seat")
}

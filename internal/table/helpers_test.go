package table

import (
	rand "math/rand/v2"
	"testing"

	"github.com/ammadhh/gemini-test-chips/internal/deck"
	"github.com/ammadhh/gemini-test-chips/internal/policy"
	"github.com/ammadhh/gemini-test-chips/internal/randutil"
	"github.com/ammadhh/gemini-test-chips/internal/sched"
)

// scriptDecider pops pre-programmed decisions in bot action order.
// When the script runs dry it checks or folds, whichever is legal.
type scriptDecider struct {
	decisions []policy.Decision
}

func (d *scriptDecider) Decide(_ *rand.Rand, in policy.Input) policy.Decision {
	if len(d.decisions) > 0 {
		next := d.decisions[0]
		d.decisions = d.decisions[1:]
		return next
	}
	if in.TableBet == in.CurrentBet {
		return policy.Decision{Action: policy.Check}
	}
	return policy.Decision{Action: policy.Fold}
}

// recordingSink captures stats notifications for assertions.
type recordingSink struct {
	wins   []int
	losses int
}

func (r *recordingSink) LogWin(amount int) { r.wins = append(r.wins, amount) }
func (r *recordingSink) LogLoss()          { r.losses++ }

func (r *recordingSink) rounds() int { return len(r.wins) + r.losses }

// constantEvaluator ranks every hand the same, forcing ties.
type constantEvaluator struct{}

func (constantEvaluator) Rank(_ []deck.Card, _ []deck.Card) (int, error) { return 42, nil }

// newTestTable builds a controller on a manual scheduler with a
// fixed seed. Extra options are applied on top of the defaults.
func newTestTable(t *testing.T, seed int64, opts ...Option) (*Controller, *sched.Manual, *recordingSink) {
	t.Helper()
	m := sched.NewManual()
	sink := &recordingSink{}
	base := []Option{WithStatsSink(sink)}
	c := New(randutil.New(seed), m, append(base, opts...)...)
	return c, m, sink
}

// startRound kicks off a round and pumps the scheduler until the
// table waits on the human seat.
func startRound(t *testing.T, c *Controller, m *sched.Manual) {
	t.Helper()
	if err := c.SetupNewRound(); err != nil {
		t.Fatalf("SetupNewRound failed: %v", err)
	}
	m.Drain()
}

// humanTurn reports whether the table is waiting on the human seat.
func humanTurn(snap Snapshot) bool {
	return snap.Phase == InRound && snap.ActingSeat >= 0 && snap.Seats[snap.ActingSeat].Human
}

// pumpUntil steps the scheduler one callback at a time until the
// snapshot satisfies pred. Unlike Drain it stops exactly when the
// condition holds, before any queued round-restart fires.
func pumpUntil(t *testing.T, c *Controller, m *sched.Manual, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	for i := 0; i < 10000; i++ {
		snap := c.Snapshot()
		if pred(snap) {
			return snap
		}
		if !m.RunNext() {
			t.Fatalf("scheduler idle before condition met (street=%v phase=%v acting=%d)",
				snap.Street, snap.Phase, snap.ActingSeat)
		}
	}
	t.Fatal("condition not reached after 10000 steps")
	return Snapshot{}
}

// Package sched provides the delayed-callback scheduler the table
// engine uses for deal pacing, automated-seat thinking time, street
// reveals and round restarts. Callbacks fire one at a time, in
// delay/submission order, so game state is only ever mutated from a
// single logical control thread.
package sched

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Scheduler executes one-shot callbacks after a delay. Callbacks
// submitted with the same delay run in submission order and never
// overlap.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// Clocked is the production Scheduler, backed by a quartz.Clock so
// tests can drive it with a mock clock. A mutex serialises callback
// execution; the callbacks themselves carry no locking.
type Clocked struct {
	clock quartz.Clock

	mu sync.Mutex
	wg sync.WaitGroup
}

// NewClocked creates a Scheduler from the given clock. Pass
// quartz.NewReal() in production and quartz.NewMock(t) in tests.
func NewClocked(clock quartz.Clock) *Clocked {
	return &Clocked{clock: clock}
}

// Schedule registers fn to run after delay.
func (s *Clocked) Schedule(delay time.Duration, fn func()) {
	s.wg.Add(1)
	s.clock.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
	})
}

// Wait blocks until every callback scheduled so far has run. Test
// helper; production code never needs it.
func (s *Clocked) Wait() {
	s.wg.Wait()
}

// Manual is a Scheduler that queues callbacks until the caller pumps
// them with RunNext or Drain. It gives tests exact control over the
// interleaving of automated actions, reveals and restarts without any
// clocks or goroutines. Not safe for concurrent use.
type Manual struct {
	queue []func()
}

// NewManual creates an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// Schedule appends fn to the queue. The delay is ignored: queue
// position stands in for time, which matches the submission-order
// guarantee the engine relies on.
func (m *Manual) Schedule(_ time.Duration, fn func()) {
	m.queue = append(m.queue, fn)
}

// Pending returns the number of queued callbacks.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// RunNext pops and runs the oldest queued callback. It returns false
// if the queue was empty.
func (m *Manual) RunNext() bool {
	if len(m.queue) == 0 {
		return false
	}
	fn := m.queue[0]
	m.queue = m.queue[1:]
	fn()
	return true
}

// Drain runs callbacks until the queue is empty, including callbacks
// enqueued by earlier ones, and returns how many ran. The engine
// always reaches a quiescent point (waiting on the human seat or game
// over), so this terminates.
func (m *Manual) Drain() int {
	n := 0
	for m.RunNext() {
		n++
	}
	return n
}

package sched

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClocked_FiresInDelayOrder(t *testing.T) {
	mockClock := quartz.NewMock(t)
	s := NewClocked(mockClock)

	var order []int
	s.Schedule(300*time.Millisecond, func() { order = append(order, 3) })
	s.Schedule(100*time.Millisecond, func() { order = append(order, 1) })
	s.Schedule(200*time.Millisecond, func() { order = append(order, 2) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// quartz refuses to advance past a pending timer, so step to each
	// of the 100ms/200ms/300ms deadlines in turn.
	mockClock.Advance(100 * time.Millisecond).MustWait(ctx)
	mockClock.Advance(100 * time.Millisecond).MustWait(ctx)
	mockClock.Advance(100 * time.Millisecond).MustWait(ctx)
	s.Wait()

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestClocked_SameDelaySubmissionOrder(t *testing.T) {
	mockClock := quartz.NewMock(t)
	s := NewClocked(mockClock)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.Schedule(50*time.Millisecond, func() { order = append(order, i) })
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mockClock.Advance(50 * time.Millisecond).MustWait(ctx)
	s.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestManual_RunsInSubmissionOrder(t *testing.T) {
	m := NewManual()

	var order []int
	m.Schedule(time.Second, func() { order = append(order, 0) })
	m.Schedule(time.Millisecond, func() { order = append(order, 1) })
	require.Equal(t, 2, m.Pending())

	ran := m.Drain()
	assert.Equal(t, 2, ran)
	assert.Equal(t, []int{0, 1}, order)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_CallbackMayScheduleMore(t *testing.T) {
	m := NewManual()

	var order []int
	m.Schedule(0, func() {
		order = append(order, 0)
		m.Schedule(0, func() { order = append(order, 2) })
	})
	m.Schedule(0, func() { order = append(order, 1) })

	ran := m.Drain()
	assert.Equal(t, 3, ran)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestManual_RunNextEmpty(t *testing.T) {
	m := NewManual()
	assert.False(t, m.RunNext())
}

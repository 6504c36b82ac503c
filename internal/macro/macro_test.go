package macro

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tapstorm/internal/clock"
)

// collector gathers emitted events for inspection.
type collector struct {
	mu     sync.Mutex
	points []Point
	downs  []bool
	times  []time.Time
}

func (c *collector) emit(p Point, down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = append(c.points, p)
	c.downs = append(c.downs, down)
	c.times = append(c.times, time.Now())
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.points)
}

// ==================== Log Tests ====================

func TestLogAppendOrder(t *testing.T) {
	log := NewLog()
	for i := 0; i < 5; i++ {
		log.Append(Event{Pos: Point{X: float64(i)}, Down: i%2 == 0})
	}

	require.Equal(t, 5, log.Len())

	events := log.Events()
	for i, ev := range events {
		assert.Equal(t, float64(i), ev.Pos.X, "events must replay in insertion order")
	}
}

func TestLogSnapshotIsolation(t *testing.T) {
	log := NewLog()
	log.Append(Event{Pos: Point{X: 1, Y: 2}, Down: true})

	snap := log.Events()
	log.Reset()
	log.Append(Event{Pos: Point{X: 9, Y: 9}, Down: false})

	// The snapshot taken before the reset is untouched.
	require.Len(t, snap, 1)
	assert.Equal(t, Point{X: 1, Y: 2}, snap[0].Pos)
}

func TestLogReset(t *testing.T) {
	log := NewLog()
	log.Append(Event{})
	log.Append(Event{})
	log.Reset()

	assert.Equal(t, 0, log.Len())
	assert.Nil(t, log.Events())
}

// ==================== Recorder Tests ====================

func TestRecorderDelays(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	log := NewLog()
	rec := NewRecorder(fake, log)

	rec.Reset()

	fake.Advance(100 * time.Millisecond)
	rec.Capture(Point{X: 10, Y: 20}, true)

	fake.Advance(350 * time.Millisecond)
	rec.Capture(Point{X: 10, Y: 20}, false)

	events := log.Events()
	require.Len(t, events, 2)
	assert.Equal(t, 100*time.Millisecond, events[0].Delay)
	assert.True(t, events[0].Down)
	assert.Equal(t, 350*time.Millisecond, events[1].Delay)
	assert.False(t, events[1].Down)
}

func TestRecorderClampsNegativeDelta(t *testing.T) {
	fake := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	log := NewLog()
	rec := NewRecorder(fake, log)

	rec.Reset()
	fake.Advance(-time.Second) // simulate a regressing source
	rec.Capture(Point{}, true)

	events := log.Events()
	require.Len(t, events, 1)
	assert.GreaterOrEqual(t, events[0].Delay, time.Duration(0))
}

func TestRecorderResetClearsLog(t *testing.T) {
	fake := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	log := NewLog()
	rec := NewRecorder(fake, log)

	rec.Reset()
	fake.Advance(10 * time.Millisecond)
	rec.Capture(Point{X: 1}, true)
	rec.Capture(Point{X: 1}, false)

	rec.Reset()
	fake.Advance(10 * time.Millisecond)
	rec.Capture(Point{X: 2}, true)

	events := log.Events()
	require.Len(t, events, 1, "only the latest session's events survive a reset")
	assert.Equal(t, float64(2), events[0].Pos.X)
}

// ==================== Player Tests ====================

func TestPlayEmptyReturnsImmediately(t *testing.T) {
	col := &collector{}
	err := Play(context.Background(), nil, false, col.emit)
	require.NoError(t, err)
	assert.Equal(t, 0, col.count())
}

func TestPlayOrderAndTiming(t *testing.T) {
	events := []Event{
		{Pos: Point{X: 1, Y: 1}, Delay: 20 * time.Millisecond, Down: true},
		{Pos: Point{X: 2, Y: 2}, Delay: 30 * time.Millisecond, Down: false},
	}

	col := &collector{}
	start := time.Now()
	err := Play(context.Background(), events, false, col.emit)
	require.NoError(t, err)

	require.Equal(t, 2, col.count())
	assert.Equal(t, Point{X: 1, Y: 1}, col.points[0])
	assert.True(t, col.downs[0])
	assert.Equal(t, Point{X: 2, Y: 2}, col.points[1])
	assert.False(t, col.downs[1])

	// Scheduler slack only lengthens waits, never shortens them.
	assert.GreaterOrEqual(t, col.times[0].Sub(start), 20*time.Millisecond)
	assert.GreaterOrEqual(t, col.times[1].Sub(col.times[0]), 30*time.Millisecond)
}

func TestPlaySingleEvent(t *testing.T) {
	events := []Event{{Pos: Point{X: 5}, Delay: 10 * time.Millisecond, Down: true}}

	col := &collector{}
	err := Play(context.Background(), events, false, col.emit)
	require.NoError(t, err)
	assert.Equal(t, 1, col.count())
}

func TestPlayCancelMidPass(t *testing.T) {
	events := []Event{
		{Delay: 5 * time.Millisecond, Down: true},
		{Delay: time.Minute, Down: false}, // would stall without early wake
	}

	ctx, cancel := context.WithCancel(context.Background())
	col := &collector{}
	done := make(chan error, 1)
	go func() { done <- Play(ctx, events, false, col.emit) }()

	// Let the first event go out, then cancel during the long wait.
	deadline := time.After(2 * time.Second)
	for col.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("first event never emitted")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancellation did not wake the in-flight wait")
	}

	assert.Equal(t, 1, col.count(), "no events after cancellation observed")
}

func TestPlayLoopRestartsUntilCancelled(t *testing.T) {
	events := []Event{
		{Pos: Point{X: 1}, Delay: time.Millisecond, Down: true},
		{Pos: Point{X: 2}, Delay: time.Millisecond, Down: false},
	}

	ctx, cancel := context.WithCancel(context.Background())
	col := &collector{}
	done := make(chan error, 1)
	go func() { done <- Play(ctx, events, true, col.emit) }()

	// Wait for more emissions than one pass can produce.
	deadline := time.After(2 * time.Second)
	for col.count() < 5 {
		select {
		case <-deadline:
			t.Fatalf("looping playback stalled at %d events", col.count())
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("looping playback did not stop after cancel")
	}

	// Looping preserves the recorded order on every pass.
	col.mu.Lock()
	defer col.mu.Unlock()
	for i, p := range col.points {
		want := Point{X: float64(i%2 + 1)}
		assert.Equal(t, want, p, "event %d out of order", i)
	}
}

func TestPlayNonLoopingStopsAfterOnePass(t *testing.T) {
	events := []Event{
		{Delay: time.Millisecond, Down: true},
		{Delay: time.Millisecond, Down: false},
	}

	col := &collector{}
	err := Play(context.Background(), events, false, col.emit)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, col.count(), "non-looping playback must not restart")
}

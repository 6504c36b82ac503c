package clicker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tapstorm/internal/macro"
)

type sample struct {
	pos  macro.Point
	down bool
}

type collector struct {
	mu      sync.Mutex
	samples []sample
}

func (c *collector) emit(p macro.Point, down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, sample{pos: p, down: down})
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

func (c *collector) snapshot() []sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sample, len(c.samples))
	copy(out, c.samples)
	return out
}

func TestRunNoTargets(t *testing.T) {
	col := &collector{}
	err := Run(context.Background(), nil, time.Millisecond, col.emit)
	require.NoError(t, err)
	assert.Equal(t, 0, col.count())
}

func TestRunEmitsDownUpPairs(t *testing.T) {
	targets := []macro.Point{{X: 100, Y: 200}}

	ctx, cancel := context.WithCancel(context.Background())
	col := &collector{}
	done := make(chan error, 1)
	go func() { done <- Run(ctx, targets, time.Millisecond, col.emit) }()

	deadline := time.After(2 * time.Second)
	for col.count() < 6 {
		select {
		case <-deadline:
			t.Fatalf("clicker stalled at %d samples", col.count())
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	samples := col.snapshot()
	for i := 0; i+1 < len(samples); i += 2 {
		assert.True(t, samples[i].down, "cycle %d must start with a down", i/2)
		assert.False(t, samples[i+1].down, "cycle %d must end with an up", i/2)
		assert.Equal(t, targets[0], samples[i].pos)
		assert.Equal(t, targets[0], samples[i+1].pos)
	}
}

func TestRunRoundRobin(t *testing.T) {
	targets := []macro.Point{{X: 1}, {X: 2}, {X: 3}}

	ctx, cancel := context.WithCancel(context.Background())
	col := &collector{}
	done := make(chan error, 1)
	go func() { done <- Run(ctx, targets, time.Millisecond, col.emit) }()

	// Enough samples for two full rotations (3 targets * 2 samples * 2).
	deadline := time.After(2 * time.Second)
	for col.count() < 12 {
		select {
		case <-deadline:
			t.Fatalf("clicker stalled at %d samples", col.count())
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	samples := col.snapshot()
	for i := 0; i+1 < len(samples)/2*2; i += 2 {
		want := targets[(i/2)%len(targets)]
		assert.Equal(t, want, samples[i].pos, "cycle %d wrong target", i/2)
	}
}

func TestRunCancelWakesInterval(t *testing.T) {
	targets := []macro.Point{{X: 1}}

	ctx, cancel := context.WithCancel(context.Background())
	col := &collector{}
	done := make(chan error, 1)
	go func() { done <- Run(ctx, targets, time.Minute, col.emit) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not wake the interval wait")
	}
	assert.Equal(t, 0, col.count())
}

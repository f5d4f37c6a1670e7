package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingCleaner struct {
	calls atomic.Int32
}

func (c *countingCleaner) Cleanup() int {
	c.calls.Add(1)
	return 1
}

func TestSweeperSweepOnce(t *testing.T) {
	a, b := &countingCleaner{}, &countingCleaner{}
	s := NewSweeper(time.Minute, zap.NewNop(), map[string]Cleaner{"a": a, "b": b})

	s.SweepOnce()
	assert.EqualValues(t, 1, a.calls.Load())
	assert.EqualValues(t, 1, b.calls.Load())
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	c := &countingCleaner{}
	s := NewSweeper(5*time.Millisecond, zap.NewNop(), map[string]Cleaner{"c": c})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return c.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeperWithoutCleanersReturns(t *testing.T) {
	s := NewSweeper(0, zap.NewNop(), nil)
	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper without cleaners should return immediately")
	}
}

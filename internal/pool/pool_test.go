package pool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PreservesOrder(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Shutdown()

	items := []int{5, 1, 4, 2, 3}
	got, err := Map(context.Background(), p, items, func(n int) int {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10
	})

	require.NoError(t, err)
	assert.Equal(t, []int{50, 10, 40, 20, 30}, got)
}

func TestMap_Empty(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Shutdown()

	got, err := Map(context.Background(), p, []string(nil), func(s string) string { return s })
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMap_RunsConcurrently(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Shutdown()

	var running, peak atomic.Int32
	_, err := Map(context.Background(), p, make([]struct{}, 8), func(struct{}) bool {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return true
	})

	require.NoError(t, err)
	assert.Greater(t, peak.Load(), int32(1))
}

func TestMap_CancelledContext(t *testing.T) {
	p := NewWorkerPool(1)
	defer p.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, p, []int{1, 2, 3}, func(n int) int { return n })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmit_AfterShutdown(t *testing.T) {
	p := NewWorkerPool(1)
	p.Shutdown()
	p.Shutdown()

	err := p.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrPoolShutdown)
}

func TestNewWorkerPool_DefaultSize(t *testing.T) {
	p := NewWorkerPool(0)
	defer p.Shutdown()
	assert.Positive(t, p.Size())
}

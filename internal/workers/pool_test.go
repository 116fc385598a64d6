package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsEnqueuedTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewPool(2, 8)
	pool.Start(ctx)

	var ran atomic.Int32
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		ok := pool.Enqueue("count", func(ctx context.Context) {
			if ran.Add(1) == 5 {
				close(done)
			}
		})
		require.True(t, ok)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not run in time")
	}

	cancel()
	pool.Wait()
	assert.Equal(t, int32(5), ran.Load())
}

func TestPool_SurvivesPanickingTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewPool(1, 8)
	pool.Start(ctx)

	done := make(chan struct{})
	require.True(t, pool.Enqueue("boom", func(ctx context.Context) {
		panic("task exploded")
	}))
	require.True(t, pool.Enqueue("after", func(ctx context.Context) {
		close(done)
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}

	cancel()
	pool.Wait()
}

func TestPool_RejectsWhenQueueFull(t *testing.T) {
	// Never started, so nothing drains the queue.
	pool := NewPool(1, 1)

	assert.True(t, pool.Enqueue("first", func(ctx context.Context) {}))
	assert.False(t, pool.Enqueue("second", func(ctx context.Context) {}))
}

func TestPool_RejectsAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewPool(1, 8)
	pool.Start(ctx)

	cancel()
	pool.Wait()

	// The closing goroutine flips the flag under the same mutex
	// Enqueue takes, so once a rejection is observed it stays rejected.
	assert.Eventually(t, func() bool {
		return !pool.Enqueue("late", func(ctx context.Context) {})
	}, 2*time.Second, 10*time.Millisecond)
}

package llm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWorkerPool_ProcessAllItems(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{MaxConcurrent: 2}, zap.NewNop())

	items := []WorkItem[int]{
		{ID: "a", Execute: func(ctx context.Context) (int, error) { return 1, nil }},
		{ID: "b", Execute: func(ctx context.Context) (int, error) { return 2, nil }},
		{ID: "c", Execute: func(ctx context.Context) (int, error) { return 3, nil }},
	}

	results := Process(context.Background(), pool, items, nil)
	require.Len(t, results, 3)

	sum := 0
	for _, r := range results {
		require.NoError(t, r.Err)
		sum += r.Result
	}
	assert.Equal(t, 6, sum)
}

func TestWorkerPool_EmptyInput(t *testing.T) {
	pool := NewWorkerPool(DefaultWorkerPoolConfig(), zap.NewNop())
	assert.Nil(t, Process[int](context.Background(), pool, nil, nil))
}

func TestWorkerPool_FailuresDoNotStopOthers(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{MaxConcurrent: 1}, zap.NewNop())

	items := []WorkItem[string]{
		{ID: "ok", Execute: func(ctx context.Context) (string, error) { return "done", nil }},
		{ID: "bad", Execute: func(ctx context.Context) (string, error) { return "", errors.New("boom") }},
		{ID: "ok2", Execute: func(ctx context.Context) (string, error) { return "done", nil }},
	}

	results := Process(context.Background(), pool, items, nil)
	require.Len(t, results, 3)

	var failed, succeeded int
	for _, r := range results {
		if r.Err != nil {
			failed++
			assert.Equal(t, "bad", r.ID)
		} else {
			succeeded++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, succeeded)
}

func TestWorkerPool_BoundedConcurrency(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{MaxConcurrent: 2}, zap.NewNop())

	var current, peak int32
	items := make([]WorkItem[struct{}], 8)
	for i := range items {
		items[i] = WorkItem[struct{}]{
			ID: "w",
			Execute: func(ctx context.Context) (struct{}, error) {
				n := atomic.AddInt32(&current, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				atomic.AddInt32(&current, -1)
				return struct{}{}, nil
			},
		}
	}

	Process(context.Background(), pool, items, nil)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestWorkerPool_ProgressCallback(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{MaxConcurrent: 4}, zap.NewNop())

	items := []WorkItem[int]{
		{ID: "a", Execute: func(ctx context.Context) (int, error) { return 0, nil }},
		{ID: "b", Execute: func(ctx context.Context) (int, error) { return 0, nil }},
	}

	var calls int
	var lastCompleted, lastTotal int
	Process(context.Background(), pool, items, func(completed, total int) {
		calls++
		lastCompleted = completed
		lastTotal = total
	})

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, lastCompleted)
	assert.Equal(t, 2, lastTotal)
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{MaxConcurrent: 1}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []WorkItem[int]{
		{ID: "a", Execute: func(ctx context.Context) (int, error) { return 1, nil }},
	}

	results := Process(ctx, pool, items, nil)
	require.Len(t, results, 1)
	// The item either ran or was rejected at the semaphore; a rejection must
	// carry the context error.
	if results[0].Err != nil {
		assert.ErrorIs(t, results[0].Err, context.Canceled)
	}
}

func TestWorkerPool_DefaultsAppliedForInvalidConfig(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{MaxConcurrent: 0}, zap.NewNop())
	assert.Equal(t, 4, pool.config.MaxConcurrent)
}

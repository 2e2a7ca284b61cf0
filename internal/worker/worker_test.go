package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsSubmittedTask(t *testing.T) {
	pool := NewPool(context.Background(), zerolog.Nop())

	done := make(chan struct{})
	pool.Submit("task", func(ctx context.Context) { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("submitted task never ran")
	}
	require.NoError(t, pool.Shutdown(context.Background()))
}

func TestPool_RecoversFromPanic(t *testing.T) {
	pool := NewPool(context.Background(), zerolog.Nop())

	var ran atomic.Bool
	pool.Submit("panics", func(ctx context.Context) { panic("boom") })
	pool.Submit("survives", func(ctx context.Context) { ran.Store(true) })

	require.NoError(t, pool.Shutdown(context.Background()))
	assert.True(t, ran.Load())
}

func TestPool_ShutdownDrainsInFlightTasks(t *testing.T) {
	pool := NewPool(context.Background(), zerolog.Nop())

	var finished atomic.Bool
	started := make(chan struct{})
	pool.Submit("slow", func(ctx context.Context) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})

	<-started
	require.NoError(t, pool.Shutdown(context.Background()))
	assert.True(t, finished.Load(), "shutdown returned before the task finished")
}

func TestPool_TasksSurviveBaseCancellation(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	pool := NewPool(base, zerolog.Nop())

	// The server wires the pool to the signal context, which is already
	// cancelled by the time the drain runs. An in-flight task must still see a
	// live context so it can record its outcome.
	started := make(chan struct{})
	var taskErr error
	pool.Submit("in-flight", func(ctx context.Context) {
		close(started)
		<-base.Done()
		taskErr = ctx.Err()
	})

	<-started
	cancel()
	require.NoError(t, pool.Shutdown(context.Background()))
	assert.NoError(t, taskErr, "task context must not be cancelled during drain")
}

func TestPool_ShutdownHonoursDeadline(t *testing.T) {
	pool := NewPool(context.Background(), zerolog.Nop())

	release := make(chan struct{})
	pool.Submit("stuck", func(ctx context.Context) { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Shutdown(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

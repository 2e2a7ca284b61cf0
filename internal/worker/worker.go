// Package worker runs detached background tasks.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Runner accepts fire-and-forget tasks. Submitted tasks have no return channel
// and no cancellation handle; callers observe their effects through the store.
type Runner interface {
	Submit(name string, fn func(ctx context.Context))
}

// Pool runs each task on its own goroutine against a shared base context.
type Pool struct {
	base context.Context
	log  zerolog.Logger
	wg   sync.WaitGroup
}

var _ Runner = (*Pool)(nil)

// NewPool creates a pool whose tasks inherit base's values but not its
// cancellation, so tasks submitted before shutdown can finish inside the
// Shutdown drain window.
func NewPool(base context.Context, log zerolog.Logger) *Pool {
	return &Pool{base: base, log: log}
}

// Submit schedules fn and returns immediately.
func (p *Pool) Submit(name string, fn func(ctx context.Context)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				p.log.Error().Interface("panic", rec).Str("task", name).Msg("background task panicked")
			}
		}()
		p.log.Debug().Str("task", name).Msg("background task starting")
		fn(context.WithoutCancel(p.base))
	}()
}

// Shutdown waits for in-flight tasks to finish or ctx to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

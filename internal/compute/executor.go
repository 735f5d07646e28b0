// Package compute provides the bounded worker pool the server uses to
// recompute battery state off the request path, plus a parallel map
// helper for per-muscle fan-out.
package compute

import (
	"context"
	"sync"
	"sync/atomic"
)

// Executor runs submitted tasks on a fixed set of workers. A pool size
// of zero degrades every submission to a synchronous call, which keeps
// tests and the offline simulator free of goroutine bookkeeping.
type Executor struct {
	tasks chan func()
	wg    sync.WaitGroup
	gen   atomic.Uint64

	// mu orders submissions against Close: Submit holds the read lock
	// across its closed check and channel send, so the channel can never
	// close between them.
	mu     sync.RWMutex
	closed bool
}

// NewExecutor starts workers goroutines. workers <= 0 yields a
// synchronous executor.
func NewExecutor(workers int) *Executor {
	e := &Executor{}
	if workers <= 0 {
		return e
	}
	e.tasks = make(chan func(), workers*4)
	for i := 0; i < workers; i++ {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			for task := range e.tasks {
				task()
			}
		}()
	}
	return e
}

// Close stops accepting work and waits for in-flight tasks to finish.
// Submissions after Close run synchronously.
func (e *Executor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.tasks != nil {
		close(e.tasks)
	}
	e.mu.Unlock()
	e.wg.Wait()
}

// NextGeneration hands out a monotonically increasing stamp. Callers
// tag each recomputation with one so a slow result can be recognized as
// superseded and dropped.
func (e *Executor) NextGeneration() uint64 {
	return e.gen.Add(1)
}

// Future is the pending result of a submitted task.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func (f *Future[T]) complete(v T, err error) {
	f.val = v
	f.err = err
	close(f.done)
}

// Wait blocks until the task finishes or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit schedules fn on e and returns its Future. When the pool is
// synchronous, closed, or saturated, fn runs inline on the caller's
// goroutine instead of blocking behind the queue.
func Submit[T any](e *Executor, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	run := func() { f.complete(fn()) }

	if e.tasks == nil {
		run()
		return f
	}
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		run()
		return f
	}
	select {
	case e.tasks <- run:
		e.mu.RUnlock()
	default:
		e.mu.RUnlock()
		run()
	}
	return f
}

// Latest keeps only the newest-generation value. Store drops writes
// stamped older than what is already held, giving last-write-wins
// semantics when recomputations race.
type Latest[T any] struct {
	mu  sync.Mutex
	gen uint64
	val T
	set bool
}

// Store records v if gen is at least as new as the held value. Reports
// whether the write took effect.
func (l *Latest[T]) Store(gen uint64, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.set && gen < l.gen {
		return false
	}
	l.gen = gen
	l.val = v
	l.set = true
	return true
}

// Load returns the newest stored value, if any.
func (l *Latest[T]) Load() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.val, l.set
}

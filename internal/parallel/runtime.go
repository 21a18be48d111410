package parallel

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sys/cpu"

	apperrors "github.com/agbru/logmap/internal/errors"
)

const (
	// DefaultWorkers is the worker count of the data-parallel runtime.
	DefaultWorkers = 32
	// DefaultGrain is the smallest number of elements handed to one task.
	DefaultGrain = 1024
	// splitFactor is the number of chunks created per worker, so that a slow
	// chunk does not leave the other workers idle.
	splitFactor = 4
)

// Stats is a point-in-time copy of the runtime counters.
type Stats struct {
	Loops  uint64 `json:"loops"`  // calls to For
	Chunks uint64 `json:"chunks"` // chunks executed
	Panics uint64 `json:"panics"` // chunks that panicked
}

type counters struct {
	loops  atomic.Uint64
	_      cpu.CacheLinePad
	chunks atomic.Uint64
	_      cpu.CacheLinePad
	panics atomic.Uint64
}

// Runtime runs index ranges across a fixed number of goroutines. The limit
// holds across every concurrent caller: several dispatch workers calling For
// at once share the same Workers slots.
type Runtime struct {
	workers int
	grain   int
	slots   *semaphore.Weighted
	stats   counters
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithGrain sets the minimum chunk size. Values below 1 are clamped to 1.
func WithGrain(grain int) Option {
	return func(r *Runtime) {
		if grain < 1 {
			grain = 1
		}
		r.grain = grain
	}
}

func newRuntime(workers int, opts ...Option) *Runtime {
	if workers < 1 {
		workers = 1
	}
	r := &Runtime{workers: workers, grain: DefaultGrain}
	for _, opt := range opts {
		opt(r)
	}
	r.slots = semaphore.NewWeighted(int64(workers))
	return r
}

// Workers returns the fixed worker count.
func (r *Runtime) Workers() int { return r.workers }

// Grain returns the minimum chunk size.
func (r *Runtime) Grain() int { return r.grain }

// Stats returns a snapshot of the runtime counters.
func (r *Runtime) Stats() Stats {
	return Stats{
		Loops:  r.stats.loops.Load(),
		Chunks: r.stats.chunks.Load(),
		Panics: r.stats.panics.Load(),
	}
}

// For calls body over disjoint half-open ranges that together cover [0, n)
// and returns once every call has finished. Ranges no smaller than the grain
// run concurrently on at most Workers goroutines, counted over all callers; a
// range of n <= grain runs on the calling goroutine once it holds a slot.
//
// The first error stops the scheduling of chunks that have not started yet.
// A panic inside body is recovered and reported as an apperrors.CalculationError.
// body must not call For on the same Runtime.
func (r *Runtime) For(n int, body func(lo, hi int) error) error {
	r.stats.loops.Add(1)
	if n <= 0 {
		return nil
	}
	if n <= r.grain || r.workers == 1 {
		r.acquire()
		defer r.slots.Release(1)
		return r.runChunk(0, n, body)
	}

	chunk := (n + r.workers*splitFactor - 1) / (r.workers * splitFactor)
	if chunk < r.grain {
		chunk = r.grain
	}

	var (
		g  errgroup.Group
		ec ErrorCollector
	)
	for lo := 0; lo < n; lo += chunk {
		if ec.Err() != nil {
			break
		}
		r.acquire()
		hi := min(lo+chunk, n)
		g.Go(func() error {
			defer r.slots.Release(1)
			if ec.Err() != nil {
				return nil
			}
			ec.SetError(r.runChunk(lo, hi, body))
			return nil
		})
	}
	_ = g.Wait()
	return ec.Err()
}

// acquire blocks until a worker slot is free. The background context never
// ends, so Acquire cannot fail.
func (r *Runtime) acquire() {
	_ = r.slots.Acquire(context.Background(), 1)
}

func (r *Runtime) runChunk(lo, hi int, body func(lo, hi int) error) (err error) {
	r.stats.chunks.Add(1)
	defer func() {
		if p := recover(); p != nil {
			r.stats.panics.Add(1)
			err = apperrors.CalculationError{
				Cause: fmt.Errorf("panic in range [%d,%d): %v\n%s", lo, hi, p, debug.Stack()),
			}
		}
	}()
	return body(lo, hi)
}

package parallel

import (
	"errors"
	"sync"
)

// ErrAlreadyConfigured is returned by Bootstrap.Init once the runtime exists,
// whether it was created by an earlier Init or lazily by first use.
var ErrAlreadyConfigured = errors.New("parallel runtime already configured")

// Bootstrap owns the single data-parallel Runtime of a process. It is created
// once at start-up and handed to every component that fans work out.
type Bootstrap struct {
	mu       sync.Mutex
	rt       *Runtime
	fallback int
	opts     []Option
}

// NewBootstrap returns an unconfigured Bootstrap. fallback is the worker count
// used when the runtime is needed before Init is called.
func NewBootstrap(fallback int, opts ...Option) *Bootstrap {
	if fallback < 1 {
		fallback = DefaultWorkers
	}
	return &Bootstrap{fallback: fallback, opts: opts}
}

// Init fixes the runtime's worker count. Only the first configuration wins;
// every later call returns ErrAlreadyConfigured and leaves the runtime as is.
func (b *Bootstrap) Init(workers int) (*Runtime, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rt != nil {
		return b.rt, ErrAlreadyConfigured
	}
	b.rt = newRuntime(workers, b.opts...)
	return b.rt, nil
}

// Runtime returns the configured runtime, creating it with the fallback
// worker count if Init has not run yet.
func (b *Bootstrap) Runtime() *Runtime {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rt == nil {
		b.rt = newRuntime(b.fallback, b.opts...)
	}
	return b.rt
}

// Configured reports whether the runtime exists.
func (b *Bootstrap) Configured() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rt != nil
}

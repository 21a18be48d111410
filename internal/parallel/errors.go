package parallel

import "sync"

// ErrorCollector records the first non-nil error reported by concurrent
// workers. Later errors and nil values are ignored.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is the first non-nil error.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

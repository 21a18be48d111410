package dispatch

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/agbru/logmap/internal/errors"
)

// Mailbox is an unbounded ReplyTarget owned by one caller. Deliver never
// blocks, so a slow reader cannot stall a dispatch worker.
type Mailbox struct {
	q *queue[Reply]
}

// NewMailbox returns an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{q: newQueue[Reply]()}
}

// Deliver enqueues r.
func (m *Mailbox) Deliver(r Reply) {
	_ = m.q.push(r)
}

// Receive returns the oldest reply, waiting until one arrives or ctx is done.
func (m *Mailbox) Receive(ctx context.Context) (Reply, error) {
	return m.q.pop(ctx)
}

// ReceiveTimeout waits at most d for a reply and reports an
// apperrors.TimeoutError when none arrives.
func (m *Mailbox) ReceiveTimeout(ctx context.Context, d time.Duration) (Reply, error) {
	waitCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	r, err := m.q.pop(waitCtx)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return Reply{}, apperrors.TimeoutError{Operation: "await reply", Limit: d}
	}
	return r, err
}

// Len reports the number of undelivered replies.
func (m *Mailbox) Len() int { return m.q.len() }

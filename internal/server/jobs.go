package server

import (
	"context"
	"sync"
	"time"

	"github.com/agbru/logmap/internal/dispatch"
)

// DefaultJobRetention is how long a delivered reply stays fetchable.
const DefaultJobRetention = 10 * time.Minute

type boardEntry struct {
	done      chan struct{}
	reply     dispatch.Reply
	delivered time.Time
}

// JobBoard is the reply target of every job submitted over HTTP. A delivered
// reply can be fetched any number of times until the retention period runs
// out; only the sweep run by Track removes it.
type JobBoard struct {
	mu        sync.Mutex
	entries   map[dispatch.JobID]*boardEntry
	retention time.Duration
	now       func() time.Time
}

// NewJobBoard returns an empty board.
func NewJobBoard(retention time.Duration) *JobBoard {
	if retention <= 0 {
		retention = DefaultJobRetention
	}
	return &JobBoard{
		entries:   make(map[dispatch.JobID]*boardEntry),
		retention: retention,
		now:       time.Now,
	}
}

// entry returns the slot for id, creating it. Callers hold b.mu.
func (b *JobBoard) entry(id dispatch.JobID) *boardEntry {
	e, ok := b.entries[id]
	if !ok {
		e = &boardEntry{done: make(chan struct{})}
		b.entries[id] = e
	}
	return e
}

// Track registers a submitted job so that Wait recognizes it before it
// finishes. A reply delivered before Track is kept.
func (b *JobBoard) Track(id dispatch.JobID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweep()
	b.entry(id)
}

// Deliver implements dispatch.ReplyTarget.
func (b *JobBoard) Deliver(r dispatch.Reply) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entry(r.JobID)
	select {
	case <-e.done:
		return
	default:
	}
	e.reply = r
	e.delivered = b.now()
	close(e.done)
}

// Wait returns the reply for id, waiting up to d for it. ok is false when
// the job is unknown; done is false when it is still pending.
func (b *JobBoard) Wait(ctx context.Context, id dispatch.JobID, d time.Duration) (r dispatch.Reply, done, ok bool) {
	b.mu.Lock()
	e, ok := b.entries[id]
	b.mu.Unlock()
	if !ok {
		return dispatch.Reply{}, false, false
	}

	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-e.done:
		case <-timer.C:
		case <-ctx.Done():
		}
	}

	select {
	case <-e.done:
		return e.reply, true, true
	default:
		return dispatch.Reply{}, false, true
	}
}

// Len returns the number of tracked jobs.
func (b *JobBoard) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// sweep drops delivered entries older than the retention period. Callers
// hold b.mu.
func (b *JobBoard) sweep() {
	cutoff := b.now().Add(-b.retention)
	for id, e := range b.entries {
		select {
		case <-e.done:
			if e.delivered.Before(cutoff) {
				delete(b.entries, id)
			}
		default:
		}
	}
}

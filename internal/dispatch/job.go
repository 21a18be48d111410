package dispatch

import (
	"bytes"
	"errors"
	"slices"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/agbru/logmap/internal/logmap"
)

// ErrBatchFailed is the generic failure marker delivered for any decode,
// normalization or evaluation failure of an asynchronous job.
var ErrBatchFailed = errors.New("batch failed")

// JobID identifies a submitted job. IDs sort by submission time.
type JobID = ulid.ULID

// State is the lifecycle position of a job.
type State int32

const (
	StateCaptured State = iota
	StateQueued
	StateRunning
	StateDelivered
	StateDeliveredError
)

func (s State) String() string {
	switch s {
	case StateCaptured:
		return "captured"
	case StateQueued:
		return "queued"
	case StateRunning:
		return "running"
	case StateDelivered:
		return "delivered"
	case StateDeliveredError:
		return "delivered_error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateDelivered || s == StateDeliveredError
}

// Reply is the message delivered to a job's reply target.
type Reply struct {
	JobID  JobID
	Values []int64
	// Err is nil on success. On failure it matches ErrBatchFailed; with
	// WithErrorDetail it also wraps the underlying cause.
	Err error
}

// OK reports whether the job succeeded.
func (r Reply) OK() bool { return r.Err == nil }

// job is the self-contained snapshot of one asynchronous request. Nothing in
// it aliases caller memory.
type job struct {
	id         JobID
	input      logmap.Input
	decodeErr  error
	iterations int64
	params     logmap.Params
	replyTo    ReplyTarget
	queuedAt   time.Time
	state      atomic.Int32
}

func capture(v any, iterations int64, p logmap.Params, replyTo ReplyTarget) *job {
	j := &job{
		id:         ulid.Make(),
		iterations: iterations,
		params:     p,
		replyTo:    replyTo,
	}
	in, err := logmap.Decode(v)
	switch x := in.(type) {
	case logmap.List:
		in = slices.Clone(x)
	case logmap.RawBytes:
		in = logmap.RawBytes(bytes.Clone(x))
	}
	j.input, j.decodeErr = in, err
	j.setState(StateCaptured)
	return j
}

func (j *job) setState(s State) { j.state.Store(int32(s)) }

func (j *job) getState() State { return State(j.state.Load()) }

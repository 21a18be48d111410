//go:generate mockgen -source=interfaces.go -destination=mocks/mock_dispatch.go -package=mocks

package dispatch

import (
	"time"

	"github.com/agbru/logmap/internal/parallel"
)

// ReplyTarget receives replies. Deliver is called from a dispatch worker and
// must not block.
type ReplyTarget interface {
	Deliver(Reply)
}

// ReplyFunc adapts a function to ReplyTarget.
type ReplyFunc func(Reply)

// Deliver calls f.
func (f ReplyFunc) Deliver(r Reply) { f(r) }

// RuntimeSource hands out the data-parallel runtime. *parallel.Bootstrap
// implements it; the runtime is looked up per job so that an Init issued
// after the dispatcher was built still takes effect.
type RuntimeSource interface {
	Runtime() *parallel.Runtime
}

// Recorder receives job lifecycle measurements.
type Recorder interface {
	JobSubmitted()
	JobStarted(wait time.Duration)
	JobFinished(ok bool, elapsed time.Duration, seeds int)
	QueueDepth(n int)
}

type nopRecorder struct{}

func (nopRecorder) JobSubmitted()                        {}
func (nopRecorder) JobStarted(time.Duration)             {}
func (nopRecorder) JobFinished(bool, time.Duration, int) {}
func (nopRecorder) QueueDepth(int)                       {}

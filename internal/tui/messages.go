package tui

import (
	"time"

	"github.com/agbru/logmap/internal/dispatch"
	"github.com/agbru/logmap/internal/engine"
)

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SubmittedMsg reports a job accepted by the dispatcher.
type SubmittedMsg struct {
	ID dispatch.JobID
	At time.Time
}

// SubmitErrorMsg reports a rejected submission.
type SubmitErrorMsg struct{ Err error }

// ReplyMsg carries a delivered reply into the program.
type ReplyMsg struct {
	Reply dispatch.Reply
	At    time.Time
}

// StatusMsg is a pool snapshot.
type StatusMsg engine.Status

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg struct {
	HeapAlloc    uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg is a host usage sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg is sent when the parent context ends.
type ContextCancelledMsg struct{ Err error }

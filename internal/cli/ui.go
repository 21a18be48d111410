//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/logmap/internal/dispatch"
	"github.com/agbru/logmap/internal/format"
)

// SpinnerRefreshRate is the spinner frame interval.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner abstracts a terminal spinner so that AwaitReply can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// AwaitReply waits up to timeout for the reply to job id, animating a spinner
// on out meanwhile. Pass io.Discard to wait silently. A missed deadline is
// reported as apperrors.TimeoutError; the job itself keeps running.
func AwaitReply(ctx context.Context, mb *dispatch.Mailbox, id dispatch.JobID, timeout time.Duration, out io.Writer) (dispatch.Reply, error) {
	if out == io.Discard {
		return mb.ReceiveTimeout(ctx, timeout)
	}

	s := newSpinner(out)
	start := time.Now()
	s.UpdateSuffix(fmt.Sprintf(" awaiting job %s", id))
	s.Start()
	defer s.Stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.UpdateSuffix(fmt.Sprintf(" awaiting job %s (%s)", id, format.FormatExecutionDuration(time.Since(start).Round(time.Second))))
			}
		}
	}()

	return mb.ReceiveTimeout(ctx, timeout)
}

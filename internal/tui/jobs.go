package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/logmap/internal/dispatch"
	"github.com/agbru/logmap/internal/format"
)

type jobRow struct {
	id          dispatch.JobID
	submittedAt time.Time
	deliveredAt time.Time
	delivered   bool
	count       int
	err         error
}

// latency is zero until both ends of the job are known.
func (r jobRow) latency() time.Duration {
	if !r.delivered || r.submittedAt.IsZero() {
		return 0
	}
	return r.deliveredAt.Sub(r.submittedAt)
}

// JobsModel lists submitted jobs, newest first.
type JobsModel struct {
	rows      []jobRow
	index     map[dispatch.JobID]int
	offset    int
	width     int
	height    int
	delivered int
	failed    int
}

// NewJobsModel returns an empty job list.
func NewJobsModel() JobsModel {
	return JobsModel{index: make(map[dispatch.JobID]int)}
}

func (m *JobsModel) row(id dispatch.JobID) *jobRow {
	i, ok := m.index[id]
	if !ok {
		m.rows = append(m.rows, jobRow{id: id})
		i = len(m.rows) - 1
		m.index[id] = i
	}
	return &m.rows[i]
}

// Submitted records an accepted job. A reply may already have arrived.
func (m *JobsModel) Submitted(id dispatch.JobID, at time.Time) {
	m.row(id).submittedAt = at
}

// Deliver records a reply.
func (m *JobsModel) Deliver(r dispatch.Reply, at time.Time) {
	row := m.row(r.JobID)
	if row.delivered {
		return
	}
	row.delivered, row.deliveredAt = true, at
	row.count, row.err = len(r.Values), r.Err
	if r.OK() {
		m.delivered++
	} else {
		m.failed++
	}
}

// Counts returns the number of submitted, delivered and failed jobs.
func (m JobsModel) Counts() (submitted, delivered, failed int) {
	return len(m.rows), m.delivered, m.failed
}

// Reset clears the list.
func (m *JobsModel) Reset() {
	*m = JobsModel{index: make(map[dispatch.JobID]int), width: m.width, height: m.height}
}

// Scroll moves the view by delta rows.
func (m *JobsModel) Scroll(delta int) {
	m.offset = min(max(m.offset+delta, 0), max(len(m.rows)-1, 0))
}

// SetSize updates dimensions.
func (m *JobsModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

// View renders the job panel.
func (m JobsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Jobs"))
	visible := max(m.height-3, 1)
	shown := 0
	for i := len(m.rows) - 1 - m.offset; i >= 0 && shown < visible; i-- {
		b.WriteString("\n")
		b.WriteString(renderJobRow(m.rows[i]))
		shown++
	}
	if len(m.rows) == 0 {
		b.WriteString("\n" + dimStyle.Render("no jobs yet, press s to submit"))
	}
	return panelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 0)).Render(b.String())
}

func renderJobRow(r jobRow) string {
	id := r.id.String()
	switch {
	case !r.delivered:
		return fmt.Sprintf("%s %s", dimStyle.Render(id), pendingStyle.Render("pending"))
	case r.err != nil:
		return fmt.Sprintf("%s %s %s", dimStyle.Render(id), failedStyle.Render("failed"), dimStyle.Render(r.err.Error()))
	default:
		return fmt.Sprintf("%s %s %s in %s", dimStyle.Render(id), okStyle.Render("delivered"),
			valueStyle.Render(fmt.Sprintf("%d values", r.count)), format.FormatExecutionDuration(r.latency()))
	}
}

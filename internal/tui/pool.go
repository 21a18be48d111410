package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/logmap/internal/format"
)

// historySize is the number of samples kept per sparkline.
const historySize = 60

// PoolModel shows dispatch pool state, the data-parallel runtime counters
// and host load.
type PoolModel struct {
	status  StatusMsg
	mem     MemStatsMsg
	sys     SysStatsMsg
	busy    *RingBuffer
	pending *RingBuffer
	cpu     *RingBuffer
	width   int
	height  int
}

// NewPoolModel returns a pool panel with empty history.
func NewPoolModel() PoolModel {
	return PoolModel{
		busy:    NewRingBuffer(historySize),
		pending: NewRingBuffer(historySize),
		cpu:     NewRingBuffer(historySize),
	}
}

// UpdateStatus records a pool snapshot.
func (m *PoolModel) UpdateStatus(s StatusMsg) {
	m.status = s
	m.busy.Push(float64(s.Busy))
	m.pending.Push(float64(s.Pending))
}

// UpdateMemStats records a memory sample.
func (m *PoolModel) UpdateMemStats(s MemStatsMsg) { m.mem = s }

// UpdateSysStats records a host sample.
func (m *PoolModel) UpdateSysStats(s SysStatsMsg) {
	m.sys = s
	m.cpu.Push(s.CPUPercent)
}

// SetSize updates dimensions.
func (m *PoolModel) SetSize(w, h int) { m.width, m.height = w, h }

func metric(label, value string) string {
	return dimStyle.Render(fmt.Sprintf("%-10s", label)) + " " + valueStyle.Render(value)
}

// View renders the pool panel.
func (m PoolModel) View() string {
	s := m.status
	runtime := "not configured"
	if s.Configured {
		runtime = fmt.Sprintf("%d workers", s.RuntimeWorkers)
	}
	lines := []string{
		titleStyle.Render("Pool"),
		metric("Dispatch:", fmt.Sprintf("%d busy / %d, %d queued", s.Busy, s.PoolSize, s.Pending)),
		metric("Runtime:", runtime),
		metric("Loops:", fmt.Sprintf("%d (%d chunks, %d panics)", s.Runtime.Loops, s.Runtime.Chunks, s.Runtime.Panics)),
		metric("Heap:", fmt.Sprintf("%s, %d GC, %d goroutines", format.FormatBytes(m.mem.HeapAlloc), m.mem.NumGC, m.mem.NumGoroutine)),
		metric("Host:", fmt.Sprintf("CPU %.1f%%, memory %.1f%%", m.sys.CPUPercent, m.sys.MemPercent)),
		"",
		metric("Busy:", busySparkStyle.Render(RenderSparkline(m.busy.Slice(), float64(max(s.PoolSize, 1))))),
		metric("Queued:", busySparkStyle.Render(RenderSparkline(m.pending.Slice(), max(m.pending.Max(), 1)))),
		metric("CPU:", cpuSparkStyle.Render(RenderSparkline(m.cpu.Slice(), 100))),
	}
	return panelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 0)).Render(strings.Join(lines, "\n"))
}

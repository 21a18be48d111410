package tui

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/logmap/internal/config"
	"github.com/agbru/logmap/internal/dispatch"
	"github.com/agbru/logmap/internal/engine"
	apperrors "github.com/agbru/logmap/internal/errors"
	"github.com/agbru/logmap/internal/logmap"
	"github.com/agbru/logmap/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 8
	JobsPanelWidthPercent = 55
	tickInterval          = 500 * time.Millisecond
)

// Engine is the part of engine.Engine the dashboard drives.
type Engine interface {
	MapCalcAsync(input any, iterations, p, mu int64, reply dispatch.ReplyTarget) (dispatch.JobID, error)
	Status() engine.Status
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header HeaderModel
	jobs   JobsModel
	pool   PoolModel
	keymap KeyMap

	ctx    context.Context
	eng    Engine
	input  logmap.Input
	config config.AppConfig
	ref    *programRef
	target dispatch.ReplyTarget

	paused  bool
	lastErr error
	width   int
	height  int
}

// NewModel creates a dashboard that submits input with the map parameters
// of cfg.
func NewModel(ctx context.Context, eng Engine, input logmap.Input, cfg config.AppConfig, version string) Model {
	ref := &programRef{}
	params := fmt.Sprintf("mu=%d p=%d n=%d", cfg.Multiplier, cfg.Modulus, cfg.Iterations)
	return Model{
		header: NewHeaderModel(version, params),
		jobs:   NewJobsModel(),
		pool:   NewPoolModel(),
		keymap: DefaultKeyMap(),
		ctx:    ctx,
		eng:    eng,
		input:  input,
		config: cfg,
		ref:    ref,
		target: replyTarget{ref: ref},
	}
}

// Init submits the first job and starts sampling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.submitCmd(), m.sampleCmd(), tickCmd(), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutPanels()
		return m, nil

	case SubmittedMsg:
		m.jobs.Submitted(msg.ID, msg.At)
		return m, m.sampleCmd()

	case SubmitErrorMsg:
		m.lastErr = msg.Err
		return m, nil

	case ReplyMsg:
		m.jobs.Deliver(msg.Reply, msg.At)
		return m, nil

	case StatusMsg:
		m.pool.UpdateStatus(msg)
		return m, nil

	case MemStatsMsg:
		m.pool.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.pool.UpdateSysStats(msg)
		return m, nil

	case TickMsg:
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(m.sampleCmd(), sampleSysStatsCmd(m.ctx), tickCmd())

	case ContextCancelledMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Submit):
		return m, m.submitCmd()
	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil
	case key.Matches(msg, m.keymap.Reset):
		m.jobs.Reset()
		m.header.Reset()
		m.lastErr = nil
		return m, nil
	case key.Matches(msg, m.keymap.Up):
		m.jobs.Scroll(-1)
		return m, nil
	case key.Matches(msg, m.keymap.Down):
		m.jobs.Scroll(1)
		return m, nil
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.jobs.View(), m.pool.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footerView())
}

func (m Model) footerView() string {
	var parts []string
	for _, b := range m.keymap.ShortHelp() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	submitted, delivered, failed := m.jobs.Counts()
	parts = append(parts, dimStyle.Render(fmt.Sprintf("%d submitted, %d delivered, %d failed", submitted, delivered, failed)))
	if m.paused {
		parts = append(parts, statusPausedStyle.Render("PAUSED"))
	}
	if m.lastErr != nil {
		parts = append(parts, failedStyle.Render(m.lastErr.Error()))
	}
	return " " + strings.Join(parts, dimStyle.Render(" · "))
}

func (m *Model) layoutPanels() {
	body := max(m.height-headerHeight-footerHeight, minBodyHeight)
	jobsWidth := m.width * JobsPanelWidthPercent / 100
	m.header.SetWidth(m.width)
	m.jobs.SetSize(jobsWidth, body)
	m.pool.SetSize(m.width-jobsWidth, body)
}

// submitCmd queues one copy of the configured batch.
func (m Model) submitCmd() tea.Cmd {
	eng, in, c, target := m.eng, m.input, m.config, m.target
	return func() tea.Msg {
		id, err := eng.MapCalcAsync(in, c.Iterations, c.Modulus, c.Multiplier, target)
		if err != nil {
			return SubmitErrorMsg{Err: err}
		}
		return SubmittedMsg{ID: id, At: time.Now()}
	}
}

// sampleCmd reads the pool status and runtime memory statistics.
func (m Model) sampleCmd() tea.Cmd {
	eng := m.eng
	return tea.Batch(
		func() tea.Msg { return StatusMsg(eng.Status()) },
		func() tea.Msg {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			return MemStatsMsg{HeapAlloc: ms.HeapAlloc, NumGC: ms.NumGC, NumGoroutine: runtime.NumGoroutine()}
		},
	)
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(ctx)
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// watchContextCmd waits for cancellation of ctx.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

// Run starts the dashboard and blocks until the user quits or ctx ends.
func Run(ctx context.Context, eng Engine, input logmap.Input, cfg config.AppConfig, version string) int {
	initStyles()

	model := NewModel(ctx, eng, input, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/logmap/internal/dispatch"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so reply targets hold this pointer instead.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe). It is a
// no-op until SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// replyTarget forwards dispatch replies into the program as ReplyMsg.
type replyTarget struct {
	ref *programRef
}

var _ dispatch.ReplyTarget = replyTarget{}

func (t replyTarget) Deliver(r dispatch.Reply) {
	t.ref.Send(ReplyMsg{Reply: r, At: time.Now()})
}

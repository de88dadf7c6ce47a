package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	dbTimeout     = 5 * time.Second
	flashDuration = 3 * time.Second
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Styles *Styles
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// DbCtx returns a context with a standard timeout for store operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

type clearFlashMsg struct {
	seq int
}

// flash is a status line that clears itself after flashDuration.
type flash struct {
	text string
	seq  int
}

func (f *flash) set(text string) tea.Cmd {
	f.seq++
	f.text = text

	seq := f.seq

	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{seq: seq}
	})
}

// clear drops the text unless a newer message replaced it.
func (f *flash) clear(msg clearFlashMsg) {
	if msg.seq == f.seq {
		f.text = ""
	}
}

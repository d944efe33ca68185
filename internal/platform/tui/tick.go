// Package tui runs Sea War in a terminal: the Bubble Tea loop, key bindings,
// the mode menu, the patrol log viewer and the SSH front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one platform tick.
type TickMsg time.Time

// tickCmd schedules the next tick. A non-positive rate falls back to 30 Hz.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Package tui provides the Bubble Tea viewer for the ecosystem simulation.
// It handles the terminal UI loop, key bindings and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the viewer to advance the simulation.
// Gen identifies the tick chain that produced it; a speed change starts a
// new chain and messages from older chains are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules the next tick of chain gen at tickRate ticks per second.
func tickCmd(gen, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshTickMsg is sent to pick up store changes made by background
// delivery timers.
type refreshTickMsg struct{}

// scheduleRefreshTick returns a command that schedules the next refresh.
// The stores are mutated by simulator goroutines outside the Bubble Tea
// loop, so the model re-reads its snapshots on a fixed interval.
func (m Model) scheduleRefreshTick() tea.Cmd {
	return tea.Tick(m.cfg.TUI.PollInterval(), func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

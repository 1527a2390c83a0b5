package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/image-sourcery/internal/logging"
	"github.com/atomicstack/image-sourcery/internal/logging/events"
	"github.com/atomicstack/image-sourcery/internal/ui/command"
)

// run executes a session action through the bus and surfaces its error on the
// status line. It reports whether the action succeeded.
func (m *Model) run(id, label string, fn func() error) bool {
	err := m.bus.Execute(command.Request{ID: id, Label: label, Handler: fn})
	if err != nil {
		m.errMsg = err.Error()
		events.Action.Error(err)
		return false
	}
	m.errMsg = ""
	events.Action.Success(label)
	return true
}

type versionMsg struct {
	version string
	err     error
}

func (m *Model) fetchVersionCmd() tea.Cmd {
	if m.host == nil {
		return nil
	}
	h := m.host
	return func() tea.Msg {
		version, err := h.AppVersion()
		return versionMsg{version: version, err: err}
	}
}

func (m *Model) handleVersionMsg(msg tea.Msg) tea.Cmd {
	v, ok := msg.(versionMsg)
	if !ok {
		return nil
	}
	if v.err != nil {
		logging.Error(v.err)
		return nil
	}
	m.version = v.version
	return nil
}

// readyCmd tells the host the first frame is up so it can start background
// work such as the update check.
func (m *Model) readyCmd() tea.Cmd {
	if m.host == nil {
		return nil
	}
	h := m.host
	return func() tea.Msg {
		if err := h.ReadyToShow(); err != nil {
			logging.Error(err)
		}
		return nil
	}
}

// restart installs the downloaded update and quits; the caller relaunches
// the new binary after the program exits.
func (m *Model) restart() tea.Cmd {
	if !m.banner.restart {
		return nil
	}
	if !m.run("restart", "Restart to update", m.host.RestartApp) {
		return nil
	}
	return tea.Quit
}

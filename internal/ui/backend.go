package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/image-sourcery/internal/backend"
	"github.com/atomicstack/image-sourcery/internal/host"
	"github.com/atomicstack/image-sourcery/internal/logging"
	"github.com/atomicstack/image-sourcery/internal/logging/events"
	"github.com/atomicstack/image-sourcery/internal/ui/command"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent re-lists the source directory after files were added or
// removed by another program. A successful refresh leaves the status line
// alone so earlier errors stay visible.
func (m *Model) applyBackendEvent(evt backend.Event) {
	m.size = sizeCache{}
	if evt.Err != nil {
		m.errMsg = fmt.Sprintf("watch %s: %v", evt.Dir, evt.Err)
		return
	}
	err := m.bus.Execute(command.Request{ID: "refresh", Label: "Refresh source", Handler: m.session.Refresh})
	if err != nil {
		m.errMsg = err.Error()
		events.Action.Error(err)
	}
}

// watchSource points the watcher at the session's source directory.
func (m *Model) watchSource() {
	if m.backend == nil || m.session == nil {
		return
	}
	if err := m.backend.Watch(m.session.SourceDir); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
	}
}

func waitForHostNote(notes <-chan host.Notification) tea.Cmd {
	return func() tea.Msg {
		note, ok := <-notes
		if !ok {
			return hostDoneMsg{}
		}
		return hostNoteMsg{note: note}
	}
}

type hostNoteMsg struct {
	note host.Notification
}

type hostDoneMsg struct{}

// banner is the notification strip shown under the header.
type banner struct {
	text    string
	restart bool
	isError bool
}

func (m *Model) handleHostNoteMsg(msg tea.Msg) tea.Cmd {
	noteMsg, ok := msg.(hostNoteMsg)
	if !ok {
		return nil
	}
	m.applyHostNote(noteMsg.note)
	if m.notes != nil {
		return waitForHostNote(m.notes)
	}
	return nil
}

func (m *Model) handleHostDoneMsg(tea.Msg) tea.Cmd {
	m.notes = nil
	return nil
}

func (m *Model) applyHostNote(note host.Notification) {
	switch note.Kind {
	case host.NoteUpdateAvailable:
		m.banner = banner{text: fmt.Sprintf("Version %s is available. Downloading…", note.Version)}
	case host.NoteUpdateDownloaded:
		m.banner = banner{text: fmt.Sprintf("Version %s has been downloaded.", note.Version), restart: true}
	case host.NoteUpdateError:
		text := "Update failed."
		if note.Err != nil {
			text = fmt.Sprintf("Update failed: %v", note.Err)
		}
		m.banner = banner{text: text, isError: true}
	default:
		return
	}
	events.UI.Banner(m.banner.text, m.banner.restart)
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/image-sourcery/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	keyStr := key.String()
	events.UI.Key(m.mode.String(), keyStr)
	m.clearInfo()

	switch keyStr {
	case "q":
		return tea.Quit
	case "left", "h":
		m.run("prev", "Previous file", m.session.Prev)
	case "right", "l", " ":
		m.run("next", "Next file", m.session.Next)
	case "a":
		m.openClassForm()
	case "s":
		m.openPathForm(events.DirSource)
	case "t":
		m.openPathForm(events.DirTarget)
	case "C":
		if len(m.session.Classes) > 0 && m.run("clear", "Clear classes", m.session.ClearClasses) {
			m.setInfo("Classes cleared")
		}
	case "esc":
		m.banner = banner{}
		m.errMsg = ""
		m.forceClearInfo()
	case "ctrl+r":
		return m.restart()
	default:
		if digit, ok := hotkeyDigit(keyStr); ok {
			m.assign(digit)
		}
	}
	return nil
}

func (m *Model) assign(digit int) {
	class, ok := m.session.ClassForDigit(digit)
	if !ok {
		return
	}
	file, hasFile := m.session.CurrentFile()
	if m.run("assign", "Assign to "+class.Label, func() error { return m.session.AssignDigit(digit) }) && hasFile {
		m.setInfo(file + " → " + class.Label)
	}
}

func hotkeyDigit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}

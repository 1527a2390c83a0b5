package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/image-sourcery/internal/logging/events"
	"github.com/atomicstack/image-sourcery/internal/session"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises the common prompt flow: leave the form, reset status
// and execute the provided action. The action can return a promptResult to
// control follow-up behaviour (command to run, informational message, or
// error).
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.mode = ModeBrowse
	m.classForm = nil
	m.pathForm = nil
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
		events.Action.Success(result.Info)
	}
	return result.Cmd
}

func (m *Model) openClassForm() {
	m.classForm = NewClassForm()
	m.mode = ModeClassForm
	events.Prompt.Open("class")
}

func (m *Model) openPathForm(role events.DirRole) {
	initial := m.session.SourceDir
	if role == events.DirTarget {
		initial = m.session.TargetDir
	}
	m.pathForm = NewPathForm(role, initial, m.host.ListSubdirs)
	m.mode = ModePathForm
	events.Prompt.Open(string(role))
}

func (m *Model) submitClass(label string) tea.Cmd {
	return m.withPrompt(func() promptResult {
		if err := m.session.AddClass(label); err != nil {
			return promptResult{Err: err}
		}
		digit := len(m.session.Classes)
		if digit > session.MaxHotkey {
			return promptResult{Info: "Added " + label + " (no hotkey left)"}
		}
		return promptResult{Info: "Added " + label}
	})
}

func (m *Model) submitPath(role events.DirRole, dir string) tea.Cmd {
	return m.withPrompt(func() promptResult {
		switch role {
		case events.DirSource:
			err := m.session.SelectSource(dir)
			if m.session.SourceDir == dir {
				m.watchSource()
			}
			if err != nil {
				return promptResult{Err: err}
			}
			return promptResult{Info: "Sorting " + dir}
		default:
			if err := m.session.SelectTarget(dir); err != nil {
				return promptResult{Err: err}
			}
			return promptResult{Info: "Moving into " + dir}
		}
	})
}

package ui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/image-sourcery/internal/logging/events"
	uistate "github.com/atomicstack/image-sourcery/internal/ui/state"
)

const maxSuggestions = 8

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "» "
	if styles.PromptTitle != nil {
		ti.PromptStyle = *styles.PromptTitle
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

// ClassForm collects the label for a new class.
type ClassForm struct {
	input textinput.Model
	err   string
}

func NewClassForm() *ClassForm {
	ti := newInput("label")
	ti.CharLimit = 64
	return &ClassForm{input: ti}
}

func (f *ClassForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *ClassForm) InputView() string { return f.input.View() }
func (f *ClassForm) Error() string     { return f.err }
func (f *ClassForm) Title() string     { return "Add class" }
func (f *ClassForm) Help() string      { return "Enter to add. Esc to cancel." }

// Update returns the input's command and whether the form was submitted or
// cancelled.
func (f *ClassForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			events.Prompt.Cancel("class")
			return nil, false, true
		case tea.KeyEnter:
			if f.Value() == "" {
				f.err = "Class label required"
				return nil, false, false
			}
			f.err = ""
			events.Prompt.Submit("class", f.Value())
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	if f.Value() != "" {
		f.err = ""
	}
	return cmd, false, false
}

// PathForm edits a directory path with fuzzy sub-directory suggestions for
// the last path segment.
type PathForm struct {
	role   events.DirRole
	input  textinput.Model
	picker *uistate.Picker
	list   func(string) []string
	listed string
	err    string
}

func NewPathForm(role events.DirRole, initial string, list func(string) []string) *PathForm {
	ti := newInput("/path/to/directory")
	if initial == "" {
		if cwd, err := os.Getwd(); err == nil {
			initial = cwd
		}
	}
	if initial != "" && !strings.HasSuffix(initial, string(filepath.Separator)) {
		initial += string(filepath.Separator)
	}
	ti.SetValue(initial)
	ti.CursorEnd()
	f := &PathForm{role: role, input: ti, picker: uistate.NewPicker(nil), list: list, listed: "\x00"}
	f.refresh()
	return f
}

func (f *PathForm) Role() events.DirRole { return f.role }
func (f *PathForm) InputView() string    { return f.input.View() }
func (f *PathForm) Error() string        { return f.err }
func (f *PathForm) Picker() *uistate.Picker {
	return f.picker
}

func (f *PathForm) Title() string {
	if f.role == events.DirTarget {
		return "Choose target directory"
	}
	return "Choose source directory"
}

func (f *PathForm) Help() string {
	return "Tab to complete. ↑/↓ pick. Enter to choose. Esc to cancel."
}

// Value returns the typed path with ~ expanded and redundant separators
// removed.
func (f *PathForm) Value() string {
	raw := strings.TrimSpace(f.input.Value())
	if raw == "" {
		return ""
	}
	return filepath.Clean(expandHome(raw))
}

// split separates the typed path into the directory being listed and the
// partial name being typed inside it.
func (f *PathForm) split() (string, string) {
	raw := expandHome(f.input.Value())
	if raw == "" {
		return "", ""
	}
	if strings.HasSuffix(raw, string(filepath.Separator)) {
		return raw, ""
	}
	return filepath.Dir(raw) + string(filepath.Separator), filepath.Base(raw)
}

func (f *PathForm) refresh() {
	parent, partial := f.split()
	if parent != f.listed {
		f.listed = parent
		var dirs []string
		if parent != "" && f.list != nil {
			dirs = f.list(filepath.Clean(parent))
		}
		f.picker.SetItems(dirs)
	}
	f.picker.SetQuery(partial)
}

// complete replaces the partial segment with the highlighted suggestion.
func (f *PathForm) complete() bool {
	choice, ok := f.picker.Selected()
	if !ok {
		return false
	}
	parent, _ := f.split()
	value := parent + choice + string(filepath.Separator)
	f.input.SetValue(value)
	f.input.CursorEnd()
	events.Prompt.Complete(string(f.role), value)
	f.refresh()
	return true
}

func (f *PathForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			events.Prompt.Cancel(string(f.role))
			return nil, false, true
		case "enter":
			if f.Value() == "" {
				f.err = "Directory required"
				return nil, false, false
			}
			f.err = ""
			events.Prompt.Submit(string(f.role), f.Value())
			return nil, true, false
		case "tab":
			f.complete()
			return nil, false, false
		case "up", "ctrl+p":
			f.picker.MoveCursor(-1)
			return nil, false, false
		case "down", "ctrl+n":
			f.picker.MoveCursor(1)
			return nil, false, false
		}
	}
	before := f.input.Value()
	updated, cmd := f.input.Update(msg)
	f.input = updated
	if f.input.Value() != before {
		f.err = ""
		f.refresh()
	}
	return cmd, false, false
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}

func (m *Model) handleClassForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.classForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.classForm.Update(msg)
	if cancel {
		m.classForm = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		return true, m.submitClass(m.classForm.Value())
	}
	return true, cmd
}

func (m *Model) handlePathForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.pathForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.pathForm.Update(msg)
	if cancel {
		m.pathForm = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		return true, m.submitPath(m.pathForm.Role(), m.pathForm.Value())
	}
	return true, cmd
}

func (m *Model) viewClassForm(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	lines = append(lines, styles.PromptTitle.Render(m.classForm.Title()), "", m.classForm.InputView())
	if err := m.classForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", styles.Footer.Render(m.classForm.Help()))
	return strings.Join(lines, "\n")
}

func (m *Model) viewPathForm(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	lines = append(lines, styles.PromptTitle.Render(m.pathForm.Title()), "", m.pathForm.InputView(), "")
	picker := m.pathForm.Picker()
	if len(picker.Items) == 0 {
		lines = append(lines, styles.Footer.Render("(no matching directories)"))
	} else {
		for i, name := range picker.Visible(maxSuggestions) {
			idx := picker.ViewportOffset + i
			if idx == picker.Cursor {
				lines = append(lines, styles.SelectedSuggestion.Render("▌ "+name))
			} else {
				lines = append(lines, styles.Suggestion.Render("  "+name))
			}
		}
	}
	if err := m.pathForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", styles.Footer.Render(m.pathForm.Help()))
	return strings.Join(lines, "\n")
}

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/atomicstack/image-sourcery/internal/format/table"
	"github.com/atomicstack/image-sourcery/internal/logging/events"
	"github.com/atomicstack/image-sourcery/internal/session"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	minPanelHeight  = 4
	footerHelpText  = "←/→ browse  1-9 assign  a add class  s source  t target  C clear classes  esc dismiss  q quit"
	restartHintText = "Press ctrl+r to restart and update."
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text already carries ANSI styling
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.header()
	switch m.mode {
	case ModeClassForm:
		if m.classForm != nil {
			return m.viewClassForm(header)
		}
	case ModePathForm:
		if m.pathForm != nil {
			return m.viewPathForm(header)
		}
	}
	return m.viewBrowse(header)
}

func (m *Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

func (m *Model) header() string {
	title := styles.Header.Render(appTitle)
	if m.version == "" {
		return title
	}
	return title + "  " + styles.Version.Render("Version "+m.version)
}

func (m *Model) viewBrowse(header string) string {
	width := m.viewWidth()
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: header, raw: true})
	if bannerLine, ok := m.bannerLine(); ok {
		lines = append(lines, bannerLine)
	}
	lines = append(lines,
		m.dirLine("Source", m.session.SourceDir, "press s to choose"),
		m.dirLine("Target", m.session.TargetDir, "press t to choose"),
		styledLine{},
	)
	lines = append(lines, m.classLines()...)
	lines = append(lines, styledLine{}, m.positionLine())

	bottom := []styledLine{m.statusLine()}
	if m.showFooter {
		bottom = append(bottom, styledLine{text: footerHelpText, style: styles.Footer})
	}

	panelHeight := m.viewHeight() - len(lines) - len(bottom)
	if panelHeight < minPanelHeight {
		lines = limitHeight(lines, m.viewHeight()-len(bottom)-minPanelHeight, width)
		panelHeight = minPanelHeight
	}

	out := renderLines(applyWidth(lines, width))
	out += "\n" + m.renderImagePanel(width, panelHeight)
	out += "\n" + renderLines(applyWidth(bottom, width))
	return out
}

func (m *Model) bannerLine() (styledLine, bool) {
	if m.banner.text == "" {
		return styledLine{}, false
	}
	if m.banner.isError {
		return styledLine{text: m.banner.text, style: styles.Error}, true
	}
	text := styles.Banner.Render(" " + m.banner.text + " ")
	if m.banner.restart {
		text += " " + styles.BannerAction.Render(restartHintText)
	}
	return styledLine{text: text, raw: true}, true
}

func (m *Model) dirLine(label, dir, hint string) styledLine {
	value := styles.DirValue.Render(dir)
	if dir == "" {
		value = styles.DirUnset.Render("(" + hint + ")")
	}
	return styledLine{text: styles.DirLabel.Render(label+":") + " " + value, raw: true}
}

func (m *Model) classLines() []styledLine {
	if len(m.session.Classes) == 0 {
		return []styledLine{{text: "No classes yet. Press a to add one.", style: styles.Footer}}
	}
	rows := make([][]string, 0, len(m.session.Classes))
	for _, c := range m.session.Classes {
		digit := styles.ClassCount.Render("-")
		if c.Digit <= session.MaxHotkey {
			digit = styles.ClassDigit.Render(fmt.Sprintf("[%d]", c.Digit))
		}
		rows = append(rows, []string{
			digit,
			styles.ClassLabel.Render(c.Label),
			styles.ClassCount.Render(fmt.Sprintf("%d moved", c.Moved)),
		})
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignRight})
	lines := make([]styledLine, len(formatted))
	for i, row := range formatted {
		lines[i] = styledLine{text: row, raw: true}
	}
	return lines
}

func (m *Model) positionLine() styledLine {
	file, ok := m.session.CurrentFile()
	if !ok {
		return styledLine{text: "0/0", style: styles.Position}
	}
	text := fmt.Sprintf("%d/%d  %s", m.session.Current+1, len(m.session.Files), file)
	if size, ok := m.fileSize(file); ok {
		text += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(size)))
	}
	return styledLine{text: text, style: styles.Position}
}

// sizeCache remembers the last stat so View does not ask the host every frame.
type sizeCache struct {
	key  string
	size int64
	ok   bool
}

func (m *Model) fileSize(file string) (int64, bool) {
	if img := m.session.Rendered; img != nil && img.Name == file {
		return int64(len(img.Data)), true
	}
	if m.host == nil {
		return 0, false
	}
	key := m.session.SourceDir + "\x00" + file
	if m.size.key != key {
		size, err := m.host.FileSize(m.session.SourceDir, file)
		m.size = sizeCache{key: key, size: size, ok: err == nil}
	}
	return m.size.size, m.size.ok
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	return styledLine{}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if m.ready {
		return nil
	}
	m.ready = true
	events.UI.Ready(m.width, m.height)
	return m.readyCmd()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if ansi.StringWidth(text) > width {
				text = ansi.Truncate(text, width, "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

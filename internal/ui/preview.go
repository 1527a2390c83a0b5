package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/image-sourcery/internal/render"
)

// imageCache keeps the half-block rendering of the file on screen so View
// does not decode and rescale on every frame.
type imageCache struct {
	key   string
	lines []string
	dims  string
	err   string
}

func (m *Model) imageLines(innerW, innerH int) ([]string, string, string) {
	img := m.session.Rendered
	if img == nil {
		return nil, "", ""
	}
	key := fmt.Sprintf("%s:%d:%dx%d", img.Name, len(img.Data), innerW, innerH)
	if m.image.key == key {
		return m.image.lines, m.image.dims, m.image.err
	}
	m.image = imageCache{key: key}
	decoded, _, err := render.Decode(img.Data)
	if err != nil {
		m.image.err = err.Error()
		return nil, "", m.image.err
	}
	b := decoded.Bounds()
	m.image.dims = fmt.Sprintf("%d×%d", b.Dx(), b.Dy())
	m.image.lines = render.HalfBlocks(decoded, innerW, innerH)
	return m.image.lines, m.image.dims, ""
}

// panelPlaceholder describes why no image is drawn.
func (m *Model) panelPlaceholder() string {
	switch {
	case m.session.SourceDir == "":
		return "Press s to choose a source directory"
	case !m.session.HasBothDirs():
		return "Press t to choose a target directory"
	case len(m.session.Files) == 0:
		return "(no files)"
	default:
		return "(not an image)"
	}
}

// renderImagePanel builds the bordered image box as a string with exactly
// height rows and totalWidth columns.
func (m *Model) renderImagePanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := "Image"
	if file, ok := m.session.CurrentFile(); ok {
		titleLabel = file
	}
	lines, dims, errLine := m.imageLines(innerW, innerH)
	rawANSI := len(lines) > 0
	contentLines := lines
	bodyStyle := styles.PanelBody
	switch {
	case errLine != "":
		contentLines = []string{errLine}
		bodyStyle = styles.Error
	case len(lines) == 0:
		contentLines = []string{m.panelPlaceholder()}
	}

	titleSeg := " " + titleLabel + " "
	dimSeg := ""
	if dims != "" {
		dimSeg = " " + dims + " "
	}
	dashes := totalWidth - 4 - ansi.StringWidth(titleSeg) - ansi.StringWidth(dimSeg)
	if dashes < 0 {
		dimSeg = ""
		dashes = totalWidth - 4 - ansi.StringWidth(titleSeg)
	}
	if dashes < 0 {
		titleSeg = ansi.Truncate(titleSeg, max(totalWidth-4, 1), "…")
		dashes = totalWidth - 4 - ansi.StringWidth(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := styles.PanelBorder.Render(tlc+hz) +
		styles.PanelTitle.Render(titleSeg) +
		styles.PanelBorder.Render(strings.Repeat(hz, dashes)) +
		styles.Footer.Render(dimSeg) +
		styles.PanelBorder.Render(hz+trc)
	bottomLine := styles.PanelBorder.Render(blc + strings.Repeat(hz, innerW) + brc)

	// Centre the content block inside the panel.
	top := (innerH - len(contentLines)) / 2
	if top < 0 {
		top = 0
	}
	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if idx := i - top; idx >= 0 && idx < len(contentLines) {
			content = contentLines[idx]
		}
		w := ansi.StringWidth(content)
		if w > innerW {
			content = ansi.Truncate(content, innerW, "…")
			w = ansi.StringWidth(content)
		}
		left := (innerW - w) / 2
		right := innerW - w - left
		if !rawANSI && bodyStyle != nil && content != "" {
			content = bodyStyle.Render(content)
		}
		rows = append(rows, styles.PanelBorder.Render(vt)+
			strings.Repeat(" ", left)+content+strings.Repeat(" ", right)+
			styles.PanelBorder.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

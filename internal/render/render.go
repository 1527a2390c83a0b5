// Package render turns image bytes into terminal text. Each cell holds two
// vertically stacked pixels drawn with an upper half block, the foreground
// colour painting the top pixel and the background the bottom one.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const halfBlock = "▀"

// Decode parses data in any registered format and reports the format name.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Fit returns the cell size a w×h pixel image occupies when scaled to fit a
// box of maxCols × maxRows cells, keeping its aspect ratio.
func Fit(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(maxCols)/float64(w), float64(maxRows*2)/float64(h))
	cols = int(math.Round(float64(w) * scale))
	px := int(math.Round(float64(h) * scale))
	rows = (px + 1) / 2
	cols = clamp(cols, 1, maxCols)
	rows = clamp(rows, 1, maxRows)
	return cols, rows
}

// HalfBlocks renders img into at most maxCols × maxRows cells.
func HalfBlocks(img image.Image, maxCols, maxRows int) []string {
	b := img.Bounds()
	cols, rows := Fit(b.Dx(), b.Dy(), maxCols, maxRows)
	if cols == 0 || rows == 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	lines := make([]string, rows)
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		sb.Reset()
		for col := 0; col < cols; col++ {
			top := hex(dst.RGBAAt(col, row*2))
			bottom := hex(dst.RGBAAt(col, row*2+1))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
		lines[row] = sb.String()
	}
	return lines
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

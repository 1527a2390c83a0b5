package state

// MoveCursor moves the highlight by delta rows, wrapping at either end.
func (p *Picker) MoveCursor(delta int) bool {
	n := len(p.Items)
	if n == 0 {
		p.Cursor = 0
		return false
	}
	old := p.Cursor
	p.Cursor = ((p.Cursor+delta)%n + n) % n
	return p.Cursor != old
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (p *Picker) EnsureCursorVisible(maxVisible int) {
	if len(p.Items) == 0 {
		p.Cursor = 0
		p.ViewportOffset = 0
		return
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if p.Cursor >= len(p.Items) {
		p.Cursor = len(p.Items) - 1
	}
	if maxVisible <= 0 {
		p.ViewportOffset = 0
		return
	}
	maxOffset := len(p.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.ViewportOffset > maxOffset {
		p.ViewportOffset = maxOffset
	}
	if p.ViewportOffset < 0 {
		p.ViewportOffset = 0
	}
	if p.Cursor < p.ViewportOffset {
		p.ViewportOffset = p.Cursor
	}
	if upper := p.ViewportOffset + maxVisible - 1; p.Cursor > upper {
		p.ViewportOffset = p.Cursor - maxVisible + 1
	}
}

// Visible returns the window of items starting at the viewport offset.
func (p *Picker) Visible(maxVisible int) []string {
	p.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(p.Items) <= maxVisible {
		return p.Items
	}
	return p.Items[p.ViewportOffset : p.ViewportOffset+maxVisible]
}

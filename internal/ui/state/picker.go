package state

// Picker holds the suggestion list shown under a path prompt: the full set of
// candidates, the subset matching the current query, and the highlighted row.
type Picker struct {
	Full           []string
	Items          []string
	Query          string
	Cursor         int
	ViewportOffset int
}

// NewPicker constructs a picker over items with no query applied.
func NewPicker(items []string) *Picker {
	p := &Picker{}
	p.SetItems(items)
	return p
}

// SetItems replaces the candidates and re-applies the current query.
func (p *Picker) SetItems(items []string) {
	p.Full = append([]string(nil), items...)
	p.applyQuery()
}

// SetQuery filters the candidates and highlights the best match.
func (p *Picker) SetQuery(query string) {
	p.Query = query
	p.applyQuery()
}

func (p *Picker) applyQuery() {
	p.Items = FilterItems(p.Full, p.Query)
	p.Cursor = BestMatchIndex(p.Items, p.Query)
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	p.ViewportOffset = 0
}

// Selected returns the highlighted candidate.
func (p *Picker) Selected() (string, bool) {
	if len(p.Items) == 0 || p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return "", false
	}
	return p.Items[p.Cursor], true
}

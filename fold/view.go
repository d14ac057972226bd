// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package fold

import (
	"slices"

	"github.com/creachadair/mds/mapset"
)

// A View is the fold state of one rendered text: its lines, its static
// Index, and the set of region start lines the user has collapsed.
//
// A View is not safe for concurrent use.
type View struct {
	lines     []string
	idx       *Index
	collapsed mapset.Set[int]
}

// NewView constructs a View of text with every region expanded.
func NewView(text string) *View {
	return &View{
		lines:     splitLines(text),
		idx:       Build(text),
		collapsed: mapset.New[int](),
	}
}

// Index returns the static region index of v.
func (v *View) Index() *Index { return v.idx }

// Lines returns the lines of the text of v. The caller must not modify it.
func (v *View) Lines() []string { return v.lines }

// Toggle collapses or expands the region opening on line, or if none opens
// there, the innermost region containing line. If recursive is true every
// region nested inside it changes along with it. Toggle reports false if no
// region applies to line.
func (v *View) Toggle(line int, recursive bool) bool {
	r, ok := v.idx.Resolve(line)
	if !ok {
		return false
	}
	targets := []int{r.StartLine}
	if recursive {
		targets = v.idx.Nested(r)
	}
	if v.collapsed.Has(r.StartLine) {
		v.collapsed.Remove(targets...)
	} else {
		v.collapsed.Add(targets...)
	}
	return true
}

// CollapseAll collapses every region.
func (v *View) CollapseAll() { v.collapsed = mapset.New(v.idx.starts...) }

// ExpandAll expands every region.
func (v *View) ExpandAll() { v.collapsed = mapset.New[int]() }

// Reveal expands every region containing line, so that it becomes visible.
func (v *View) Reveal(line int) { v.collapsed.Remove(v.idx.Containing(line)...) }

// IsCollapsed reports whether the region opening on line is collapsed.
func (v *View) IsCollapsed(line int) bool { return v.collapsed.Has(line) }

// Collapsed returns the start lines of the collapsed regions in ascending
// order.
func (v *View) Collapsed() []int {
	out := v.collapsed.Slice()
	slices.Sort(out)
	return out
}

// A Row is one visible row of a View.
type Row struct {
	Line int    // 0-based line of the text where the row begins
	Text string // the rendered row

	// Foldable reports whether a region opens on this row.
	Foldable bool

	// Collapsed reports whether the row stands in for a collapsed region,
	// in which case Text is the opening line up to the bracket followed by
	// a placeholder body and the closing bracket.
	Collapsed bool

	// End is the last line of text covered by the row. It equals Line
	// unless the row is collapsed.
	End int
}

// Placeholder is written between the brackets of a collapsed region.
const Placeholder = "…"

// Rows returns the visible rows of v in order.
func (v *View) Rows() []Row {
	rows := make([]Row, 0, len(v.lines))
	for i := 0; i < len(v.lines); i++ {
		r, foldable := v.idx.At(i)
		if foldable && v.collapsed.Has(i) {
			rows = append(rows, Row{
				Line:      i,
				Text:      collapsedText(v.lines[i], r),
				Foldable:  true,
				Collapsed: true,
				End:       r.EndLine,
			})
			i = r.EndLine
			continue
		}
		rows = append(rows, Row{Line: i, Text: v.lines[i], Foldable: foldable, End: i})
	}
	return rows
}

func collapsedText(line string, r Region) string {
	prefix := line[:min(r.StartColumn, len(line))]
	text := prefix + string(r.Open) + Placeholder + string(r.Close)
	if r.TrailingComma {
		text += ","
	}
	return text
}

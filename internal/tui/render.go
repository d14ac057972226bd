// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tui

import (
	"strings"

	"github.com/creachadair/jinspect/fold"
	"github.com/creachadair/jinspect/highlight"
	"github.com/creachadair/jinspect/search"
)

// renderRow renders one visible row with its gutter. Matches that extend
// past the text of a collapsed row are clipped to it. Large documents are
// rendered without syntax highlighting.
func renderRow(row fold.Row, atCursor bool, ms []search.Match, activeStart int, large bool) string {
	var sb strings.Builder
	switch {
	case atCursor:
		sb.WriteString(cursorStyle.Render("›"))
	default:
		sb.WriteByte(' ')
	}
	switch {
	case row.Collapsed:
		sb.WriteString(gutterStyle.Render("▸ "))
	case row.Foldable:
		sb.WriteString(gutterStyle.Render("▾ "))
	default:
		sb.WriteString("  ")
	}

	var clip []search.Match
	for _, m := range ms {
		if m.Start < len(row.Text) {
			m.End = min(m.End, len(row.Text))
			clip = append(clip, m)
		}
	}
	var toks []highlight.Token
	if large {
		toks = []highlight.Token{{Kind: highlight.Plain, Start: 0, End: len(row.Text), Text: row.Text}}
	} else {
		toks = highlight.Line(row.Text)
	}
	for _, seg := range highlight.Decorate(toks, clip, activeStart) {
		sb.WriteString(segmentStyle(seg).Render(seg.Text))
	}
	return sb.String()
}

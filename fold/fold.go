// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package fold computes the collapsible regions of pretty-printed JSON text
// and tracks which of them a viewer has collapsed.
//
// An Index is static: it depends only on the text. A View layers the mutable
// collapsed set over an Index, and renders the rows that remain visible.
package fold

import (
	"slices"
	"strings"
	"unicode"
)

// A Region is the line span of one object or array whose open and close
// brackets are on different lines. Lines and columns are 0-based.
type Region struct {
	StartLine   int  `json:"startLine"`
	EndLine     int  `json:"endLine"`
	Open        byte `json:"openChar"`  // '{' or '['
	Close       byte `json:"closeChar"` // '}' or ']'
	StartColumn int  `json:"startColumn"`
	Depth       int  `json:"depth"` // number of enclosing open brackets

	// TrailingComma reports whether the end line of the region is followed
	// by a comma, meaning a sibling value continues after it.
	TrailingComma bool `json:"trailingComma"`
}

// Contains reports whether line falls within r.
func (r Region) Contains(line int) bool { return r.StartLine <= line && line <= r.EndLine }

// Within reports whether r lies entirely inside outer. A region lies within
// itself.
func (r Region) Within(outer Region) bool {
	return r.StartLine >= outer.StartLine && r.EndLine <= outer.EndLine
}

// An Index is the set of fold regions of a text, keyed by start line. At most
// one region opens on each line; if several do, the outermost is kept.
type Index struct {
	byStart map[int]Region
	starts  []int // ascending
}

type openBracket struct {
	ch        byte
	line, col int
}

// Build scans text and returns its fold regions. Brackets inside string
// literals are ignored. Unbalanced close brackets are skipped, and brackets
// left open at the end of text do not produce regions.
func Build(text string) *Index {
	x := &Index{byStart: make(map[int]Region)}

	var (
		stk       []openBracket
		line, col int
		inStr     bool
		esc       bool
	)
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '\n' {
			line++
			col = 0
			continue
		}
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			col++
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{', '[':
			stk = append(stk, openBracket{ch: ch, line: line, col: col})
		case '}', ']':
			if len(stk) == 0 {
				break
			}
			open := stk[len(stk)-1]
			stk = stk[:len(stk)-1]
			if open.line == line {
				break // nothing to fold
			}
			x.byStart[open.line] = Region{
				StartLine:   open.line,
				EndLine:     line,
				Open:        open.ch,
				Close:       ch,
				StartColumn: open.col,
				Depth:       len(stk),
			}
		}
		col++
	}

	lines := splitLines(text)
	for start, r := range x.byStart {
		r.TrailingComma = hasTrailingComma(lines[r.EndLine])
		x.byStart[start] = r
		x.starts = append(x.starts, start)
	}
	slices.Sort(x.starts)
	return x
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}

func hasTrailingComma(line string) bool {
	return strings.HasSuffix(strings.TrimRightFunc(line, unicode.IsSpace), ",")
}

// Len reports the number of regions in x.
func (x *Index) Len() int { return len(x.starts) }

// At returns the region that opens on line, if any.
func (x *Index) At(line int) (Region, bool) {
	r, ok := x.byStart[line]
	return r, ok
}

// Regions returns all the regions of x in ascending order of start line.
func (x *Index) Regions() []Region {
	out := make([]Region, len(x.starts))
	for i, s := range x.starts {
		out[i] = x.byStart[s]
	}
	return out
}

// Starts returns the start lines of all regions in ascending order.
func (x *Index) Starts() []int { return slices.Clone(x.starts) }

// Enclosing returns the innermost region containing line.
func (x *Index) Enclosing(line int) (Region, bool) {
	var win Region
	var found bool
	for _, s := range x.starts {
		if s > line {
			break
		}
		r := x.byStart[s]
		if r.Contains(line) && (!found || r.Within(win)) {
			win, found = r, true
		}
	}
	return win, found
}

// Resolve returns the region opening on line, or failing that the innermost
// region containing it.
func (x *Index) Resolve(line int) (Region, bool) {
	if r, ok := x.byStart[line]; ok {
		return r, true
	}
	return x.Enclosing(line)
}

// Nested returns the start lines of every region lying within r, including r
// itself, in ascending order.
func (x *Index) Nested(r Region) []int {
	var out []int
	for _, s := range x.starts {
		if s > r.EndLine {
			break
		}
		if x.byStart[s].Within(r) {
			out = append(out, s)
		}
	}
	return out
}

// Containing returns the start lines of every region containing line, from
// outermost to innermost.
func (x *Index) Containing(line int) []int {
	var out []int
	for _, s := range x.starts {
		if s > line {
			break
		}
		if x.byStart[s].Contains(line) {
			out = append(out, s)
		}
	}
	return out
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package errloc maps parser failure messages to positions in source text.
//
// Positions are reported as a 1-based line and column and a 0-based absolute
// offset. Columns and offsets count bytes. Lines are terminated by "\n" or
// "\r\n"; the terminator belongs to the line it ends.
package errloc

import (
	"regexp"
	"strconv"
	"strings"
)

// A Location is a position in source text.
type Location struct {
	Line int `json:"line" yaml:"line"` // 1-based
	Col  int `json:"col" yaml:"col"`   // 1-based
	Pos  int `json:"pos" yaml:"pos"`   // 0-based
}

var (
	lineColRE = regexp.MustCompile(`(?i)line\s+(\d+)\s*,?\s+col(?:umn)?\s+(\d+)`)
	posRE     = regexp.MustCompile(`(?i)(?:position|offset)\s+(\d+)`)
)

// Locate extracts a location from a parser error message and completes it
// using text. It recognizes messages containing "line N column M" and
// messages containing "position P" (or "offset P"). If neither shape is
// present, Locate returns false.
func Locate(text, msg string) (Location, bool) {
	if m := lineColRE.FindStringSubmatch(msg); m != nil {
		line, err1 := strconv.Atoi(m[1])
		col, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil && line >= 1 && col >= 1 {
			return Location{Line: line, Col: col, Pos: IndexFromLineCol(text, line, col)}, true
		}
	}
	if m := posRE.FindStringSubmatch(msg); m != nil {
		if pos, err := strconv.Atoi(m[1]); err == nil {
			line, col := LineColFromIndex(text, pos)
			return Location{Line: line, Col: col, Pos: pos}, true
		}
	}
	return Location{}, false
}

// LineColFromIndex returns the 1-based line and column of offset pos in
// text. Offsets past the end of text are clamped to the end.
func LineColFromIndex(text string, pos int) (line, col int) {
	pos = min(max(pos, 0), len(text))
	head := text[:pos]
	line = strings.Count(head, "\n") + 1
	start := strings.LastIndexByte(head, '\n') + 1
	return line, pos - start + 1
}

// IndexFromLineCol returns the 0-based offset of the 1-based line and column
// in text. Lines beyond the end of text are clamped to the last line; the
// column is not clamped.
func IndexFromLineCol(text string, line, col int) int {
	idx := 0
	for range line - 1 {
		i := strings.IndexByte(text[idx:], '\n')
		if i < 0 {
			break
		}
		idx += i + 1
	}
	return idx + max(0, col-1)
}

// Lines splits text into lines on "\n" or "\r\n".
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}

// Snippet renders the source line containing loc with a caret beneath the
// error column. Tabs are expanded to two spaces on both lines so the caret
// stays aligned. It returns "" if loc.Line is out of range.
func Snippet(text string, loc Location) string {
	lines := Lines(text)
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}
	src := lines[loc.Line-1]
	lead := src[:min(max(loc.Col-1, 0), len(src))]
	pad := len(lead) + strings.Count(lead, "\t") + max(0, loc.Col-1-len(src))
	return strings.ReplaceAll(src, "\t", "  ") + "\n" + strings.Repeat(" ", pad) + "^"
}

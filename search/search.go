// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package search finds text matches in the lines of a rendered document and
// navigates among them.
package search

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPattern is reported by Compile when a regular expression query
// does not compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// Options control how a query is interpreted.
type Options struct {
	Regex         bool // treat the query as a regular expression
	CaseSensitive bool // by default matching ignores case
	WholeWord     bool // require word boundaries on both sides
}

// A Matcher finds occurrences of a compiled query. A nil *Matcher is valid
// and matches nothing.
type Matcher struct {
	re *regexp.Regexp
}

// Compile compiles query under opts. An empty query yields a nil Matcher
// and no error. An invalid regular expression yields an error wrapping
// ErrInvalidPattern.
func Compile(query string, opts Options) (*Matcher, error) {
	if query == "" {
		return nil, nil
	}
	src := query
	if !opts.Regex {
		src = regexp.QuoteMeta(query)
		if opts.WholeWord {
			src = `\b` + src + `\b`
		}
	} else if opts.WholeWord {
		src = `\b(?:` + src + `)\b`
	}
	if !opts.CaseSensitive {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return &Matcher{re: re}, nil
}

// A Match is the location of one match. Start and End are byte offsets into
// the line, End exclusive.
type Match struct {
	Line  int `json:"line"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Line returns the matches of m in text, reporting them as line n.
//
// A zero-width match is reported with End = Start+1 so that it remains
// visible, and scanning resumes one character past it.
func (m *Matcher) Line(n int, text string) []Match {
	if m == nil {
		return nil
	}
	var out []Match
	for _, loc := range m.re.FindAllStringIndex(text, -1) {
		end := loc[1]
		if end == loc[0] {
			end++
		}
		out = append(out, Match{Line: n, Start: loc[0], End: end})
	}
	return out
}

// Scan returns the matches of m in each of lines, ordered by line and then
// by start offset. Matches never span lines.
func (m *Matcher) Scan(lines []string) []Match {
	var out []Match
	for i, ln := range lines {
		out = append(out, m.Line(i, ln)...)
	}
	return out
}

// ByLine groups matches by line. Within a line the order of ms is kept.
func ByLine(ms []Match) map[int][]Match {
	out := make(map[int][]Match)
	for _, m := range ms {
		out[m.Line] = append(out[m.Line], m)
	}
	return out
}

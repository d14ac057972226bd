// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package highlight_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jinspect/highlight"
	"github.com/creachadair/jinspect/search"
	"github.com/google/go-cmp/cmp"
)

// kinds renders tokens as kind:text pairs with surrounding space trimmed,
// skipping blank plain tokens.
func kinds(toks []highlight.Token) []string {
	var out []string
	for _, tok := range toks {
		text := strings.TrimSpace(tok.Text)
		if tok.Kind == highlight.Plain && text == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%v:%s", tok.Kind, text))
	}
	return out
}

func TestLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`{`, []string{"punct:{"}},
		{`  "a": [`, []string{`key:"a"`, "punct::", "punct:["}},
		{`    "x\"y" ,`, []string{`string:"x\"y"`, "punct:,"}},
		{`  "k" : -1.5e+3,`, []string{`key:"k"`, "punct::", "number:-1.5e+3", "punct:,"}},
		{`  true, false, null`, []string{"bool:true", "punct:,", "bool:false", "punct:,", "null:null"}},
		{`  "[Circular]"`, []string{`string:"[Circular]"`}},
		{`  {…},`, []string{"punct:{", "plain:…", "punct:}", "punct:,"}},
		{`  nothing 12x`, []string{"plain:nothing", "number:12", "plain:x"}},
		{`  "open`, []string{`string:"open`}},
		{`-`, []string{"plain:-"}},
		{``, nil},
	}
	for _, tc := range tests {
		toks := highlight.Line(tc.line)
		if diff := cmp.Diff(tc.want, kinds(toks)); diff != "" {
			t.Errorf("Line %q (-want, +got):\n%s", tc.line, diff)
		}

		// Tokens cover the line exactly.
		var sb strings.Builder
		pos := 0
		for _, tok := range toks {
			if tok.Start != pos || tok.Text != tc.line[tok.Start:tok.End] {
				t.Errorf("Line %q: token %+v does not continue at %d", tc.line, tok, pos)
			}
			sb.WriteString(tok.Text)
			pos = tok.End
		}
		if sb.String() != tc.line {
			t.Errorf("Line %q: tokens cover %q", tc.line, sb.String())
		}
	}
}

func TestDecorate(t *testing.T) {
	const line = `  "name": "nameless",`
	toks := highlight.Line(line)
	ms := []search.Match{{Line: 0, Start: 3, End: 7}, {Line: 0, Start: 11, End: 15}}
	segs := highlight.Decorate(toks, ms, 11)

	var text strings.Builder
	var marked []string
	for _, s := range segs {
		text.WriteString(s.Text)
		if s.Match {
			marked = append(marked, fmt.Sprintf("%v:%s:%v", s.Kind, s.Text, s.Active))
		}
	}
	if text.String() != line {
		t.Errorf("Segments cover %q, want %q", text.String(), line)
	}
	want := []string{"key:name:false", "string:name:true"}
	if diff := cmp.Diff(want, marked); diff != "" {
		t.Errorf("Marked segments (-want, +got):\n%s", diff)
	}

	// A match spanning tokens is split among them.
	segs = highlight.Decorate(highlight.Line(`"a":1`), []search.Match{{Start: 2, End: 5}}, -1)
	var got []string
	for _, s := range segs {
		got = append(got, fmt.Sprintf("%v:%s:%v", s.Kind, s.Text, s.Match))
	}
	if diff := cmp.Diff([]string{`key:"a:false`, `key:":true`, "punct::true", "number:1:true"}, got); diff != "" {
		t.Errorf("Spanning match (-want, +got):\n%s", diff)
	}
}

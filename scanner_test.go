// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinspect_test

import (
	"testing"

	"github.com/creachadair/jinspect"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jinspect.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jinspect.Token{jinspect.True, jinspect.False, jinspect.Null}},

		// Punctuation
		{"{ [ ] } , :", []jinspect.Token{
			jinspect.LBrace, jinspect.LSquare, jinspect.RSquare, jinspect.RBrace, jinspect.Comma, jinspect.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jinspect.Token{jinspect.String, jinspect.String, jinspect.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jinspect.Token{jinspect.String}},
		{`"\u0000\u01fc\uAA9c"`, []jinspect.Token{jinspect.String}},
		{`"héllo, 世界"`, []jinspect.Token{jinspect.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jinspect.Token{
			jinspect.Integer, jinspect.Integer, jinspect.Integer,
			jinspect.Number, jinspect.Number, jinspect.Number, jinspect.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jinspect.Token{
			jinspect.LBrace, jinspect.True, jinspect.Comma, jinspect.String, jinspect.Colon,
			jinspect.Integer, jinspect.Null, jinspect.LSquare, jinspect.RSquare, jinspect.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jinspect.Token{
			jinspect.LBrace,
			jinspect.String, jinspect.Colon, jinspect.True, jinspect.Comma,
			jinspect.String, jinspect.Colon,
			jinspect.LSquare,
			jinspect.Null, jinspect.Comma, jinspect.Integer, jinspect.Comma, jinspect.Number,
			jinspect.RSquare,
			jinspect.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jinspect.Token{
			jinspect.String, jinspect.Comma, jinspect.Integer, jinspect.Comma, jinspect.True,
			jinspect.False, jinspect.LSquare, jinspect.String, jinspect.RSquare,
		}},
	}

	for _, test := range tests {
		var got []jinspect.Token
		s := jinspect.NewScanner(test.input)
		for s.Next() {
			got = append(got, s.Token())
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input  string
		ntok   int // tokens before the error
		offset int // offset of the error
	}{
		{`tru`, 0, 0},
		{`nil`, 0, 0},
		{`"abc`, 0, 4},
		{`"a\qb"`, 0, 3},
		{`"\u12G4"`, 0, 5},
		{"\"a\tb\"", 0, 2},
		{`[1, 01]`, 3, 6},
		{`-`, 0, 1},
		{`1.`, 0, 2},
		{`1e+`, 0, 3},
		{`[1] @`, 3, 4},
		{"\"\xff\"", 0, 1},
	}
	for _, test := range tests {
		s := jinspect.NewScanner(test.input)
		var n int
		for s.Next() {
			n++
		}
		if s.Err() == nil {
			t.Errorf("Input %#q: got no error, want one", test.input)
			continue
		}
		t.Logf("Input %#q: got expected error: %v", test.input, s.Err())
		if n != test.ntok {
			t.Errorf("Input %#q: got %d tokens before the error, want %d", test.input, n, test.ntok)
		}
		if got := s.Offset(); got != test.offset {
			t.Errorf("Input %#q: error offset is %d, want %d", test.input, got, test.offset)
		}
		if s.Token() != jinspect.Invalid {
			t.Errorf("Input %#q: token after error is %v, want invalid", test.input, s.Token())
		}
	}
}

func TestScannerText(t *testing.T) {
	mustScan := func(t *testing.T, input string, want jinspect.Token) *jinspect.Scanner {
		t.Helper()
		s := jinspect.NewScanner(input)
		if !s.Next() {
			t.Fatalf("Next failed: %v", s.Err())
		} else if s.Token() != want {
			t.Fatalf("Next token: got %v, want %v", s.Token(), want)
		}
		return s
	}

	t.Run("Integer", func(t *testing.T) {
		if got := mustScan(t, `  -15 `, jinspect.Integer).Text(); got != "-15" {
			t.Errorf("Text: got %q, want -15", got)
		}
	})
	t.Run("Number", func(t *testing.T) {
		if got := mustScan(t, `3.25e-5`, jinspect.Number).Text(); got != "3.25e-5" {
			t.Errorf("Text: got %q, want 3.25e-5", got)
		}
	})
	t.Run("Constants", func(t *testing.T) {
		mustScan(t, `true`, jinspect.True)
		mustScan(t, `false`, jinspect.False)
		mustScan(t, `null`, jinspect.Null)
	})
	t.Run("String", func(t *testing.T) {
		const wantText = `"a\tb\u0020c\n"` // as written, with quotes
		const wantDec = "a\tb c\n"         // with escapes undone
		s := mustScan(t, `"a\tb\u0020c\n"`, jinspect.String)
		text := s.Text()
		if text != wantText {
			t.Errorf("Text: got %#q, want %#q", text, wantText)
		}
		if u, err := jinspect.Unquote(text); err != nil {
			t.Errorf("Unquote failed: %v", err)
		} else if u != wantDec {
			t.Errorf("Unquote: got %#q, want %#q", u, wantDec)
		}
	})
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
	}
	for _, test := range tests {
		got := jinspect.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok         jinspect.Token
		Pos, End    int
		First, Last string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{
			{jinspect.LBrace, 0, 1, "1:1", "1:2"},
			{jinspect.RBrace, 2, 3, "1:3", "1:4"},
		}},
		{"true\n false\n", []tokPos{
			{jinspect.True, 0, 4, "1:1", "1:5"},
			{jinspect.False, 6, 11, "2:2", "2:7"},
		}},
		{"[1,\r\n  \"ab\"\n]", []tokPos{
			{jinspect.LSquare, 0, 1, "1:1", "1:2"},
			{jinspect.Integer, 1, 2, "1:2", "1:3"},
			{jinspect.Comma, 2, 3, "1:3", "1:4"},
			{jinspect.String, 7, 11, "2:3", "2:7"},
			{jinspect.RSquare, 12, 13, "3:1", "3:2"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jinspect.NewScanner(tc.input)
		for s.Next() {
			loc := s.Location()
			got = append(got, tokPos{s.Token(), loc.Pos, loc.End, loc.First.String(), loc.Last.String()})
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                        // missing quotes
		{`"missing quote`, ``, true},          // missing quotes
		{`missing quote"`, ``, true},          // missing quotes
		{`""`, ``, false},                     // ok
		{`"ok go"`, "ok go", false},           // ok
		{`"abc\ndef"`, "abc\ndef", false},     // C escapes
		{`"\tabc\n"`, "\tabc\n", false},       // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a \u0026 b"`, "a & b", false},      // short Unicode escape
		{`"\u"`, ``, true},                    // incomplete Unicode escape
		{`"\u00"`, ``, true},                  // incomplete Unicode escape
		{`"\u00x9"`, "\ufffd", false},         // invalid Unicode escape
		{`"\u019 "`, "\ufffd", false},         // invalid Unicode escape
		{`"a\"b"`, `a"b`, false},              // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},       // ok
	}

	for _, test := range tests {
		got, err := jinspect.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if got != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

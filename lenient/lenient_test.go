// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package lenient_test

import (
	"testing"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/lenient"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{``, ``},
		{`{"a":1}`, `{"a":1}`},
		{`{"a":1,}`, `{"a":1 }`},
		{"[1, 2,\n]", "[1, 2 \n]"},
		{`[1,,]`, `[1, ]`},
		{`{"a": "x,}"}`, `{"a": "x,}"}`},
		{`{"a//b": "/*c*/"}`, `{"a//b": "/*c*/"}`},
		{"// head\n1", "       \n1"},
		{"[1 /* two\nlines */, 2]", "[1       \n        , 2]"},
		{`["\"", 3,]`, `["\"", 3 ]`},
		{"1 // tail\r\n", "1        \r\n"},
		{`/* open`, `       `},
	}
	for _, tc := range tests {
		got := lenient.Normalize(tc.input)
		if got != tc.want {
			t.Errorf("Normalize %q:\ngot  %q\nwant %q", tc.input, got, tc.want)
		}
		if len(got) != len(tc.input) {
			t.Errorf("Normalize %q: length changed from %d to %d", tc.input, len(tc.input), len(got))
		}
	}
}

func TestParse(t *testing.T) {
	const input = `{
  // settings
  "name": "demo", /* inline */
  "tags": ["a", "b",],
}`
	if _, err := ast.Parse(input); err == nil {
		t.Fatal("Strict parse of commented input succeeded")
	}
	v, err := ast.Parse(lenient.Normalize(input))
	if err != nil {
		t.Fatalf("Parse after Normalize: %v", err)
	}
	if got, want := v.JSON(), `{"name":"demo","tags":["a","b"]}`; got != want {
		t.Errorf("Value: got %s, want %s", got, want)
	}
}

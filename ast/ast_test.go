// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func mustParse(t *testing.T, src string) ast.Value {
	t.Helper()
	v, err := ast.Parse(src)
	if err != nil {
		t.Fatalf("Parse %q: unexpected error: %v", src, err)
	}
	return v
}

func TestObject(t *testing.T) {
	obj := mustParse(t, `{"a": 1, "b": 2, "a": 3, "c": null}`).(ast.Object)

	if got := obj.Len(); got != 4 {
		t.Errorf("Len: got %d, want 4", got)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, obj.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
	if m := obj.Find("a"); m == nil {
		t.Error(`Find "a": not found`)
	} else if got := m.Value.JSON(); got != "3" {
		t.Errorf(`Find "a": got %s, want 3 (last occurrence)`, got)
	}
	if m := obj.Find("nonesuch"); m != nil {
		t.Errorf(`Find "nonesuch": got %v, want nil`, m)
	}
	if got, want := obj.JSON(), `{"a":1,"b":2,"a":3,"c":null}`; got != want {
		t.Errorf("JSON: got %s, want %s", got, want)
	}
}

func TestJSON(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		{ast.Null, "null"},
		{ast.Bool(true), "true"},
		{ast.String("a\"b\n"), `"a\"b\n"`},
		{ast.Int(-25), "-25"},
		{ast.Float(0.5), "0.5"},
		{ast.Float(math.Inf(1)), "null"},
		{ast.Float(math.NaN()), "null"},
		{ast.Array{}, "[]"},
		{ast.Object{}, "{}"},
		{ast.Array{ast.Int(1), ast.Array{ast.Null}}, "[1,[null]]"},
		{ast.Object{ast.Field("k", "v"), ast.Field("n", 2), ast.Field("z", nil)}, `{"k":"v","n":2,"z":null}`},
	}
	for _, tc := range tests {
		if got := tc.input.JSON(); got != tc.want {
			t.Errorf("JSON %#v: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input  string
		isInt  bool
		finite bool
		float  float64
	}{
		{"0", true, true, 0},
		{"-17", true, true, -17},
		{"12345678901234567890123", true, true, 12345678901234567890123},
		{"2.5", false, true, 2.5},
		{"1e3", false, true, 1000},
		{"1e400", false, true, math.Inf(1)},
	}
	for _, tc := range tests {
		n := mustParse(t, tc.input).(ast.Number)
		if got := n.Text(); got != tc.input {
			t.Errorf("Text: got %q, want %q", got, tc.input)
		}
		if got := n.IsInt(); got != tc.isInt {
			t.Errorf("IsInt(%s): got %v, want %v", tc.input, got, tc.isInt)
		}
		if got := n.IsFinite(); got != tc.finite {
			t.Errorf("IsFinite(%s): got %v, want %v", tc.input, got, tc.finite)
		}
		if got := n.Float(); got != tc.float {
			t.Errorf("Float(%s): got %v, want %v", tc.input, got, tc.float)
		}
		if got := n.JSON(); got != tc.input {
			t.Errorf("JSON: got %s, want %s", got, tc.input)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{`null`, `null`, true},
		{`1`, `1.0`, true},
		{`1`, `2`, false},
		{`100`, `1e2`, true},
		{`"1"`, `1`, false},
		{`[1, 2]`, `[1, 2]`, true},
		{`[1, 2]`, `[2, 1]`, false},
		{`[]`, `{}`, false},
		{`{"a": 1, "b": [true]}`, `{"b": [true], "a": 1}`, true},
		{`{"a": 1}`, `{"a": 1, "b": 2}`, false},
		{`{"a": 1, "a": 2}`, `{"a": 2}`, true},
		{`{"a": {"b": null}}`, `{"a": {"b": false}}`, false},
	}
	for _, tc := range tests {
		a, b := mustParse(t, tc.a), mustParse(t, tc.b)
		if got := ast.Equal(a, b); got != tc.want {
			t.Errorf("Equal(%s, %s): got %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got := ast.Equal(b, a); got != tc.want {
			t.Errorf("Equal(%s, %s): got %v, want %v", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestSortKeys(t *testing.T) {
	v := mustParse(t, testJSON)
	got := ast.SortKeys(v).JSON()
	const want = `{"list":[{"x":1},{"x":2}],"o":["hi","yourself"],"xyz":{"d":true,"p":true,"q":false},"y":{"hello":"there"}}`
	if got != want {
		t.Errorf("SortKeys:\ngot  %s\nwant %s", got, want)
	}
	if !ast.Equal(v, ast.SortKeys(v)) {
		t.Error("SortKeys changed the value")
	}
}

func TestAny(t *testing.T) {
	v := mustParse(t, testJSON)

	// Round trip through encoding/json.
	data, err := json.Marshal(ast.ToAny(v))
	if err != nil {
		t.Fatalf("Marshal: unexpected error: %v", err)
	}
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	back, err := ast.FromAny(raw)
	if err != nil {
		t.Fatalf("FromAny: unexpected error: %v", err)
	}
	if !ast.Equal(v, back) {
		t.Errorf("Round trip changed the value:\ngot  %s\nwant %s", back.JSON(), v.JSON())
	}

	if _, err := ast.FromAny(struct{}{}); err == nil {
		t.Error("FromAny(struct{}{}): got nil error, want error")
	}
	mtest.MustPanic(t, func() { ast.ToValue([]bool{true}) })
	mtest.MustPanic(t, func() { ast.ToValue(func() {}) })
}

func TestTypeName(t *testing.T) {
	v := mustParse(t, `[{}, [], "", 0, false, null]`).(ast.Array)
	var got []string
	for _, e := range v {
		got = append(got, ast.TypeName(e))
	}
	want := []string{"object", "array", "string", "number", "boolean", "null"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TypeName (-want, +got):\n%s", diff)
	}
}

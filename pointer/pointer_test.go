// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pointer_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/pointer"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  pointer.Pointer
	}{
		{"", nil},
		{"/", pointer.Pointer{""}},
		{"/a", pointer.Pointer{"a"}},
		{"/a/0/b", pointer.Pointer{"a", "0", "b"}},
		{"/a~1b/c~0d", pointer.Pointer{"a/b", "c~d"}},
		{"/~01", pointer.Pointer{"~1"}},
		{"//", pointer.Pointer{"", ""}},
	}
	for _, tc := range tests {
		got, err := pointer.Parse(tc.input)
		if err != nil {
			t.Errorf("Parse %q: unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Parse %q (-want, +got):\n%s", tc.input, diff)
		}
		if s := got.String(); s != tc.input {
			t.Errorf("String: got %q, want %q", s, tc.input)
		}
	}

	if p, err := pointer.Parse("a/b"); err == nil {
		t.Errorf("Parse a/b: got %v, want error", p)
	}
}

func TestBuild(t *testing.T) {
	if got, want := pointer.Key("", "a/b"), "/a~1b"; got != want {
		t.Errorf("Key: got %q, want %q", got, want)
	}
	if got, want := pointer.Index(pointer.Key("", "x"), 3), "/x/3"; got != want {
		t.Errorf("Index: got %q, want %q", got, want)
	}
	p, _ := pointer.Parse("/x/3")
	parent, last, ok := p.Parent()
	if !ok || parent.String() != "/x" || last != "3" {
		t.Errorf("Parent: got (%q, %q, %v), want (/x, 3, true)", parent.String(), last, ok)
	}
	if _, _, ok := pointer.Pointer(nil).Parent(); ok {
		t.Error("Parent of root: got true, want false")
	}
}

func TestGet(t *testing.T) {
	root, err := ast.Parse(`{"a": [10, {"b/c": true, "": 5}], "~": null}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tests := []struct {
		ptr, want string
	}{
		{"", root.JSON()},
		{"/a", `[10,{"b/c":true,"":5}]`},
		{"/a/0", "10"},
		{"/a/1/b~1c", "true"},
		{"/a/1/", "5"},
		{"/~0", "null"},
	}
	for _, tc := range tests {
		v, err := pointer.Get(root, tc.ptr)
		if err != nil {
			t.Errorf("Get %q: unexpected error: %v", tc.ptr, err)
		} else if got := v.JSON(); got != tc.want {
			t.Errorf("Get %q: got %s, want %s", tc.ptr, got, tc.want)
		}
	}

	for _, bad := range []string{"/b", "/a/2", "/a/-1", "/a/01x", "/a/0/x", "/a/-"} {
		v, err := pointer.Get(root, bad)
		if !errors.Is(err, pointer.ErrNotFound) {
			t.Errorf("Get %q: got (%v, %v), want ErrNotFound", bad, v, err)
		}
	}
}

func TestArrayIndex(t *testing.T) {
	tests := []struct {
		tok  string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"17", 17, true},
		{"007", 7, true},
		{"", 0, false},
		{"-1", 0, false},
		{"1e3", 0, false},
		{"-", 0, false},
	}
	for _, tc := range tests {
		got, ok := pointer.ArrayIndex(tc.tok)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ArrayIndex(%q): got (%d, %v), want (%d, %v)", tc.tok, got, ok, tc.want, tc.ok)
		}
	}
}

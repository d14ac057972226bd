// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package pointer implements RFC 6901 JSON Pointers over ast values.
//
// A pointer is a string of zero or more reference tokens, each introduced by
// a slash. Within a token, "~1" denotes "/" and "~0" denotes "~". The empty
// pointer "" refers to the whole document.
package pointer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jinspect/ast"
)

// ErrNotFound is reported by Get when a pointer does not resolve.
var ErrNotFound = errors.New("pointer not found")

// A Pointer is a parsed JSON Pointer, a sequence of unescaped tokens.
type Pointer []string

// Parse parses s as a JSON Pointer.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("invalid pointer %q: must begin with /", s)
	}
	parts := strings.Split(s[1:], "/")
	for i, p := range parts {
		parts[i] = Unescape(p)
	}
	return Pointer(parts), nil
}

// String encodes p in its RFC 6901 string form.
func (p Pointer) String() string {
	var sb strings.Builder
	for _, tok := range p {
		sb.WriteByte('/')
		sb.WriteString(Escape(tok))
	}
	return sb.String()
}

// Parent returns the pointer to the container of p, and the last token of
// p. It returns false if p is the root.
func (p Pointer) Parent() (Pointer, string, bool) {
	if len(p) == 0 {
		return nil, "", false
	}
	return p[:len(p)-1], p[len(p)-1], true
}

var (
	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Escape escapes a single reference token.
func Escape(tok string) string { return escaper.Replace(tok) }

// Unescape decodes a single reference token.
func Unescape(tok string) string { return unescaper.Replace(tok) }

// Key returns the pointer formed by appending object key to base.
func Key(base, key string) string { return base + "/" + Escape(key) }

// Index returns the pointer formed by appending array index i to base.
func Index(base string, i int) string { return base + "/" + strconv.Itoa(i) }

// Get resolves ptr against root. If ptr does not resolve, Get reports an
// error wrapping ErrNotFound.
func Get(root ast.Value, ptr string) (ast.Value, error) {
	p, err := Parse(ptr)
	if err != nil {
		return nil, err
	}
	return p.Get(root)
}

// Get resolves p against root.
func (p Pointer) Get(root ast.Value) (ast.Value, error) {
	cur := root
	for i, tok := range p {
		next, ok := Step(cur, tok)
		if !ok {
			return nil, fmt.Errorf("%w: %q at %q", ErrNotFound, tok, p[:i].String())
		}
		cur = next
	}
	return cur, nil
}

// Step resolves a single reference token against v. For arrays the token
// must consist only of decimal digits and be in range.
func Step(v ast.Value, tok string) (ast.Value, bool) {
	switch t := v.(type) {
	case ast.Object:
		if m := t.Find(tok); m != nil {
			return m.Value, true
		}
	case ast.Array:
		if i, ok := ArrayIndex(tok); ok && i < len(t) {
			return t[i], true
		}
	}
	return nil, false
}

// ArrayIndex reports whether tok is an all-digit array index, and if so its
// value.
func ArrayIndex(tok string) (int, bool) {
	if tok == "" || strings.TrimLeft(tok, "0123456789") != "" {
		return 0, false
	}
	i, err := strconv.Atoi(tok)
	return i, err == nil
}

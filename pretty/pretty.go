// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package pretty renders JSON values as indented, line-oriented text and
// records the output line at which each value begins.
//
// The layout matches the conventional indented encoding: one member or
// element per line, nested values indented by a fixed width per level,
// empty objects and arrays written as {} and [] on a single line.
package pretty

import (
	"strings"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/pointer"
	"github.com/creachadair/mds/mapset"
)

// Circular is the token rendered in place of a value that contains itself.
const Circular = `"[Circular]"`

// A Result is the output of pretty-printing a value.
type Result struct {
	// Text is the rendered value. It does not end with a newline.
	Text string

	// Index maps the JSON Pointer of every object member and array element
	// to the 0-based line of Text where the rendering of its value begins.
	// The root is not included.
	Index map[string]int
}

// Lines returns the lines of r.Text.
func (r Result) Lines() []string { return strings.Split(r.Text, "\n") }

// Line returns the 0-based output line of the value at ptr. The root pointer
// "" is always at line 0. The pointer "/" denotes the member with the empty
// key if there is one, and otherwise the root, matching the paths reported
// by schema validation.
func (r Result) Line(ptr string) (int, bool) {
	if ptr == "" {
		return 0, true
	}
	n, ok := r.Index[ptr]
	if !ok && ptr == "/" {
		return 0, true
	}
	return n, ok
}

// Print renders v with the given indent width using default settings.
func Print(v ast.Value, indent int) Result {
	return Formatter{Indent: indent}.Print(v)
}

// A Formatter carries the settings for pretty-printing values.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the number of spaces per nesting level (default 2).
	Indent int
}

func (f Formatter) indent() string {
	if f.Indent <= 0 {
		return "  "
	}
	return strings.Repeat(" ", f.Indent)
}

// Print renders v and builds its pointer index.
func (f Formatter) Print(v ast.Value) Result {
	p := &printer{
		unit:  f.indent(),
		index: make(map[string]int),
		stk:   mapset.New[any](),
	}
	p.formatValue(v, "", "")
	return Result{Text: p.buf.String(), Index: p.index}
}

type printer struct {
	buf   strings.Builder
	line  int
	unit  string
	index map[string]int
	stk   mapset.Set[any] // identities of the containers being printed
}

func (p *printer) write(s string) { p.buf.WriteString(s) }

func (p *printer) newline(indent string) {
	p.buf.WriteByte('\n')
	p.buf.WriteString(indent)
	p.line++
}

// identity returns a comparable token for the backing store of a non-empty
// container, or nil if v is not one.
func identity(v ast.Value) any {
	switch t := v.(type) {
	case ast.Object:
		if len(t) != 0 {
			return &t[0]
		}
	case ast.Array:
		if len(t) != 0 {
			return &t[0]
		}
	}
	return nil
}

// formatValue writes v at the current position, where indent is the
// indentation of the line on which v begins and path is its pointer.
func (p *printer) formatValue(v ast.Value, indent, path string) {
	if id := identity(v); id != nil {
		if p.stk.Has(id) {
			p.write(Circular)
			return
		}
		p.stk.Add(id)
		defer p.stk.Remove(id)
	}

	switch t := v.(type) {
	case ast.Object:
		p.formatObject(t, indent, path)
	case ast.Array:
		p.formatArray(t, indent, path)
	case nil:
		p.write("null")
	default:
		p.write(v.JSON())
	}
}

func (p *printer) formatObject(o ast.Object, indent, path string) {
	if len(o) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	mdent := indent + p.unit
	for i, m := range o {
		if i > 0 {
			p.write(",")
		}
		p.newline(mdent)
		mpath := pointer.Key(path, m.Key)
		p.index[mpath] = p.line
		p.write(ast.String(m.Key).JSON())
		p.write(": ")
		p.formatValue(m.Value, mdent, mpath)
	}
	p.newline(indent)
	p.write("}")
}

func (p *printer) formatArray(a ast.Array, indent, path string) {
	if len(a) == 0 {
		p.write("[]")
		return
	}
	p.write("[")
	adent := indent + p.unit
	for i, v := range a {
		if i > 0 {
			p.write(",")
		}
		p.newline(adent)
		epath := pointer.Index(path, i)
		p.index[epath] = p.line
		p.formatValue(v, adent, epath)
	}
	p.newline(indent)
	p.write("]")
}

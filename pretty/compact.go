// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pretty

import (
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/mds/mapset"
)

// Compact renders v without insignificant whitespace. Like Print, it writes
// Circular in place of a value that contains itself.
func Compact(v ast.Value) string {
	c := &compacter{stk: mapset.New[any]()}
	c.formatValue(v)
	return c.buf.String()
}

type compacter struct {
	buf strings.Builder
	stk mapset.Set[any]
}

func (c *compacter) formatValue(v ast.Value) {
	if id := identity(v); id != nil {
		if c.stk.Has(id) {
			c.buf.WriteString(Circular)
			return
		}
		c.stk.Add(id)
		defer c.stk.Remove(id)
	}
	switch t := v.(type) {
	case ast.Object:
		c.buf.WriteByte('{')
		for i, m := range t {
			if i > 0 {
				c.buf.WriteByte(',')
			}
			c.buf.WriteString(ast.String(m.Key).JSON())
			c.buf.WriteByte(':')
			c.formatValue(m.Value)
		}
		c.buf.WriteByte('}')
	case ast.Array:
		c.buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				c.buf.WriteByte(',')
			}
			c.formatValue(e)
		}
		c.buf.WriteByte(']')
	case nil:
		c.buf.WriteString("null")
	default:
		c.buf.WriteString(v.JSON())
	}
}

// Preview renders v compactly, truncated to at most n runes with a trailing
// ellipsis if it is longer.
func Preview(v ast.Value, n int) string {
	s := Compact(v)
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:max(n-1, 0)]) + "…"
}

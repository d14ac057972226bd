// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package search

// A Revealer makes a line visible, for example by expanding the folded
// regions that hide it. A *fold.View is a Revealer.
type Revealer interface {
	Reveal(line int)
}

// A Cursor cycles through an ordered list of matches.
type Cursor struct {
	matches []Match
	active  int // -1 before the first move
	reveal  Revealer
}

// NewCursor constructs a cursor over matches. If r != nil, each move calls
// r.Reveal with the line of the new active match before returning it.
func NewCursor(matches []Match, r Revealer) *Cursor {
	return &Cursor{matches: matches, active: -1, reveal: r}
}

// Len reports the number of matches.
func (c *Cursor) Len() int { return len(c.matches) }

// Matches returns the matches of c. The caller must not modify it.
func (c *Cursor) Matches() []Match { return c.matches }

// Index reports the position of the active match, or -1 if there is none.
func (c *Cursor) Index() int { return c.active }

// Active returns the active match, if any.
func (c *Cursor) Active() (Match, bool) {
	if c.active < 0 || c.active >= len(c.matches) {
		return Match{}, false
	}
	return c.matches[c.active], true
}

// Next advances to the following match, wrapping from the last to the
// first. From the initial state it selects the first match.
func (c *Cursor) Next() (Match, bool) {
	if c.active < 0 {
		return c.moveTo(0)
	}
	return c.move(1)
}

// Prev moves to the preceding match, wrapping from the first to the last.
// From the initial state it selects the last match.
func (c *Cursor) Prev() (Match, bool) {
	if c.active < 0 {
		return c.moveTo(len(c.matches) - 1)
	}
	return c.move(-1)
}

func (c *Cursor) move(delta int) (Match, bool) {
	n := len(c.matches)
	if n == 0 {
		return Match{}, false
	}
	return c.moveTo(((c.active+delta)%n + n) % n)
}

func (c *Cursor) moveTo(i int) (Match, bool) {
	if i < 0 || i >= len(c.matches) {
		return Match{}, false
	}
	c.active = i
	m := c.matches[i]
	if c.reveal != nil {
		c.reveal.Reveal(m.Line)
	}
	return m, true
}

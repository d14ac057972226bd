// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package analysis

import (
	"sync/atomic"

	"github.com/creachadair/jinspect/ast"
)

// A Cell holds the most recent successfully parsed value of a session,
// tagged with a version that increases on every store. A Cell has a single
// writer (the Worker) and any number of readers; a zero Cell is empty and
// ready for use.
type Cell struct {
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	v   ast.Value
	ver uint64
}

// Store replaces the value of c and returns its new version. Store must not
// be called concurrently with itself.
func (c *Cell) Store(v ast.Value) uint64 {
	var ver uint64 = 1
	if old := c.snap.Load(); old != nil {
		ver = old.ver + 1
	}
	c.snap.Store(&snapshot{v: v, ver: ver})
	return ver
}

// Load returns the current value of c and its version. An empty cell
// returns nil, 0.
func (c *Cell) Load() (ast.Value, uint64) {
	if s := c.snap.Load(); s != nil {
		return s.v, s.ver
	}
	return nil, 0
}

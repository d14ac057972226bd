// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package diff computes structural differences between JSON values as a
// sequence of add, remove, and replace operations addressed by JSON Pointer.
//
// Arrays are compared position by position with no attempt at alignment, so
// an element inserted in the middle of an array is reported as a replacement
// of every element after it followed by an addition at the end.
package diff

import (
	"encoding/json"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/pointer"
)

// Kind is the kind of a diff operation.
type Kind string

// Constants defining the kinds of operations.
const (
	Add     Kind = "add"
	Remove  Kind = "remove"
	Replace Kind = "replace"
)

// An Op is a single edit. Value is nil for Remove.
type Op struct {
	Op    Kind
	Path  string // RFC 6901; the root is ""
	Value ast.Value
}

type opJSON struct {
	Op    Kind            `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes o in the shape of a JSON Patch operation.
func (o Op) MarshalJSON() ([]byte, error) {
	out := opJSON{Op: o.Op, Path: o.Path}
	if o.Value != nil {
		out.Value = json.RawMessage(o.Value.JSON())
	}
	return json.Marshal(out)
}

// MarshalYAML encodes o for gopkg.in/yaml.v3.
func (o Op) MarshalYAML() (any, error) {
	type opYAML struct {
		Op    Kind   `yaml:"op"`
		Path  string `yaml:"path"`
		Value any    `yaml:"value,omitempty"`
	}
	out := opYAML{Op: o.Op, Path: o.Path}
	if o.Value != nil {
		out.Value = ast.ToAny(o.Value)
	}
	return out, nil
}

// Diff returns the operations that transform a into b. Equal values yield
// no operations.
//
// Operations follow the order of a: object members in their parsed order,
// with keys found only in b after those of a, and array elements in index
// order. Elements removed from the tail of an array are listed from the
// highest index down, so that the operations can be applied in sequence.
func Diff(a, b ast.Value) []Op {
	var d differ
	d.value("", a, b)
	return d.ops
}

type differ struct {
	ops []Op
}

func (d *differ) push(op Kind, path string, v ast.Value) {
	d.ops = append(d.ops, Op{Op: op, Path: path, Value: v})
}

func (d *differ) value(path string, a, b ast.Value) {
	if ast.Equal(a, b) {
		return
	}
	switch x := a.(type) {
	case ast.Object:
		if y, ok := b.(ast.Object); ok {
			d.object(path, x, y)
			return
		}
	case ast.Array:
		if y, ok := b.(ast.Array); ok {
			d.array(path, x, y)
			return
		}
	}
	d.push(Replace, path, b)
}

func (d *differ) object(path string, a, b ast.Object) {
	inA := make(map[string]bool, len(a))
	for _, key := range a.Keys() {
		inA[key] = true
		kpath := pointer.Key(path, key)
		if bm := b.Find(key); bm == nil {
			d.push(Remove, kpath, nil)
		} else {
			d.value(kpath, a.Find(key).Value, bm.Value)
		}
	}
	for _, key := range b.Keys() {
		if !inA[key] {
			d.push(Add, pointer.Key(path, key), b.Find(key).Value)
		}
	}
}

func (d *differ) array(path string, a, b ast.Array) {
	common := min(len(a), len(b))
	for i := range common {
		d.value(pointer.Index(path, i), a[i], b[i])
	}
	for i := common; i < len(b); i++ {
		d.push(Add, pointer.Index(path, i), b[i])
	}
	for i := len(a) - 1; i >= common; i-- {
		d.push(Remove, pointer.Index(path, i), nil)
	}
}

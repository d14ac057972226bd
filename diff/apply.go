// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package diff

import (
	"fmt"
	"slices"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/pointer"
)

// Apply applies ops in sequence to root and returns the resulting value.
// The input is not modified; unchanged subtrees are shared with the result.
//
// An Add to an array inserts before the given index, or appends if the
// index equals the length of the array or is "-". An Add to an object whose
// key already exists behaves as Replace.
func Apply(root ast.Value, ops []Op) (ast.Value, error) {
	cur := root
	for i, op := range ops {
		p, err := pointer.Parse(op.Path)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		next, err := apply(cur, p, op)
		if err != nil {
			return nil, fmt.Errorf("op %d (%s %q): %w", i, op.Op, op.Path, err)
		}
		cur = next
	}
	return cur, nil
}

func apply(v ast.Value, p pointer.Pointer, op Op) (ast.Value, error) {
	if len(p) == 0 {
		if op.Op == Remove {
			return nil, fmt.Errorf("cannot remove the root")
		}
		return op.Value, nil
	}
	tok, rest := p[0], p[1:]
	if len(rest) != 0 {
		child, ok := pointer.Step(v, tok)
		if !ok {
			return nil, fmt.Errorf("%w: %q", pointer.ErrNotFound, tok)
		}
		nc, err := apply(child, rest, op)
		if err != nil {
			return nil, err
		}
		return setChild(v, tok, nc)
	}

	switch t := v.(type) {
	case ast.Object:
		return applyObject(t, tok, op)
	case ast.Array:
		return applyArray(t, tok, op)
	default:
		return nil, fmt.Errorf("cannot index %s with %q", ast.TypeName(v), tok)
	}
}

func applyObject(o ast.Object, key string, op Op) (ast.Value, error) {
	exists := o.Find(key) != nil
	switch op.Op {
	case Add, Replace:
		if !exists {
			if op.Op == Replace {
				return nil, fmt.Errorf("%w: key %q", pointer.ErrNotFound, key)
			}
			return append(slices.Clone(o), &ast.Member{Key: key, Value: op.Value}), nil
		}
		return setMember(o, key, op.Value), nil
	case Remove:
		if !exists {
			return nil, fmt.Errorf("%w: key %q", pointer.ErrNotFound, key)
		}
		out := make(ast.Object, 0, len(o)-1)
		for _, m := range o {
			if m.Key != key {
				out = append(out, m)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown op %q", op.Op)
	}
}

func applyArray(a ast.Array, tok string, op Op) (ast.Value, error) {
	if op.Op == Add && tok == "-" {
		return append(slices.Clone(a), op.Value), nil
	}
	i, ok := pointer.ArrayIndex(tok)
	if !ok {
		return nil, fmt.Errorf("invalid array index %q", tok)
	}
	switch op.Op {
	case Add:
		if i > len(a) {
			return nil, fmt.Errorf("index %d out of range (len %d)", i, len(a))
		}
		return slices.Insert(slices.Clone(a), i, op.Value), nil
	case Replace:
		if i >= len(a) {
			return nil, fmt.Errorf("index %d out of range (len %d)", i, len(a))
		}
		out := slices.Clone(a)
		out[i] = op.Value
		return out, nil
	case Remove:
		if i >= len(a) {
			return nil, fmt.Errorf("index %d out of range (len %d)", i, len(a))
		}
		return slices.Delete(slices.Clone(a), i, i+1), nil
	default:
		return nil, fmt.Errorf("unknown op %q", op.Op)
	}
}

// setChild returns a copy of container v with the child at tok replaced.
func setChild(v ast.Value, tok string, child ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Object:
		return setMember(t, tok, child), nil
	case ast.Array:
		i, _ := pointer.ArrayIndex(tok)
		out := slices.Clone(t)
		out[i] = child
		return out, nil
	default:
		return nil, fmt.Errorf("cannot index %s with %q", ast.TypeName(v), tok)
	}
}

// setMember returns a copy of o in which the last member with key has value
// v and any earlier duplicates of key are dropped.
func setMember(o ast.Object, key string, v ast.Value) ast.Object {
	last := -1
	for i, m := range o {
		if m.Key == key {
			last = i
		}
	}
	out := make(ast.Object, 0, len(o))
	for i, m := range o {
		switch {
		case i == last:
			out = append(out, &ast.Member{Key: key, Value: v})
		case m.Key != key:
			out = append(out, m)
		}
	}
	return out
}

// Invert returns operations that undo ops, given the value a they were
// computed from: applying Diff(a, b) to a and then Invert(a, Diff(a, b)) to
// the result yields a again.
func Invert(a ast.Value, ops []Op) ([]Op, error) {
	out := make([]Op, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		switch op.Op {
		case Add:
			out = append(out, Op{Op: Remove, Path: op.Path})
		case Remove, Replace:
			old, err := pointer.Get(a, op.Path)
			if err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
			kind := Replace
			if op.Op == Remove {
				kind = Add
			}
			out = append(out, Op{Op: kind, Path: op.Path, Value: old})
		default:
			return nil, fmt.Errorf("op %d: unknown op %q", i, op.Op)
		}
	}
	return out, nil
}

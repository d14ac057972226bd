// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package diff

import (
	"fmt"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/pointer"
)

// ParseOps decodes a list of operations from an array of objects in the
// shape produced by Op.MarshalJSON. Operations other than add, remove, and
// replace are rejected.
func ParseOps(v ast.Value) ([]Op, error) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, fmt.Errorf("operations must be an array, not %s", ast.TypeName(v))
	}
	ops := make([]Op, len(arr))
	for i, elt := range arr {
		obj, ok := elt.(ast.Object)
		if !ok {
			return nil, fmt.Errorf("operation %d: want object, got %s", i, ast.TypeName(elt))
		}
		kind, ok := stringField(obj, "op")
		if !ok {
			return nil, fmt.Errorf("operation %d: missing op", i)
		}
		path, ok := stringField(obj, "path")
		if !ok {
			return nil, fmt.Errorf("operation %d: missing path", i)
		} else if _, err := pointer.Parse(path); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		op := Op{Op: Kind(kind), Path: path}
		switch op.Op {
		case Add, Replace:
			m := obj.Find("value")
			if m == nil {
				return nil, fmt.Errorf("operation %d: %s requires a value", i, kind)
			}
			op.Value = m.Value
		case Remove:
		default:
			return nil, fmt.Errorf("operation %d: unsupported op %q", i, kind)
		}
		ops[i] = op
	}
	return ops, nil
}

func stringField(o ast.Object, key string) (string, bool) {
	if m := o.Find(key); m != nil {
		if s, ok := m.Value.(ast.String); ok {
			return string(s), true
		}
	}
	return "", false
}

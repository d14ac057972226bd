// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
)

// ToValue converts a string, int, float, bool, nil, or ast.Value into an
// ast.Value. It panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case bool:
		return Bool(t)
	case nil:
		return Null
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}

// FromAny converts a value of the shape produced by encoding/json (maps,
// slices, strings, float64 or json.Number, bools, and nil) into a Value.
// Object keys from a map are sorted, since Go maps have no order.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Object, 0, len(keys))
		for _, k := range keys {
			ev, err := FromAny(t[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out = append(out, &Member{Key: k, Value: ev})
		}
		return out, nil
	case []any:
		out := make(Array, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case json.Number:
		return Number{text: t.String()}, nil
	case string, float64, int, int64, bool, nil:
		return ToValue(t), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// ToAny converts v into the representation used by encoding/json, with
// numbers as json.Number. Duplicate object keys keep their last value.
func ToAny(v Value) any {
	switch t := v.(type) {
	case Object:
		out := make(map[string]any, len(t))
		for _, m := range t {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	case Array:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ToAny(e)
		}
		return out
	case String:
		return string(t)
	case Number:
		if !t.IsFinite() {
			return nil
		}
		return json.Number(t.text)
	case Bool:
		return bool(t)
	case NullType:
		return nil
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

// Equal reports whether a and b are deeply equal JSON values. Objects are
// equal if they have the same set of keys with equal values, regardless of
// order. Numbers are compared by value when both are finite float64 values,
// and by text otherwise.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Object:
		y, ok := b.(Object)
		if !ok {
			return false
		}
		xk, yk := x.Keys(), y.Keys()
		if len(xk) != len(yk) {
			return false
		}
		for _, k := range xk {
			ym := y.Find(k)
			if ym == nil || !Equal(x.Find(k).Value, ym.Value) {
				return false
			}
		}
		return true
	case Array:
		y, ok := b.(Array)
		return ok && slices.EqualFunc(x, y, Equal)
	case Number:
		y, ok := b.(Number)
		return ok && numberEqual(x, y)
	case String, Bool, NullType:
		return a == b
	default:
		return false
	}
}

func numberEqual(x, y Number) bool {
	if x.text == y.text {
		return true
	}
	fx, fy := x.Float(), y.Float()
	if math.IsInf(fx, 0) || math.IsInf(fy, 0) || math.IsNaN(fx) || math.IsNaN(fy) {
		return false
	}
	return fx == fy
}

// SortKeys returns a copy of v in which the members of every object are
// sorted by key. Arrays keep their order.
func SortKeys(v Value) Value {
	switch t := v.(type) {
	case Object:
		out := make(Object, len(t))
		for i, m := range t {
			out[i] = &Member{Key: m.Key, Value: SortKeys(m.Value)}
		}
		slices.SortStableFunc(out, func(a, b *Member) int { return strings.Compare(a.Key, b.Key) })
		return out
	case Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = SortKeys(e)
		}
		return out
	default:
		return v
	}
}

// TypeName returns the JSON type name of v: "object", "array", "string",
// "number", "boolean", or "null".
func TypeName(v Value) string {
	switch v.(type) {
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case NullType:
		return "null"
	default:
		return "unknown"
	}
}

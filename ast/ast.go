// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an immutable syntax tree for JSON values, and a parser
// that constructs syntax trees from JSON source.
//
// The concrete type of every Value is exactly one of Object, Array, String,
// Number, Bool, or NullType. Code that traverses values is expected to switch
// on these types exhaustively.
package ast

import (
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jinspect"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string

	isValue()
}

// An Object is a collection of key-value members, in the order they were
// parsed.
type Object []*Member

func (Object) isValue() {}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil. If the key occurs
// more than once, the last occurrence wins.
func (o Object) Find(key string) *Member {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i]
		}
	}
	return nil
}

// Keys returns the distinct keys of o in order of first appearance.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	seen := make(map[string]bool, len(o))
	for _, m := range o {
		if !seen[m.Key] {
			seen[m.Key] = true
			keys = append(keys, m.Key)
		}
	}
	return keys
}

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string // decoded key
	Value Value
}

// JSON returns the encoding of m as "key":value.
func (m *Member) JSON() string { return jinspect.Quote(m.Key) + ":" + m.Value.JSON() }

// Field constructs an object member with the given key and value.  The value
// must be a string, int, float, bool, nil, or ast.Value (see ToValue).
func Field(key string, value any) *Member { return &Member{Key: key, Value: ToValue(value)} }

// An Array is a sequence of values.
type Array []Value

func (Array) isValue() {}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A String is a decoded string value.
type String string

func (String) isValue() {}

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// JSON satisfies the Value interface.
func (s String) JSON() string { return jinspect.Quote(string(s)) }

// A Number is a numeric value. It retains the decimal text it was parsed
// from, so integers beyond the precision of a float64 are not rounded.
type Number struct{ text string }

func (Number) isValue() {}

// Int constructs a Number from an integer.
func Int(z int64) Number { return Number{text: strconv.FormatInt(z, 10)} }

// Float constructs a Number from a float64.
func Float(f float64) Number { return Number{text: strconv.FormatFloat(f, 'g', -1, 64)} }

// Text returns the decimal text of n.
func (n Number) Text() string { return n.text }

// Float returns n as a float64. Values too large to represent become ±Inf.
func (n Number) Float() float64 {
	v, _ := strconv.ParseFloat(n.text, 64)
	return v
}

// IsInt reports whether n was written without a fraction or exponent.
func (n Number) IsInt() bool { return !strings.ContainsAny(n.text, ".eE") && n.IsFinite() }

// IsFinite reports whether n denotes a finite value. A Number built by Float
// from NaN or an infinity is not finite and has no JSON representation.
func (n Number) IsFinite() bool {
	v, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		// Range errors for huge literals still denote finite JSON text.
		return n.text != "" && !strings.ContainsAny(n.text, "NnIi")
	}
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// JSON satisfies the Value interface. Non-finite numbers encode as null.
func (n Number) JSON() string {
	if !n.IsFinite() {
		return "null"
	}
	return n.text
}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) isValue() {}

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// NullType is the type of the Null constant.
type NullType struct{}

func (NullType) isValue() {}

// JSON satisfies the Value interface.
func (NullType) JSON() string { return "null" }

// Null represents the null constant.
var Null = NullType{}

// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"io"

	"github.com/creachadair/jinspect"
)

// Parse parses and returns a single JSON value from src. Only whitespace may
// follow the value. Syntax errors have concrete type *jinspect.SyntaxError.
func Parse(src string) (Value, error) {
	h := new(parseHandler)
	if err := jinspect.NewStream(src).Parse(h); err != nil {
		return nil, err
	}
	return h.root, nil
}

// ParseReader reads all of r and parses it as a single JSON value.
func ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// A parseHandler implements the jinspect.Handler interface to construct
// syntax trees for JSON values.
type parseHandler struct {
	stk  []frame
	root Value
}

// A frame is an incomplete object or array on the parse stack.
type frame struct {
	isObj bool
	obj   Object
	arr   Array
	key   string // key of the member being parsed, if isObj
}

// reduce adds a completed value to the container atop the stack, or records
// it as the root if the stack is empty.
func (h *parseHandler) reduce(v Value) {
	if len(h.stk) == 0 {
		h.root = v
		return
	}
	top := &h.stk[len(h.stk)-1]
	if top.isObj {
		top.obj = append(top.obj, &Member{Key: top.key, Value: v})
	} else {
		top.arr = append(top.arr, v)
	}
}

func (h *parseHandler) pop() frame {
	last := h.stk[len(h.stk)-1]
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) BeginObject(loc jinspect.Anchor) error {
	h.stk = append(h.stk, frame{isObj: true, obj: Object{}})
	return nil
}

func (h *parseHandler) EndObject(loc jinspect.Anchor) error {
	h.reduce(h.pop().obj)
	return nil
}

func (h *parseHandler) BeginArray(loc jinspect.Anchor) error {
	h.stk = append(h.stk, frame{arr: Array{}})
	return nil
}

func (h *parseHandler) EndArray(loc jinspect.Anchor) error {
	h.reduce(h.pop().arr)
	return nil
}

func (h *parseHandler) BeginMember(loc jinspect.Anchor) error {
	key, err := jinspect.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("invalid key at %v: %w", loc.Location().First, err)
	}
	h.stk[len(h.stk)-1].key = key
	return nil
}

func (h *parseHandler) EndMember(loc jinspect.Anchor) error { return nil }

func (h *parseHandler) Value(loc jinspect.Anchor) error {
	v, err := AnchorValue(loc)
	if err != nil {
		return err
	}
	h.reduce(v)
	return nil
}

// AnchorValue returns the scalar value of the token at loc.  It reports an
// error if the anchor does not denote a string, number, Boolean, or null.
func AnchorValue(loc jinspect.Anchor) (Value, error) {
	switch tok := loc.Token(); tok {
	case jinspect.String:
		s, err := jinspect.Unquote(loc.Text())
		if err != nil {
			return nil, fmt.Errorf("invalid string at %v: %w", loc.Location().First, err)
		}
		return String(s), nil
	case jinspect.Integer, jinspect.Number:
		return Number{text: loc.Text()}, nil
	case jinspect.True, jinspect.False:
		return Bool(tok == jinspect.True), nil
	case jinspect.Null:
		return Null, nil
	default:
		return nil, fmt.Errorf("unknown value %v", tok)
	}
}

package jpath

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/pointer"
)

// A Result is one node selected by an expression.
type Result struct {
	Pointer string    // RFC 6901 pointer to the node
	Value   ast.Value // the node itself
}

// Query parses the JSONPath expression text and evaluates it against root.
func Query(root ast.Value, text string) ([]Result, error) {
	e, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return e.Eval(root)
}

// Eval evaluates e against root and returns the selected nodes in document
// order. Steps that do not apply to a node (a name on an array, an index out
// of range) select nothing from it rather than failing. Eval reports an
// error only for a malformed filter or script.
func (e Expr) Eval(root ast.Value) ([]Result, error) {
	cur := []Result{{Pointer: "", Value: root}}
	for _, step := range e {
		var next []Result
		for _, r := range cur {
			out, err := step.apply(r, next)
			if err != nil {
				return nil, fmt.Errorf("step %v: %w", step.Op, err)
			}
			next = out
		}
		cur = next
	}
	return cur, nil
}

// Pointers returns the pointers of rs.
func Pointers(rs []Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Pointer
	}
	return out
}

// Values returns the values of rs.
func Values(rs []Result) []ast.Value {
	out := make([]ast.Value, len(rs))
	for i, r := range rs {
		out[i] = r.Value
	}
	return out
}

// apply appends to out the nodes selected by s from r.
func (s Step) apply(r Result, out []Result) ([]Result, error) {
	switch s.Op {
	case Child:
		if s.Wildcard() {
			return children(r, out), nil
		}
		return member(r, s.Name, out), nil

	case Descend:
		return descend(r, out), nil

	case Index:
		arr, ok := r.Value.(ast.Array)
		if !ok {
			return out, nil
		}
		for _, n := range s.Indexes {
			if n < 0 {
				n += len(arr)
			}
			if n >= 0 && n < len(arr) {
				out = append(out, Result{Pointer: pointer.Index(r.Pointer, n), Value: arr[n]})
			}
		}
		return out, nil

	case Slice:
		arr, ok := r.Value.(ast.Array)
		if !ok {
			return out, nil
		}
		lo, hi := sliceBounds(s.Lo, s.Hi, len(arr))
		for i := lo; i < hi; i++ {
			out = append(out, Result{Pointer: pointer.Index(r.Pointer, i), Value: arr[i]})
		}
		return out, nil

	case Filter:
		f, err := parseFilter(s.Text)
		if err != nil {
			return nil, err
		}
		for _, c := range children(r, nil) {
			if f.test(c.Value) {
				out = append(out, c)
			}
		}
		return out, nil

	case Script:
		key, err := evalScript(s.Text, r.Value)
		if err != nil {
			return nil, err
		}
		if arr, ok := r.Value.(ast.Array); ok {
			if n, err := strconv.Atoi(key); err == nil {
				return Step{Op: Index, Indexes: []int{n}}.apply(Result{Pointer: r.Pointer, Value: arr}, out)
			}
			return out, nil
		}
		return member(r, key, out), nil
	}
	return nil, fmt.Errorf("invalid operator %v", s.Op)
}

func member(r Result, name string, out []Result) []Result {
	if obj, ok := r.Value.(ast.Object); ok {
		if m := obj.Find(name); m != nil {
			out = append(out, Result{Pointer: pointer.Key(r.Pointer, name), Value: m.Value})
		}
	}
	return out
}

// children appends the members or elements of r in order. Duplicate object
// keys are reported once, with the value that Find would return.
func children(r Result, out []Result) []Result {
	switch t := r.Value.(type) {
	case ast.Object:
		for _, key := range t.Keys() {
			out = append(out, Result{Pointer: pointer.Key(r.Pointer, key), Value: t.Find(key).Value})
		}
	case ast.Array:
		for i, e := range t {
			out = append(out, Result{Pointer: pointer.Index(r.Pointer, i), Value: e})
		}
	}
	return out
}

// descend appends r and all its descendants in pre-order.
func descend(r Result, out []Result) []Result {
	stk := []Result{r}
	for len(stk) != 0 {
		cur := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		out = append(out, cur)

		kids := children(cur, nil)
		for i := len(kids) - 1; i >= 0; i-- {
			stk = append(stk, kids[i])
		}
	}
	return out
}

func sliceBounds(lo, hi *int, n int) (int, int) {
	clamp := func(p *int, def int) int {
		if p == nil {
			return def
		}
		v := *p
		if v < 0 {
			v += n
		}
		return min(max(v, 0), n)
	}
	a, b := clamp(lo, 0), clamp(hi, n)
	return a, max(a, b)
}

var scriptRE = regexp.MustCompile(`^\s*@\.length\s*(?:([-+])\s*(\d+))?\s*$`)

// evalScript evaluates a script selector. The supported forms are
// @.length, @.length-N, and @.length+N, and a quoted or bare key.
func evalScript(text string, v ast.Value) (string, error) {
	if m := scriptRE.FindStringSubmatch(text); m != nil {
		n, ok := length(v)
		if !ok {
			return "", fmt.Errorf("%s has no length", ast.TypeName(v))
		}
		if m[1] != "" {
			d, _ := strconv.Atoi(m[2])
			if m[1] == "-" {
				d = -d
			}
			n += d
		}
		return strconv.Itoa(n), nil
	}
	lit, err := parseFilter(text)
	if err != nil {
		return "", err
	}
	if c, ok := lit.(constExpr); ok {
		switch t := c.v.(type) {
		case ast.String:
			return string(t), nil
		case ast.Number:
			return t.Text(), nil
		}
	}
	return "", fmt.Errorf("unsupported script %q", text)
}

func length(v ast.Value) (int, bool) {
	switch t := v.(type) {
	case ast.Array:
		return len(t), true
	case ast.Object:
		return len(t.Keys()), true
	case ast.String:
		return len([]rune(string(t))), true
	}
	return 0, false
}

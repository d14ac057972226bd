// Package jpath implements a JSONPath expression parser and evaluator.
//
// The dialect follows the original proposal by Stefan Goessner:
//
//	expr   = "$" { step }
//	step   = "." name | ".." [ name ] | "[" selector "]"
//	name   = WORD | "*" | "'" QTEXT "'"
//	selector = name | INDEX { "," INDEX } | [ INDEX ] ":" [ INDEX ]
//	         | "(" script ")" | "?(" filter ")"
//
//	WORD  = RE `\w+`
//	QTEXT = RE `[^']*`
//	INDEX = RE `-?\d+`
//
// Source:
//
//	https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// An Expr is a parsed JSONPath expression.
type Expr []Step

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Child             // member lookup by name, or all children (*)
	Descend           // descendants of the current nodes, and themselves (..)
	Index             // array elements by position
	Slice             // array elements by range
	Filter            // children satisfying a predicate ?(...)
	Script            // child selected by a computed key (...)
)

var opText = [...]string{
	Invalid: "invalid",
	Child:   "child",
	Descend: "..",
	Index:   "index",
	Slice:   "slice",
	Filter:  "?(...)",
	Script:  "(...)",
}

func (o Op) String() string {
	if int(o) >= len(opText) {
		return opText[Invalid]
	}
	return opText[o]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op Op

	Name   string // Child: the member name, or "*"
	Quoted bool   // Child: the name was written in quotes

	Indexes []int // Index: the selected positions; negative counts from the end

	Lo, Hi *int // Slice: bounds, nil if omitted

	Text string // Filter, Script: the expression text
}

// Wildcard reports whether s selects every child.
func (s Step) Wildcard() bool { return s.Op == Child && s.Name == "*" && !s.Quoted }

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(strings.TrimSpace(s), "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var out Expr
	for t != "" {
		steps, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(s)-len(t), err)
		}
		out = append(out, steps...)
		t = rest
	}
	return out, nil
}

// MustParse parses s as a JSONPath expression, and panics on error.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for i, s := range e {
		afterDescend := i > 0 && e[i-1].Op == Descend
		switch s.Op {
		case Child:
			switch {
			case s.Quoted:
				fmt.Fprintf(&buf, "['%s']", s.Name)
			case afterDescend:
				buf.WriteString(s.Name)
			default:
				buf.WriteString("." + s.Name)
			}
		case Descend:
			buf.WriteString("..")
		case Index:
			ss := make([]string, len(s.Indexes))
			for i, n := range s.Indexes {
				ss[i] = strconv.Itoa(n)
			}
			fmt.Fprintf(&buf, "[%s]", strings.Join(ss, ","))
		case Slice:
			fmt.Fprintf(&buf, "[%s:%s]", optInt(s.Lo), optInt(s.Hi))
		case Script:
			fmt.Fprintf(&buf, "[(%s)]", s.Text)
		case Filter:
			fmt.Fprintf(&buf, "[?(%s)]", s.Text)
		}
	}
	return buf.String()
}

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func parseStep(s string) (_ []Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		if strings.HasPrefix(t, "[") {
			return []Step{{Op: Descend}}, t, nil
		}
		name, u, err := parseName(t)
		if err != nil {
			return nil, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return []Step{{Op: Descend}, name}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		name, u, err := parseName(t)
		if err != nil {
			return nil, s, fmt.Errorf("invalid .name: %w", err)
		}
		return []Step{name}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		step, u, err := parseSelector(t)
		if err != nil {
			return nil, s, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return nil, u, errors.New("missing close bracket")
		}
		return []Step{step}, u, nil
	}
	return nil, s, errors.New("invalid path step")
}

func parseName(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Step{Op: Child, Name: "*"}, t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return Step{Op: Child, Name: m[1]}, s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return Step{Op: Child, Name: m[1], Quoted: true}, s[len(m[0]):], nil
	}
	return Step{}, s, errors.New("invalid name")
}

func parseSelector(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "?("); ok {
		text, rest, err := parseScript(t)
		return Step{Op: Filter, Text: text}, rest, err
	}
	if t, ok := strings.CutPrefix(s, "("); ok {
		text, rest, err := parseScript(t)
		return Step{Op: Script, Text: text}, rest, err
	}
	if m := indexRE.FindStringSubmatch(s); m != nil {
		rest := s[len(m[0]):]
		if u, ok := strings.CutPrefix(rest, ":"); ok && !strings.Contains(m[1], ",") {
			lo, _ := strconv.Atoi(m[1])
			return parseSliceEnd(&lo, u)
		}
		var idx []int
		for _, f := range strings.Split(m[1], ",") {
			n, err := strconv.Atoi(f)
			if err != nil {
				return Step{}, s, fmt.Errorf("invalid index %q", f)
			}
			idx = append(idx, n)
		}
		return Step{Op: Index, Indexes: idx}, rest, nil
	}
	if u, ok := strings.CutPrefix(s, ":"); ok {
		return parseSliceEnd(nil, u)
	}
	if step, rest, err := parseName(s); err == nil {
		if !step.Quoted {
			step.Quoted = step.Name != "*"
		}
		return step, rest, nil
	}
	return Step{}, s, fmt.Errorf("invalid selector: %q", s)
}

func parseSliceEnd(lo *int, s string) (Step, string, error) {
	out := Step{Op: Slice, Lo: lo}
	if m := sliceEndRE.FindStringSubmatch(s); m != nil {
		hi, _ := strconv.Atoi(m[1])
		out.Hi = &hi
		s = s[len(m[0]):]
	}
	return out, s, nil
}

func parseScript(s string) (text, rest string, _ error) {
	i, np := 0, 1
	var quote byte
	for i < len(s) {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '(':
			np++
		case ch == ')':
			np--
		}
		if np == 0 {
			break
		}
		i++
	}
	if np > 0 {
		return "", s, errors.New("unbalanced parentheses")
	}
	return s[:i], s[i+1:], nil
}

var (
	wordRE     = regexp.MustCompile(`^(\w+)`)
	indexRE    = regexp.MustCompile(`^(-?\d+(?:,-?\d+)*)`)
	sliceEndRE = regexp.MustCompile(`^(-?\d+)`)
	quoteRE    = regexp.MustCompile(`^'([^']*)'`)
)

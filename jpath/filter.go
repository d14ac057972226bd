package jpath

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/creachadair/jinspect"
	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/pointer"
)

/*
Filter grammar:

  expr    = and { "||" and }
  and     = unary { "&&" unary }
  unary   = "!" unary | compare
  compare = operand [ relop operand ]
  relop   = "==" | "!=" | "<" | "<=" | ">" | ">="
  operand = "(" expr ")" | path | literal
  path    = "@" [ WORD ] { "." WORD | "[" INDEX "]" | "['" QTEXT "']" }
  literal = NUMBER | "'" TEXT "'" | `"` TEXT `"` | "true" | "false" | "null"

A path that does not resolve is false in a Boolean context and unequal to
everything in a comparison. The step "length" of an array or string that
has no such member is its length.
*/

// A filterExpr is a compiled filter expression.
type filterExpr interface {
	test(at ast.Value) bool
}

// An operand is a filter expression that also denotes a value.
type operand interface {
	filterExpr
	eval(at ast.Value) (ast.Value, bool)
}

type constExpr struct{ v ast.Value }

func (c constExpr) eval(ast.Value) (ast.Value, bool) { return c.v, true }
func (c constExpr) test(ast.Value) bool              { return truthy(c.v) }

type pathExpr []string

func (p pathExpr) eval(at ast.Value) (ast.Value, bool) {
	cur := at
	for _, tok := range p {
		next, ok := pointer.Step(cur, tok)
		if !ok && tok == "length" {
			var n int
			if n, ok = length(cur); ok {
				if _, isObj := cur.(ast.Object); isObj {
					return nil, false
				}
				next = ast.Int(int64(n))
			}
		}
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (p pathExpr) test(at ast.Value) bool {
	_, ok := p.eval(at)
	return ok
}

type notExpr struct{ x filterExpr }

func (n notExpr) test(at ast.Value) bool { return !n.x.test(at) }

type boolExpr struct {
	and  bool
	args []filterExpr
}

func (b boolExpr) test(at ast.Value) bool {
	for _, x := range b.args {
		if x.test(at) != b.and {
			return !b.and
		}
	}
	return b.and
}

type cmpExpr struct {
	op   string
	l, r operand
}

func (c cmpExpr) test(at ast.Value) bool {
	lv, lok := c.l.eval(at)
	rv, rok := c.r.eval(at)
	if !lok || !rok {
		return c.op == "!=" && lok != rok
	}
	switch c.op {
	case "==":
		return ast.Equal(lv, rv)
	case "!=":
		return !ast.Equal(lv, rv)
	}
	n, ok := compare(lv, rv)
	if !ok {
		return false
	}
	switch c.op {
	case "<":
		return n < 0
	case "<=":
		return n <= 0
	case ">":
		return n > 0
	case ">=":
		return n >= 0
	}
	return false
}

func compare(a, b ast.Value) (int, bool) {
	switch x := a.(type) {
	case ast.Number:
		if y, ok := b.(ast.Number); ok {
			return cmp.Compare(x.Float(), y.Float()), true
		}
	case ast.String:
		if y, ok := b.(ast.String); ok {
			return strings.Compare(string(x), string(y)), true
		}
	}
	return 0, false
}

func truthy(v ast.Value) bool {
	switch t := v.(type) {
	case ast.Bool:
		return bool(t)
	case ast.NullType:
		return false
	case ast.Number:
		return t.Float() != 0
	case ast.String:
		return t != ""
	}
	return true
}

// parseFilter compiles the text of a filter or script selector.
func parseFilter(text string) (filterExpr, error) {
	p := &filterParser{src: text}
	x, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.skip(); p.pos < len(p.src) {
		return nil, fmt.Errorf("unexpected %q in filter", p.src[p.pos:])
	}
	return x, nil
}

type filterParser struct {
	src string
	pos int
}

func (p *filterParser) skip() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *filterParser) eat(s string) bool {
	p.skip()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *filterParser) parseOr() (filterExpr, error) {
	return p.parseList(false, "||", p.parseAnd)
}

func (p *filterParser) parseAnd() (filterExpr, error) {
	return p.parseList(true, "&&", p.parseUnary)
}

func (p *filterParser) parseList(and bool, sep string, next func() (filterExpr, error)) (filterExpr, error) {
	first, err := next()
	if err != nil {
		return nil, err
	}
	args := []filterExpr{first}
	for p.eat(sep) {
		x, err := next()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
	}
	if len(args) == 1 {
		return first, nil
	}
	return boolExpr{and: and, args: args}, nil
}

func (p *filterParser) parseUnary() (filterExpr, error) {
	if p.skip(); strings.HasPrefix(p.src[p.pos:], "!") && !strings.HasPrefix(p.src[p.pos:], "!=") {
		p.pos++
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{x}, nil
	}
	return p.parseCompare()
}

var relops = []string{"==", "!=", "<=", ">=", "<", ">"}

func (p *filterParser) parseCompare() (filterExpr, error) {
	if p.eat("(") {
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.eat(")") {
			return nil, errors.New("missing ) in filter")
		}
		return x, nil
	}
	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for _, op := range relops {
		if p.eat(op) {
			rhs, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			return cmpExpr{op: op, l: lhs, r: rhs}, nil
		}
	}
	return lhs, nil
}

func (p *filterParser) parseOperand() (operand, error) {
	p.skip()
	if p.pos >= len(p.src) {
		return nil, errors.New("unexpected end of filter")
	}
	rest := p.src[p.pos:]
	switch ch := rest[0]; {
	case ch == '@':
		p.pos++
		return p.parsePath()
	case ch == '\'' || ch == '"':
		end := strings.IndexByte(rest[1:], ch)
		if end < 0 {
			return nil, errors.New("unterminated string in filter")
		}
		p.pos += end + 2
		return constExpr{ast.String(rest[1 : end+1])}, nil
	case ch == '-' || (ch >= '0' && ch <= '9'):
		s := jinspect.NewScanner(rest)
		if !s.Next() || (s.Token() != jinspect.Integer && s.Token() != jinspect.Number) {
			return nil, fmt.Errorf("invalid number in filter at %q", rest)
		}
		p.pos += len(s.Text())
		v, _ := ast.AnchorValue(s)
		return constExpr{v}, nil
	}
	for _, lit := range []struct {
		word string
		v    ast.Value
	}{{"true", ast.Bool(true)}, {"false", ast.Bool(false)}, {"null", ast.Null}} {
		if strings.HasPrefix(rest, lit.word) {
			p.pos += len(lit.word)
			return constExpr{lit.v}, nil
		}
	}
	return nil, fmt.Errorf("invalid operand %q in filter", rest)
}

func (p *filterParser) parsePath() (operand, error) {
	var out pathExpr
	if w := p.word(); w != "" {
		out = append(out, w) // @name is shorthand for @.name
	}
	for p.pos < len(p.src) {
		switch {
		case p.src[p.pos] == '.':
			p.pos++
			w := p.word()
			if w == "" {
				return nil, errors.New("missing name after . in filter path")
			}
			out = append(out, w)
		case strings.HasPrefix(p.src[p.pos:], "['"):
			end := strings.Index(p.src[p.pos+2:], "']")
			if end < 0 {
				return nil, errors.New("unterminated ['name'] in filter path")
			}
			out = append(out, p.src[p.pos+2:p.pos+2+end])
			p.pos += end + 4
		case p.src[p.pos] == '[':
			end := strings.IndexByte(p.src[p.pos:], ']')
			if end < 0 {
				return nil, errors.New("unterminated [index] in filter path")
			}
			idx := strings.TrimSpace(p.src[p.pos+1 : p.pos+end])
			if _, err := strconv.Atoi(idx); err != nil {
				return nil, fmt.Errorf("invalid index %q in filter path", idx)
			}
			out = append(out, idx)
			p.pos += end + 1
		default:
			return out, nil
		}
	}
	return out, nil
}

func (p *filterParser) word() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

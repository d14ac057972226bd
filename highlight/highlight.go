// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package highlight classifies the text of a single line of pretty-printed
// JSON for syntax coloring.
//
// The lexer works one line at a time and keeps no state between lines, so a
// string that spans a line break (which a pretty printer never emits) is
// classified up to the end of the line.
package highlight

import "github.com/creachadair/jinspect/search"

// Kind is the syntactic class of a token.
type Kind byte

// Constants defining the token kinds.
const (
	Plain  Kind = iota // whitespace and unrecognized text
	Punct              // { } [ ] : ,
	Key                // a string followed by a colon
	String             // any other string
	Number             // a numeric literal
	Bool               // true or false
	Null               // null
)

var kindStr = [...]string{"plain", "punct", "key", "string", "number", "bool", "null"}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return "invalid"
}

// A Token is a classified span of a line. Start and End are byte offsets.
type Token struct {
	Kind       Kind
	Start, End int
	Text       string
}

type lexer struct {
	src  string
	pos  int
	out  []Token
	left int // start of pending plain text
}

// Line splits line into tokens that cover it completely and in order.
func Line(line string) []Token {
	lx := &lexer{src: line}
	for lx.pos < len(lx.src) {
		start := lx.pos
		switch ch := lx.src[lx.pos]; {
		case ch == '{' || ch == '}' || ch == '[' || ch == ']' || ch == ':' || ch == ',':
			lx.pos++
			lx.emit(Punct, start)
		case ch == '"':
			lx.scanString()
			if lx.colonFollows() {
				lx.emit(Key, start)
			} else {
				lx.emit(String, start)
			}
		case ch == '-' || isDigit(ch):
			if lx.scanNumber() {
				lx.emit(Number, start)
			} else {
				lx.pos = start + 1
			}
		case isLetter(ch):
			for lx.pos < len(lx.src) && isLetter(lx.src[lx.pos]) {
				lx.pos++
			}
			switch lx.src[start:lx.pos] {
			case "true", "false":
				lx.emit(Bool, start)
			case "null":
				lx.emit(Null, start)
			}
		default:
			lx.pos++
		}
	}
	lx.flush(len(lx.src))
	return lx.out
}

// emit records a token spanning start to the current position, after any
// plain text pending before it.
func (lx *lexer) emit(kind Kind, start int) {
	lx.flush(start)
	lx.out = append(lx.out, Token{Kind: kind, Start: start, End: lx.pos, Text: lx.src[start:lx.pos]})
	lx.left = lx.pos
}

func (lx *lexer) flush(end int) {
	if end > lx.left {
		lx.out = append(lx.out, Token{Kind: Plain, Start: lx.left, End: end, Text: lx.src[lx.left:end]})
	}
	lx.left = end
}

func (lx *lexer) scanString() {
	lx.pos++ // open quote
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
			continue
		case '"':
			lx.pos++
			return
		}
		lx.pos++
	}
	lx.pos = len(lx.src)
}

// colonFollows reports whether the next non-blank byte is a colon.
func (lx *lexer) colonFollows() bool {
	for i := lx.pos; i < len(lx.src); i++ {
		switch lx.src[i] {
		case ' ', '\t':
			continue
		case ':':
			return true
		}
		return false
	}
	return false
}

func (lx *lexer) scanNumber() bool {
	if lx.src[lx.pos] == '-' {
		lx.pos++
	}
	if lx.digits() == 0 {
		return false
	}
	if lx.peek() == '.' {
		save := lx.pos
		lx.pos++
		if lx.digits() == 0 {
			lx.pos = save
		}
	}
	if c := lx.peek(); c == 'e' || c == 'E' {
		save := lx.pos
		lx.pos++
		if c := lx.peek(); c == '+' || c == '-' {
			lx.pos++
		}
		if lx.digits() == 0 {
			lx.pos = save
		}
	}
	return true
}

func (lx *lexer) digits() int {
	n := 0
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
		n++
	}
	return n
}

func (lx *lexer) peek() byte {
	if lx.pos < len(lx.src) {
		return lx.src[lx.pos]
	}
	return 0
}

func isDigit(ch byte) bool  { return '0' <= ch && ch <= '9' }
func isLetter(ch byte) bool { return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }

// A Segment is a piece of a token, marked if it lies within a search match.
type Segment struct {
	Kind   Kind
	Text   string
	Match  bool // within a search match
	Active bool // within the active search match
}

// Decorate splits toks at the boundaries of the given matches on the same
// line. The match starting at activeStart, if any, is marked active; pass
// -1 for none.
func Decorate(toks []Token, ms []search.Match, activeStart int) []Segment {
	var out []Segment
	for _, tok := range toks {
		pos := tok.Start
		for _, m := range ms {
			s, e := max(m.Start, pos), min(m.End, tok.End)
			if s >= e {
				continue
			}
			if s > pos {
				out = append(out, Segment{Kind: tok.Kind, Text: tok.Text[pos-tok.Start : s-tok.Start]})
			}
			out = append(out, Segment{
				Kind:   tok.Kind,
				Text:   tok.Text[s-tok.Start : e-tok.Start],
				Match:  true,
				Active: m.Start == activeStart,
			})
			pos = e
		}
		if pos < tok.End {
			out = append(out, Segment{Kind: tok.Kind, Text: tok.Text[pos-tok.Start:]})
		}
	}
	return out
}

// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinspect

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	if int(t) >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[t]
}

// A Scanner reads lexical tokens from a complete JSON source text held in
// memory. Each call to Next advances the scanner to the next token.
//
// The text of a token is a substring of the source, so no copying is done
// while scanning.
type Scanner struct {
	src string
	tok Token
	err error

	pos, end int // start and end offsets of current token

	// Line bookkeeping: the 0-based index of the current line and the offset
	// of its first byte. Lines are terminated by LF; a CR before the LF is
	// treated as whitespace at the end of the line.
	line, lstart int

	// Line and line-start of the current token's first byte.
	pline, plstart int
}

// NewScanner constructs a new lexical scanner that consumes src.
func NewScanner(src string) *Scanner { return &Scanner{src: src} }

// Next advances s to the next token of the input and reports whether a token
// is available. At the end of input or in case of error, Next returns false;
// use Err to distinguish the two.
func (s *Scanner) Next() bool {
	s.err = nil
	s.tok = Invalid

	s.skipSpace()
	s.pos, s.pline, s.plstart = s.end, s.line, s.lstart
	if s.end >= len(s.src) {
		return false
	}

	ch := s.src[s.end]
	switch {
	case strings.IndexByte("{}[],:", ch) >= 0:
		s.end++
		s.tok = selfDelim(ch)
		return true
	case ch == '-' || isDigit(ch):
		return s.scanNumber()
	case ch == '"':
		return s.scanString()
	case ch == 't':
		return s.scanConstant("true", True)
	case ch == 'f':
		return s.scanConstant("false", False)
	case ch == 'n':
		return s.scanConstant("null", Null)
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.end:])
	return s.failf("unexpected %q", r)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error reported by the last call of Next, or nil if the
// input was exhausted without error.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.
func (s *Scanner) Text() string { return s.src[s.pos:s.end] }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pos - s.plstart + 1},
		Last:  LineCol{Line: s.line + 1, Column: s.end - s.lstart + 1},
	}
}

// Offset reports the current read offset of the scanner. After Next reports
// an error, this is the offset at which the error was detected.
func (s *Scanner) Offset() int { return s.end }

// LineCol reports the line and column of the current read offset.
func (s *Scanner) LineCol() LineCol {
	return LineCol{Line: s.line + 1, Column: s.end - s.lstart + 1}
}

func (s *Scanner) skipSpace() {
	for s.end < len(s.src) {
		switch s.src[s.end] {
		case '\n':
			s.end++
			s.line++
			s.lstart = s.end
		case ' ', '\t', '\r':
			s.end++
		default:
			return
		}
	}
}

func (s *Scanner) scanConstant(want string, tok Token) bool {
	i := s.end
	for i < len(s.src) && isNameByte(s.src[i]) {
		i++
	}
	if got := s.src[s.end:i]; got != want {
		return s.failf("unknown constant %q", got)
	}
	s.end = i
	s.tok = tok
	return true
}

func (s *Scanner) scanString() bool {
	s.end++ // opening quote
	for s.end < len(s.src) {
		ch := s.src[s.end]
		switch {
		case ch == '"':
			s.end++
			s.tok = String
			return true
		case ch == '\\':
			s.end++
			if s.end >= len(s.src) {
				return s.failf("incomplete escape")
			}
			switch e := s.src[s.end]; e {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.end++
			case 'u':
				s.end++
				for range 4 {
					if s.end >= len(s.src) || !isHexDigit(s.src[s.end]) {
						return s.failf("invalid Unicode escape")
					}
					s.end++
				}
			default:
				return s.failf("invalid %q after escape", e)
			}
		case ch < ' ':
			return s.failf("unescaped control %q", ch)
		case ch < utf8.RuneSelf:
			s.end++
		default:
			r, n := utf8.DecodeRuneInString(s.src[s.end:])
			if r == utf8.RuneError && n == 1 {
				return s.failf("invalid UTF-8 in string")
			}
			s.end += n
		}
	}
	return s.failf("unterminated string")
}

func (s *Scanner) scanNumber() bool {
	if s.src[s.end] == '-' {
		s.end++
	}

	// Integer part: a single 0, or a nonzero digit followed by digits.
	start := s.end
	n := s.readDigits()
	if n == 0 {
		return s.failf("want digit after sign")
	} else if n > 1 && s.src[start] == '0' {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	if s.peek() == '.' {
		s.end++
		if s.readDigits() == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		s.end++
		if c := s.peek(); c == '+' || c == '-' {
			s.end++
		}
		if s.readDigits() == 0 {
			return s.failf("missing exponent digits")
		}
		s.tok = Number
	}
	return true
}

func (s *Scanner) readDigits() int {
	n := 0
	for s.end < len(s.src) && isDigit(s.src[s.end]) {
		s.end++
		n++
	}
	return n
}

func (s *Scanner) peek() byte {
	if s.end < len(s.src) {
		return s.src[s.end]
	}
	return 0
}

// posError is an error detected by the scanner at a specific offset.
type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) failf(msg string, args ...any) bool {
	s.tok = Invalid
	s.err = posError{s.end, fmt.Errorf(msg, args...)}
	return false
}

func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) Token { return self[strings.IndexByte("{}[],:", ch)] }

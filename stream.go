// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinspect

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrExtraInput is reported (wrapped in a *SyntaxError) when non-whitespace
// input follows a complete top-level value.
var ErrExtraInput = errors.New("extra input after value")

// An Anchor represents a location in source text. The methods of an Anchor
// report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() string       // Returns the raw (undecoded) text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input.  If a method reports an
// error, parsing stops and that error is returned to the caller.  The parser
// ensures objects and arrays are correctly balanced.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc.  The text of the key is
	// still quoted; the handler is responsible for unescaping it.
	BeginMember(loc Anchor) error

	// End the current object member.
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token. String tokens are quoted.
	Value(loc Anchor) error
}

// Stream is a push parser that consumes a complete source text and delivers
// events to a Handler corresponding with the structure of the input.
type Stream struct {
	s *Scanner
}

// NewStream constructs a new Stream that consumes src.
func NewStream(src string) *Stream { return &Stream{s: NewScanner(src)} }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses exactly one JSON value from the input and delivers events to
// h. Only whitespace may follow the value. In case of a syntax error, the
// returned error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	s.advance()
	s.parseElement(h)
	if s.s.Next() {
		s.syntaxError(ErrExtraInput, "unexpected %v after value", s.s.Token())
	} else if err := s.s.Err(); err != nil {
		s.scanError(err)
	}
	return nil
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.s.Token(); tok {
	case LBrace:
		s.checkError(h.BeginObject(s.s))
		s.parseMembers(h)
		s.checkError(h.EndObject(s.s))
	case LSquare:
		s.checkError(h.BeginArray(s.s))
		s.parseElements(h)
		s.checkError(h.EndArray(s.s))
	case Integer, Number, String, True, False, Null:
		s.checkError(h.Value(s.s))
	default:
		s.syntaxError(nil, "unexpected %v", tok)
	}
}

// parseMembers consumes zero of more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseMembers(h Handler) {
	if s.advance(RBrace, String) == RBrace {
		return // empty object
	}
	for {
		// Parse a single member: "key": value
		s.checkError(h.BeginMember(s.s))
		s.advance(Colon)
		s.advance()
		s.parseElement(h)

		tok := s.advance(RBrace, Comma)
		s.checkError(h.EndMember(s.s))
		if tok == RBrace {
			return
		}
		comma := s.s.Location()
		if s.advance() == RBrace {
			s.syntaxErrorAt(comma.First, comma.Pos, nil, "unexpected trailing comma before %v", RBrace)
		}
		s.require(String)
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler) {
	if s.advance() == RSquare {
		return // empty array
	}
	for {
		s.parseElement(h)
		if s.advance(RSquare, Comma) == RSquare {
			return
		}
		comma := s.s.Location()
		if s.advance() == RSquare {
			s.syntaxErrorAt(comma.First, comma.Pos, nil, "unexpected trailing comma before %v", RSquare)
		}
	}
}

// advance moves to the next token, which must be one of tokens if any are
// given, and returns its type.
func (s *Stream) advance(tokens ...Token) Token {
	if !s.s.Next() {
		if err := s.s.Err(); err != nil {
			s.scanError(err)
		}
		s.syntaxErrorAt(s.s.LineCol(), s.s.Offset(), nil, "%s", tokLabel(tokens, "end of input"))
	}
	tok := s.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		s.syntaxError(nil, "%s", tokLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) require(token Token) {
	if tok := s.s.Token(); tok != token {
		s.syntaxError(nil, "expected %v, got %v", token, tok)
	}
}

// scanError reports a lexical error at the offset where it was detected.
func (s *Stream) scanError(err error) {
	var pe posError
	if errors.As(err, &pe) {
		s.syntaxErrorAt(s.s.LineCol(), pe.pos, err, "%v", pe.err)
	}
	s.syntaxErrorAt(s.s.LineCol(), s.s.Offset(), err, "%v", err)
}

// syntaxError reports an error at the start of the current token.
func (s *Stream) syntaxError(err error, msg string, args ...any) {
	loc := s.s.Location()
	s.syntaxErrorAt(loc.First, loc.Pos, err, msg, args...)
}

func (s *Stream) syntaxErrorAt(lc LineCol, offset int, err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: lc,
		Offset:   offset,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected value, got %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by the stream parser.
type SyntaxError struct {
	Location LineCol // 1-based line and column of the error
	Offset   int     // 0-based byte offset of the error
	Message  string

	err error
}

// Error satisfies the error interface. The message has the form
//
//	line N column M: message
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("line %d column %d: %s", s.Location.Line, s.Location.Column, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

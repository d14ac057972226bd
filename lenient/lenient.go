// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package lenient relaxes JSON-with-comments text into strict JSON.
//
// Normalize blanks out "//" line comments, "/* */" block comments, and
// commas that directly precede a closing bracket or brace, leaving string
// literals untouched. Removed bytes are replaced by spaces and line breaks
// are kept, so every offset, line, and column in the output refers to the
// same character in the input. A parser error reported against the output
// can therefore be located in the original text.
//
// This is text surgery, not a tokenizer: it does not validate the input,
// and malformed input still fails when the result is parsed.
package lenient

import "strings"

// Normalize returns text with comments and trailing commas blanked out.
func Normalize(text string) string {
	return stripTrailingCommas(stripComments(text))
}

type scanState int

const (
	inCode scanState = iota
	inString
	inLineComment
	inBlockComment
)

func stripComments(text string) string {
	buf := []byte(text)
	var (
		state scanState
		esc   bool
	)
	for i := 0; i < len(buf); i++ {
		ch := buf[i]
		switch state {
		case inString:
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				state = inCode
			}

		case inLineComment:
			if ch == '\n' {
				state = inCode
			} else if ch != '\r' {
				buf[i] = ' '
			}

		case inBlockComment:
			if ch == '*' && i+1 < len(buf) && buf[i+1] == '/' {
				buf[i], buf[i+1] = ' ', ' '
				i++
				state = inCode
			} else if ch != '\n' && ch != '\r' {
				buf[i] = ' '
			}

		default:
			if ch == '"' {
				state = inString
			} else if ch == '/' && i+1 < len(buf) && buf[i+1] == '/' {
				buf[i], buf[i+1] = ' ', ' '
				i++
				state = inLineComment
			} else if ch == '/' && i+1 < len(buf) && buf[i+1] == '*' {
				buf[i], buf[i+1] = ' ', ' '
				i++
				state = inBlockComment
			}
		}
	}
	return string(buf)
}

func stripTrailingCommas(text string) string {
	if !strings.Contains(text, ",") {
		return text
	}
	buf := []byte(text)
	var inStr, esc bool
	for i, ch := range buf {
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case ',':
			j := i + 1
			for j < len(buf) && isSpace(buf[j]) {
				j++
			}
			if j < len(buf) && (buf[j] == ']' || buf[j] == '}') {
				buf[i] = ' '
			}
		}
	}
	return string(buf)
}

func isSpace(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }

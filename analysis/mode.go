// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package analysis

import (
	"fmt"

	"github.com/creachadair/jinspect/lenient"
	"github.com/tailscale/hujson"
)

// Mode selects how source text is prepared before it is parsed.
type Mode string

// Constants defining the parse modes.
const (
	// Strict parses the text as RFC 8259 JSON.
	Strict Mode = "strict"

	// Lenient blanks out comments and trailing commas with lenient.Normalize
	// before a strict parse.
	Lenient Mode = "lenient"

	// JWCC standardizes JSON With Commas and Comments with hujson before a
	// strict parse. Unlike Lenient it tokenizes the input, so it is not
	// confused by comment-like text in odd places, but it rejects input that
	// is not well-formed JWCC.
	JWCC Mode = "jwcc"
)

// Modes lists the supported modes.
var Modes = []Mode{Strict, Lenient, JWCC}

// ParseMode parses the name of a mode. The empty string denotes Strict,
// and "jsonc" is accepted as a synonym for Lenient.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(Strict):
		return Strict, nil
	case string(Lenient), "jsonc":
		return Lenient, nil
	case string(JWCC), "hujson":
		return JWCC, nil
	}
	return "", fmt.Errorf("unknown mode %q (want strict, lenient, or jwcc)", s)
}

// Prepare converts text to the strict JSON that will be parsed in mode m.
// Every mode preserves byte offsets, so parse errors in the result locate
// the same positions in text.
func (m Mode) Prepare(text string) (string, error) {
	switch m {
	case "", Strict:
		return text, nil
	case Lenient:
		return lenient.Normalize(text), nil
	case JWCC:
		out, err := hujson.Standardize([]byte(text))
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return "", fmt.Errorf("unknown mode %q", m)
}

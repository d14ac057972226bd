// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as a JSON string, including the enclosing double
// quotation marks. Control characters, quotes, and backslashes are escaped;
// all other runes are copied through unchanged, so that the result reads the
// same as the input. Invalid UTF-8 bytes are replaced by �.
func Quote(src mem.RO) string {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r == utf8.RuneError && n <= 1:
			buf = append(buf, `�`...)
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '\\' || r == '"':
			buf = append(buf, '\\', byte(r))
		default:
			buf = mem.Append(buf, src.SliceTo(n))
		}
		if n == 0 {
			n = 1
		}
		src = src.SliceFrom(n)
	}
	return string(append(buf, '"'))
}

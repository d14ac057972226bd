// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package share encodes document text as a compact URL-safe token.
//
// A token is the zlib (deflate) compression of the UTF-8 text at level 6,
// encoded as unpadded URL-safe base64. Decode also accepts two older forms:
// "b64:" followed by standard base64 of the text, and plain URL-escaped text.
package share

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Level is the compression level used by Encode.
const Level = 6

// Prefix marks a token holding standard base64 of uncompressed text.
const Prefix = "b64:"

// Encode returns the share token for text.
func Encode(text string) (string, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, Level)
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(zw, text); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Inflate decodes a compressed token produced by Encode. Padding is
// tolerated.
func Inflate(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("inflate token: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("inflate token: %w", err)
	}
	return string(out), nil
}

// ErrNotShared is reported by DecodeStrict when a token is in none of the
// recognized forms.
var ErrNotShared = errors.New("not a share token")

// DecodeStrict decodes token in any of the recognized forms, trying the
// "b64:" convention, then a compressed token, then URL escaping.
func DecodeStrict(token string) (string, error) {
	if rest, ok := strings.CutPrefix(token, Prefix); ok {
		out, err := base64.StdEncoding.DecodeString(rest)
		if err != nil {
			if out, err = base64.RawStdEncoding.DecodeString(rest); err != nil {
				return "", fmt.Errorf("decode %s token: %w", Prefix, err)
			}
		}
		return string(out), nil
	}
	if out, err := Inflate(token); err == nil {
		return out, nil
	}
	if out, err := url.QueryUnescape(token); err == nil {
		return out, nil
	}
	return "", ErrNotShared
}

// Decode decodes token like DecodeStrict, but returns token unchanged if it
// is in none of the recognized forms.
func Decode(token string) string {
	out, err := DecodeStrict(token)
	if err != nil {
		return token
	}
	return out
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package analysis

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxFileBytes is the default limit on the size of a document loaded for
// analysis.
const MaxFileBytes = 15 << 20

// ErrTooLarge is reported when a document exceeds the load limit.
var ErrTooLarge = errors.New("document too large")

// LoadFile reads the document at path, which must be at most limit bytes.
// If limit ≤ 0, MaxFileBytes is used. The path "-" denotes standard input.
func LoadFile(path string, limit int64) (string, error) {
	if limit <= 0 {
		limit = MaxFileBytes
	}
	if path == "-" {
		return ReadLimited(os.Stdin, limit)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() && fi.Size() > limit {
		return "", fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrTooLarge, fi.Size(), limit)
	}
	text, err := ReadLimited(f, limit)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// ReadLimited reads all of r, which must be at most limit bytes.
func ReadLimited(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w (limit %d bytes)", ErrTooLarge, limit)
	}
	return string(data), nil
}

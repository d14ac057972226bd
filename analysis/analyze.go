// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package analysis

import (
	"errors"
	"time"

	"github.com/creachadair/jinspect"
	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/errloc"
	"github.com/creachadair/jinspect/summary"
)

// Timings record the duration of the stages of an analysis, in milliseconds.
type Timings struct {
	ParseMs     float64 `json:"parseMs" yaml:"parseMs"`
	SummarizeMs float64 `json:"summarizeMs" yaml:"summarizeMs"`
	TotalMs     float64 `json:"totalMs" yaml:"totalMs"`
}

// Thresholds control when a document is large enough to be rendered in the
// reduced-fidelity large-document mode.
type Thresholds struct {
	HardBytes int     // any document larger than this is large
	SoftBytes int     // a slow document larger than this is large
	SlowMs    float64 // an analysis longer than this is slow
}

// DefaultThresholds are the thresholds used when none are configured.
var DefaultThresholds = Thresholds{
	HardBytes: 1_500_000,
	SoftBytes: 300_000,
	SlowMs:    200,
}

// LargeMode reports whether a document of size bytes whose analysis took
// totalMs should be rendered in large-document mode. Both criteria are
// gated on size, so a slow but small document is never large.
func LargeMode(size int, totalMs float64, th Thresholds) bool {
	return size > th.HardBytes || (totalMs > th.SlowMs && size > th.SoftBytes)
}

func msSince(t time.Time) float64 { return float64(time.Since(t).Microseconds()) / 1000 }

// Analyze parses text in the given mode and summarizes the result, sampling
// key presence over at most sampleLimit elements (see summary.Summarize).
// It always returns a response of kind KindResult; on failure OK is false
// and Error and Location describe the problem.
func Analyze(text string, mode Mode, sampleLimit int) Response {
	t0 := time.Now()
	rsp := Response{Kind: KindResult, Size: len(text)}

	fail := func(err error, parseMs float64) Response {
		rsp.Error = err.Error()
		if loc, ok := Locate(text, err); ok {
			rsp.Location = &loc
		}
		rsp.Timings = &Timings{ParseMs: parseMs, TotalMs: msSince(t0)}
		return rsp
	}

	v, err := Parse(text, mode)
	parseMs := msSince(t0)
	if err != nil {
		return fail(err, parseMs)
	}

	t1 := time.Now()
	ov := summary.Summarize(v, sampleLimit)
	rsp.OK = true
	rsp.Value = v
	rsp.Overview = &ov
	rsp.Timings = &Timings{ParseMs: parseMs, SummarizeMs: msSince(t1), TotalMs: msSince(t0)}
	return rsp
}

// Parse parses text in the given mode without summarizing it. In case of
// error, use Locate to find its position in text.
func Parse(text string, mode Mode) (ast.Value, error) {
	src, err := mode.Prepare(text)
	if err != nil {
		return nil, err
	}
	return ast.Parse(src)
}

// Locate finds the position of a parse failure in text. Errors from the
// parser carry their own position; others are located from their message.
func Locate(text string, err error) (errloc.Location, bool) {
	var serr *jinspect.SyntaxError
	if errors.As(err, &serr) {
		return errloc.Location{
			Line: serr.Location.Line,
			Col:  serr.Location.Column,
			Pos:  serr.Offset,
		}, true
	}
	return errloc.Locate(text, err.Error())
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package analysis

import (
	"context"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/jpath"
	"github.com/creachadair/jinspect/schema"
	"github.com/rs/zerolog"
)

// A Worker processes analysis requests one at a time. It owns the Cell
// holding the last successfully parsed value, which JSONPath and validate
// requests read as a snapshot.
type Worker struct {
	cell Cell
	log  zerolog.Logger
}

// NewWorker constructs a new idle Worker. Only the WithLogger option
// applies to a Worker; others are ignored.
func NewWorker(opts ...Option) *Worker {
	o := newOptions(opts)
	return &Worker{log: o.log}
}

// Cell returns the cell holding the last value parsed by w.
func (w *Worker) Cell() *Cell { return &w.cell }

// Run processes requests from in in order and delivers exactly one response
// for each to out, until in is closed or ctx ends. Run must not be called
// concurrently with itself or Handle.
func (w *Worker) Run(ctx context.Context, in <-chan Request, out chan<- Response) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-in:
			if !ok {
				return nil
			}
			rsp := w.Handle(req)
			select {
			case out <- rsp:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Handle processes a single request and returns its response.
func (w *Worker) Handle(req Request) Response {
	switch req.Kind {
	case KindJSONPath:
		return w.jsonpath(req)
	case KindValidate:
		return w.validate(req)
	}

	rsp := Analyze(req.Text, req.Mode, req.SampleLimit)
	rsp.Seq = req.Seq
	ev := w.log.Debug().Uint64("seq", req.Seq).Int("size", rsp.Size).Str("mode", string(req.Mode))
	if rsp.OK {
		ver := w.cell.Store(rsp.Value)
		ev.Uint64("version", ver).Float64("totalMs", rsp.Timings.TotalMs).Msg("parsed")
	} else {
		ev.Str("error", rsp.Error).Msg("parse failed")
	}
	return rsp
}

// current returns the cell value, or null if nothing has been parsed.
func (w *Worker) current() (ast.Value, uint64) {
	v, ver := w.cell.Load()
	if v == nil {
		return ast.Null, ver
	}
	return v, ver
}

func (w *Worker) jsonpath(req Request) Response {
	v, ver := w.current()
	rsp := Response{Kind: KindJSONPathResult, Seq: req.Seq, Query: req.Query, Version: ver}
	rs, err := jpath.Query(v, req.Query)
	if err != nil {
		// Query failures are reported as an empty selection.
		w.log.Debug().Err(err).Str("query", req.Query).Msg("jsonpath failed")
		rs = nil
	}
	rsp.Pointers = jpath.Pointers(rs)
	rsp.Values = jpath.Values(rs)
	return rsp
}

func (w *Worker) validate(req Request) Response {
	v, ver := w.current()
	rsp := Response{Kind: KindValidateResult, Seq: req.Seq, Version: ver}

	var res schema.Result
	if s, err := ast.Parse(string(req.Schema)); err != nil {
		res = schema.Result{Errors: []schema.Error{{Path: schema.RootPath, Message: "invalid schema: " + err.Error()}}}
	} else {
		res = schema.Validate(v, s)
	}
	rsp.Valid, rsp.Errors = res.Valid, res.Errors
	return rsp
}

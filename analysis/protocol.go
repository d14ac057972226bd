// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package analysis

import (
	"encoding/json"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/errloc"
	"github.com/creachadair/jinspect/schema"
	"github.com/creachadair/jinspect/summary"
)

// Kind identifies the type of a request or response message.
type Kind string

// Request kinds.
const (
	KindParse    Kind = "parse"
	KindJSONPath Kind = "jsonpath"
	KindValidate Kind = "validate"
)

// Response kinds.
const (
	KindResult         Kind = "result"
	KindJSONPathResult Kind = "jsonpath-result"
	KindValidateResult Kind = "validate-result"
)

// A Request is a message from a caller to a Worker.
type Request struct {
	Kind Kind   `json:"kind"`
	Seq  uint64 `json:"seq,omitempty"` // echoed in the response

	// Parse requests.
	Text        string `json:"text,omitempty"`
	Mode        Mode   `json:"mode,omitempty"`
	SampleLimit int    `json:"sampleLimit,omitempty"`

	// JSONPath requests.
	Query string `json:"query,omitempty"`

	// Validate requests.
	Schema json.RawMessage `json:"schema,omitempty"`
}

// A Response is a message from a Worker to a caller. Which fields are
// meaningful depends on Kind.
type Response struct {
	Kind Kind
	Seq  uint64

	// KindResult.
	OK       bool
	Value    ast.Value
	Overview *summary.Overview
	Error    string
	Location *errloc.Location
	Timings  *Timings
	Size     int

	// KindJSONPathResult and KindValidateResult: the version of the value
	// the request was evaluated against (0 if there was none).
	Version uint64

	// KindJSONPathResult.
	Query    string
	Pointers []string
	Values   []ast.Value

	// KindValidateResult.
	Valid  bool
	Errors []schema.Error
}

// MarshalJSON encodes r in the wire format for its kind.
func (r Response) MarshalJSON() ([]byte, error) { return json.Marshal(r.wire(false, false)) }

// MarshalJSON encodes r as its response, with the large and empty flags
// added to a parse result.
func (r Result) MarshalJSON() ([]byte, error) { return json.Marshal(r.Response.wire(r.Large, r.Empty)) }

func (r Response) wire(large, empty bool) any {
	switch r.Kind {
	case KindJSONPathResult:
		return struct {
			Kind     Kind              `json:"kind"`
			Seq      uint64            `json:"seq,omitempty"`
			Version  uint64            `json:"version"`
			Query    string            `json:"query"`
			Pointers []string          `json:"pointers"`
			Values   []json.RawMessage `json:"values"`
		}{r.Kind, r.Seq, r.Version, r.Query, nonNil(r.Pointers), rawValues(r.Values)}

	case KindValidateResult:
		return struct {
			Kind    Kind           `json:"kind"`
			Seq     uint64         `json:"seq,omitempty"`
			Version uint64         `json:"version"`
			Valid   bool           `json:"valid"`
			Errors  []schema.Error `json:"errors"`
		}{r.Kind, r.Seq, r.Version, r.Valid, nonNil(r.Errors)}

	default:
		var value json.RawMessage
		if r.Value != nil {
			value = json.RawMessage(r.Value.JSON())
		}
		return struct {
			Kind     Kind              `json:"kind"`
			Seq      uint64            `json:"seq,omitempty"`
			OK       bool              `json:"ok"`
			Value    json.RawMessage   `json:"value,omitempty"`
			Overview *summary.Overview `json:"overview,omitempty"`
			Error    string            `json:"error,omitempty"`
			Location *errloc.Location  `json:"errorLocation,omitempty"`
			Timings  *Timings          `json:"timings,omitempty"`
			Size     int               `json:"size"`
			Large    bool              `json:"large,omitempty"`
			Empty    bool              `json:"empty,omitempty"`
		}{r.Kind, r.Seq, r.OK, value, r.Overview, r.Error, r.Location, r.Timings, r.Size, large, empty}
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func rawValues(vs []ast.Value) []json.RawMessage {
	out := make([]json.RawMessage, len(vs))
	for i, v := range vs {
		out[i] = json.RawMessage(v.JSON())
	}
	return out
}

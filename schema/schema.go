// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package schema validates JSON values against a JSON Schema.
//
// Validation never fails outright: a schema that cannot be compiled is
// reported as a single error at the root path "/".
package schema

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"github.com/creachadair/jinspect/ast"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RootPath is the path reported for errors about the whole document.
const RootPath = "/"

// An Error is one validation failure.
type Error struct {
	Path    string `json:"path" yaml:"path"` // JSON Pointer to the failing value
	Message string `json:"message" yaml:"message"`
}

// A Result is the outcome of validating a value.
type Result struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Errors []Error `json:"errors" yaml:"errors"`
}

// resourceURL names the schema in the compiler's resource table.
const resourceURL = "mem://jinspect/schema.json"

// A Schema is a compiled JSON Schema.
type Schema struct {
	sch *jsonschema.Schema
}

// Compile compiles the schema document s. Draft 2020-12 is assumed when the
// schema does not declare its own.
func Compile(s ast.Value) (*Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true
	if err := c.AddResource(resourceURL, strings.NewReader(s.JSON())); err != nil {
		return nil, err
	}
	sch, err := c.Compile(resourceURL)
	if err != nil {
		return nil, err
	}
	return &Schema{sch: sch}, nil
}

// Validate reports every way in which v fails to satisfy s.
func (s *Schema) Validate(v ast.Value) Result {
	err := s.sch.Validate(ast.ToAny(v))
	if err == nil {
		return Result{Valid: true, Errors: []Error{}}
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return failure(err)
	}
	var out []Error
	collect(ve, &out)
	slices.SortStableFunc(out, func(a, b Error) int { return cmp.Compare(a.Path, b.Path) })
	return Result{Valid: false, Errors: slices.Compact(out)}
}

// Validate validates root against the schema document s. A schema that does
// not compile yields one error at RootPath carrying the compiler's message.
func Validate(root, s ast.Value) Result {
	sch, err := Compile(s)
	if err != nil {
		return failure(err)
	}
	return sch.Validate(root)
}

func failure(err error) Result {
	return Result{Errors: []Error{{Path: RootPath, Message: err.Error()}}}
}

// collect appends the leaf causes of ve, which carry the specific messages.
func collect(ve *jsonschema.ValidationError, out *[]Error) {
	if len(ve.Causes) == 0 {
		path := ve.InstanceLocation
		if path == "" {
			path = RootPath
		}
		*out = append(*out, Error{Path: path, Message: cmp.Or(ve.Message, "error")})
		return
	}
	for _, c := range ve.Causes {
		collect(c, out)
	}
}

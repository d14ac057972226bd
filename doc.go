// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jinspect implements the scanner and push parser underlying an
// interactive JSON inspection toolkit.
//
// # Scanning
//
// The Scanner type implements a lexical scanner over a complete JSON source
// text. Call its Next method to iterate over the tokens:
//
//	s := jinspect.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v %q", s.Token(), s.Text())
//	}
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// # Parsing
//
// The Stream type implements an event-driven parser for a single JSON value.
// The parser calls methods on a Handler value to report the structure of the
// input. In case of error, parsing is terminated and an error of concrete
// type *jinspect.SyntaxError is returned:
//
//	s := jinspect.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The methods of a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//
// A SyntaxError reports the 1-based line and column and the 0-based byte
// offset of the failure. Its message has the form "line N column M: ...",
// which the errloc package understands.
//
// # Packages
//
// The ast package builds immutable syntax trees from a Stream. The other
// packages of this module work on those trees: summary computes structural
// statistics, pretty renders a line-addressed pretty-printed view with a
// JSON-Pointer index, fold and search drive the interactive view, diff
// compares two documents, and analysis sequences the whole pipeline on a
// dedicated worker goroutine.
package jinspect

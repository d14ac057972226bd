// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package analysis runs the document analysis pipeline: preparing text in
// the selected mode, parsing it, summarizing the value, and locating
// failures.
//
// Analyze runs the pipeline synchronously. A Worker runs it on a dedicated
// goroutine, serving requests from a channel strictly in order, and keeps
// the last successfully parsed value in a versioned Cell for JSONPath and
// schema requests. A Session sits in front of a Worker on behalf of an
// interactive surface:
//
//	s := analysis.NewSession(ctx, analysis.WithMode(analysis.Lenient))
//	defer s.Close()
//
//	s.Edit(text) // debounced
//	r := <-s.Results()
//	if r.OK {
//	   log.Printf("%d nodes, large=%v", r.Overview.TotalNodes, r.Large)
//	}
//
// Requests are tagged with sequence numbers, and a parse response is
// delivered only if it answers the most recent submission. In-flight work
// is never cancelled; superseded responses are discarded when they arrive.
package analysis

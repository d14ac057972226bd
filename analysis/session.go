// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bep/debounce"
	"github.com/rs/zerolog"
)

// ErrClosed is reported by session methods called after Close.
var ErrClosed = errors.New("session is closed")

// A Result is a parse response accepted by a Session, together with the
// rendering decision made for it.
type Result struct {
	Response

	// Empty reports that the submitted text was blank. The response carries
	// no value and no error, and the viewer should clear its state.
	Empty bool

	// Large reports whether the document should be rendered in
	// large-document mode.
	Large bool
}

// A Session connects an editing surface to a dedicated Worker. Edits are
// debounced and submitted as parse requests tagged with increasing sequence
// numbers; a parse response is delivered only if no later parse has been
// submitted since, so a slow analysis of superseded text never overwrites
// the result for newer text.
//
// The methods of a Session are safe for concurrent use.
type Session struct {
	opts   *options
	log    zerolog.Logger
	worker *Worker
	edit   func(func())

	ctx    context.Context
	cancel context.CancelFunc
	in     chan Request
	out    chan Response
	done   chan struct{} // closed when the goroutines exit

	results chan Result // holds at most the latest undelivered result
	stale   atomic.Int64

	mu      sync.Mutex
	mode    Mode
	seq     uint64                   // last sequence number issued
	latest  uint64                   // sequence of the latest parse request
	pending map[uint64]chan Response // query and validate waiters
}

// NewSession starts a session and its worker. The session runs until ctx
// ends or Close is called.
func NewSession(ctx context.Context, opts ...Option) *Session {
	o := newOptions(opts)
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		opts:    o,
		log:     o.log,
		worker:  &Worker{log: o.log},
		edit:    debounce.New(o.debounce),
		ctx:     ctx,
		cancel:  cancel,
		in:      make(chan Request, 16),
		out:     make(chan Response, 1),
		done:    make(chan struct{}),
		results: make(chan Result, 1),
		mode:    o.mode,
		pending: make(map[uint64]chan Response),
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.worker.Run(ctx, s.in, s.out); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Error().Err(err).Msg("worker exited")
		}
	}()
	go func() {
		defer wg.Done()
		s.dispatch()
	}()
	go func() {
		wg.Wait()
		close(s.done)
	}()
	return s
}

// Close stops the session and waits for its goroutines to exit.
func (s *Session) Close() error {
	s.cancel()
	<-s.done
	return nil
}

// Worker returns the worker serving s.
func (s *Session) Worker() *Worker { return s.worker }

// Results returns the channel on which accepted results are delivered. If
// the consumer falls behind, an undelivered result is replaced by the next
// one, so a receive always yields the newest result available.
func (s *Session) Results() <-chan Result { return s.results }

// Stale reports the number of parse responses discarded as superseded.
func (s *Session) Stale() int64 { return s.stale.Load() }

// Mode reports the current parse mode of s.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode changes the parse mode for subsequent submissions.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// Edit records an edit of the document text. The text is submitted once no
// further edit has arrived for the debounce interval.
func (s *Session) Edit(text string) {
	s.edit(func() {
		if _, err := s.Submit(text); err != nil {
			s.log.Debug().Err(err).Msg("debounced submit")
		}
	})
}

// Submit immediately submits text for analysis and returns its sequence
// number. Blank text is not sent to the worker: it produces an Empty
// result directly, which also supersedes any parse in flight.
func (s *Session) Submit(text string) (uint64, error) {
	s.mu.Lock()
	s.seq++
	seq, mode := s.seq, s.mode
	s.latest = seq
	s.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		s.deliver(Result{Response: Response{Kind: KindResult, Seq: seq, Size: len(text)}, Empty: true})
		return seq, nil
	}
	req := Request{Kind: KindParse, Seq: seq, Text: text, Mode: mode, SampleLimit: s.opts.sampleLimit}
	return seq, s.send(req)
}

// Query evaluates a JSONPath expression against the last successfully
// parsed value and waits for the response. Malformed queries yield an empty
// selection, not an error.
func (s *Session) Query(ctx context.Context, query string) (Response, error) {
	return s.call(ctx, Request{Kind: KindJSONPath, Query: query})
}

// Validate validates the last successfully parsed value against the JSON
// Schema document in schema and waits for the response.
func (s *Session) Validate(ctx context.Context, schema json.RawMessage) (Response, error) {
	return s.call(ctx, Request{Kind: KindValidate, Schema: schema})
}

func (s *Session) call(ctx context.Context, req Request) (Response, error) {
	ch := make(chan Response, 1)
	s.mu.Lock()
	s.seq++
	req.Seq = s.seq
	s.pending[req.Seq] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, req.Seq)
		s.mu.Unlock()
	}()
	if err := s.send(req); err != nil {
		return Response{}, err
	}
	select {
	case rsp := <-ch:
		return rsp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-s.ctx.Done():
		return Response{}, ErrClosed
	}
}

func (s *Session) send(req Request) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case s.in <- req:
		return nil
	case <-s.ctx.Done():
		return ErrClosed
	}
}

// dispatch routes worker responses until the session ends.
func (s *Session) dispatch() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case rsp := <-s.out:
			if rsp.Kind != KindResult {
				s.mu.Lock()
				ch := s.pending[rsp.Seq]
				s.mu.Unlock()
				if ch != nil {
					ch <- rsp // buffered, and only one response per request
				}
				continue
			}

			var total float64
			if rsp.Timings != nil {
				total = rsp.Timings.TotalMs
			}
			r := Result{Response: rsp, Large: LargeMode(rsp.Size, total, s.opts.thresholds)}
			if !s.deliver(r) {
				s.stale.Add(1)
				s.log.Debug().Uint64("seq", rsp.Seq).Msg("discarding stale result")
				if s.opts.onStale != nil {
					s.opts.onStale(rsp)
				}
			}
		}
	}
}

// deliver publishes r if it answers the latest submission, replacing any
// result not yet received, and reports whether it did so.
func (s *Session) deliver(r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Seq != s.latest {
		return false
	}
	if s.opts.onResult != nil {
		s.opts.onResult(r)
	}
	select {
	case <-s.results:
	default:
	}
	s.results <- r // the only sender, holding mu, so there is room
	return true
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package analysis

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiescence window applied to edits.
const DefaultDebounce = 250 * time.Millisecond

// DefaultSampleLimit is the key-presence sample size requested by a Session.
const DefaultSampleLimit = 800

// An Option configures a Session or Worker.
type Option func(*options)

type options struct {
	log         zerolog.Logger
	mode        Mode
	sampleLimit int
	debounce    time.Duration
	thresholds  Thresholds
	onResult    func(Result)
	onStale     func(Response)
}

func newOptions(opts []Option) *options {
	o := &options{
		log:         zerolog.Nop(),
		mode:        Strict,
		sampleLimit: DefaultSampleLimit,
		debounce:    DefaultDebounce,
		thresholds:  DefaultThresholds,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(log zerolog.Logger) Option { return func(o *options) { o.log = log } }

// WithMode sets the parse mode (default Strict).
func WithMode(m Mode) Option { return func(o *options) { o.mode = m } }

// WithSampleLimit sets the key-presence sample size (default
// DefaultSampleLimit).
func WithSampleLimit(n int) Option { return func(o *options) { o.sampleLimit = n } }

// WithDebounce sets the quiescence window for Edit (default
// DefaultDebounce).
func WithDebounce(d time.Duration) Option { return func(o *options) { o.debounce = d } }

// WithThresholds sets the large-document thresholds (default
// DefaultThresholds).
func WithThresholds(th Thresholds) Option { return func(o *options) { o.thresholds = th } }

// OnResult registers f to be called with each accepted result, before it is
// queued on Results. It must not call methods of the session.
func OnResult(f func(Result)) Option { return func(o *options) { o.onResult = f } }

// OnStale registers f to be called with each response discarded because a
// later parse was submitted.
func OnStale(f func(Response)) Option { return func(o *options) { o.onStale = f } }

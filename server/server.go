// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package server exposes analysis sessions over HTTP.
//
// Each websocket connection to /ws owns one analysis.Session. The client
// sends analysis.Request messages as JSON text frames; the server replies
// with parse results as they are accepted, and with one response for each
// jsonpath or validate request. A request of kind "edit" is a parse request
// subject to the session's debounce window.
//
// POST /analyze runs a single analysis of the request body, and /metrics
// serves Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/creachadair/jinspect/analysis"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// KindEdit is the kind of a debounced parse request.
const KindEdit analysis.Kind = "edit"

// Options configure a Server.
type Options struct {
	// Logger receives server and session logs. The zero value discards them.
	Logger *zerolog.Logger

	// Session holds options applied to every analysis session.
	Session []analysis.Option

	// MaxBytes limits the size of a document or message (default
	// analysis.MaxFileBytes).
	MaxBytes int64

	// CheckOrigin, if set, decides whether to accept a websocket handshake.
	// The default accepts same-origin requests only.
	CheckOrigin func(*http.Request) bool
}

// A Server serves analysis sessions.
type Server struct {
	log      zerolog.Logger
	opts     Options
	reg      *prometheus.Registry
	m        *metrics
	upgrader websocket.Upgrader
}

// New constructs a new Server.
func New(opts Options) *Server {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = analysis.MaxFileBytes
	}
	reg := prometheus.NewRegistry()
	return &Server{
		log:  log,
		opts: opts,
		reg:  reg,
		m:    newMetrics(reg),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 << 10,
			WriteBufferSize: 64 << 10,
			CheckOrigin:     opts.CheckOrigin,
		},
	}
}

// Registry returns the registry holding the metrics of s.
func (s *Server) Registry() *prometheus.Registry { return s.reg }

// Handler returns the HTTP handler for s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.serveWS)
	mux.HandleFunc("POST /analyze", s.serveAnalyze)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ListenAndServe serves s on addr until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("serving")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) serveAnalyze(w http.ResponseWriter, r *http.Request) {
	mode, err := analysis.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := analysis.ReadLimited(r.Body, s.opts.MaxBytes)
	if errors.Is(err, analysis.ErrTooLarge) {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.m.requests.WithLabelValues(string(analysis.KindParse)).Inc()
	rsp := analysis.Analyze(text, mode, analysis.DefaultSampleLimit)
	s.observe(rsp)

	data, err := json.Marshal(rsp)
	if err != nil {
		s.log.Error().Err(err).Msg("encode analyze response")
		http.Error(w, "encoding response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(append(data, '\n')); err != nil {
		s.log.Debug().Err(err).Msg("write analyze response")
	}
}

// observe records the metrics for a delivered parse result.
func (s *Server) observe(rsp analysis.Response) {
	outcome := "error"
	if rsp.OK {
		outcome = "ok"
	}
	s.m.results.WithLabelValues(outcome).Inc()
	if t := rsp.Timings; t != nil {
		s.m.duration.WithLabelValues("parse").Observe(t.ParseMs / 1000)
		s.m.duration.WithLabelValues("summarize").Observe(t.SummarizeMs / 1000)
		s.m.duration.WithLabelValues("total").Observe(t.TotalMs / 1000)
	}
}

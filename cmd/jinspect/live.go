// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creachadair/jinspect/analysis"
	"github.com/creachadair/jinspect/internal/tui"
	"github.com/creachadair/jinspect/server"
	"github.com/creachadair/mds/mapset"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type serveCmd struct {
	Addr        string   `help:"Listen address (default from configuration)." short:"a"`
	AllowOrigin []string `help:"Origins allowed to open sessions (* for any)." name:"allow-origin"`
}

func (c *serveCmd) Run(e *env) error {
	addr := c.Addr
	if addr == "" {
		addr = e.cfg.Server.Addr
	}
	srv := server.New(server.Options{
		Logger:      &e.log,
		Session:     e.cfg.SessionOptions(e.log),
		MaxBytes:    e.cfg.Analysis.MaxFileBytes,
		CheckOrigin: checkOrigin(c.AllowOrigin),
	})
	return srv.ListenAndServe(e.ctx, addr)
}

// checkOrigin returns a websocket origin check admitting the given origins,
// or nil for the default same-origin policy if there are none.
func checkOrigin(origins []string) func(*http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := mapset.New(origins...)
	if allowed.Has("*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool { return allowed.Has(r.Header.Get("Origin")) }
}

// watchFile calls update with the contents of path each time it changes,
// until ctx ends. The directory is watched so that editors which save by
// renaming a new file into place are followed.
func watchFile(ctx context.Context, e *env, path string, update func(string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	log := e.log.With().Str("path", path).Logger()
	log.Debug().Msg("watching")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			text, err := e.read(path)
			if err != nil {
				log.Warn().Err(err).Msg("reload failed")
				continue
			}
			log.Debug().Int("bytes", len(text)).Msg("changed")
			update(text)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

type watchCmd struct {
	Format string `help:"Report format (text or json)." enum:"text,json" default:"text" short:"f"`
	File   string `arg:"" help:"File to watch." type:"existingfile"`
}

func (c *watchCmd) Run(e *env) error {
	text, err := e.read(c.File)
	if err != nil {
		return err
	}
	sess := analysis.NewSession(e.ctx, e.cfg.SessionOptions(e.log)...)
	defer sess.Close()
	if _, err := sess.Submit(text); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(e.ctx)
	g.Go(func() error { return watchFile(ctx, e, c.File, sess.Edit) })
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case r := <-sess.Results():
				if err := c.report(e, r); err != nil {
					return err
				}
			}
		}
	})
	return g.Wait()
}

func (c *watchCmd) report(e *env, r analysis.Result) error {
	if c.Format == "json" {
		r.Value = nil // the overview is reported instead
		return json.NewEncoder(e.out).Encode(r)
	}
	var line string
	switch {
	case r.Empty:
		line = "empty"
	case !r.OK:
		line = "error: " + docError(c.File, r.Response).Error()
	default:
		line = fmt.Sprintf("ok: %d bytes, %d nodes, depth %d, %.1fms",
			r.Size, r.Overview.TotalNodes, r.Overview.MaxDepth, r.Timings.TotalMs)
		if r.Large {
			line += " (large)"
		}
	}
	_, err := fmt.Fprintf(e.out, "[%d] %s\n", r.Seq, line)
	return err
}

type viewCmd struct {
	Schema string `help:"JSON Schema to validate against." short:"s" type:"existingfile"`
	Watch  bool   `help:"Reload the file when it changes." short:"w"`
	File   string `arg:"" optional:"" help:"File to view (- for stdin)." default:"-"`
}

func (c *viewCmd) Run(e *env) error {
	text, err := e.read(c.File)
	if err != nil {
		return err
	}
	var schema json.RawMessage
	if c.Schema != "" {
		s, err := e.read(c.Schema)
		if err != nil {
			return err
		}
		schema = json.RawMessage(s)
	}

	ctx, cancel := context.WithCancel(e.ctx)
	defer cancel()

	// The viewer owns the terminal, so session logs are discarded.
	opts := append(e.cfg.SessionOptions(e.log), analysis.WithLogger(zerolog.Nop()))
	sess := analysis.NewSession(ctx, opts...)
	defer sess.Close()

	m := tui.New(ctx, sess, tui.Options{
		Title:  c.File,
		Indent: e.cfg.Render.Indent,
		Schema: schema,
	})
	if _, err := sess.Submit(text); err != nil {
		return err
	}
	if c.Watch && c.File != "-" {
		quiet := *e
		quiet.log = zerolog.Nop()
		go watchFile(ctx, &quiet, c.File, sess.Edit)
	}

	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.File == "-" {
		popts = append(popts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(m, popts...).Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

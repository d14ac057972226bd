// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jinspect/analysis"
	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// CLI is the command-line interface of jinspect.
type CLI struct {
	Config   string `help:"Path of a configuration file." short:"c" type:"path" env:"JINSPECT_CONFIG"`
	Mode     string `help:"Parse mode: strict, lenient, or jwcc." short:"m"`
	LogLevel string `help:"Log level (overrides the configuration)." name:"log-level"`

	Stats    statsCmd    `cmd:"" help:"Summarize the structure of documents."`
	Fmt      fmtCmd      `cmd:"" help:"Pretty-print or compact a document."`
	Query    queryCmd    `cmd:"" help:"Evaluate a JSONPath expression."`
	Validate validateCmd `cmd:"" help:"Validate a document against a JSON Schema."`
	Diff     diffCmd     `cmd:"" help:"Compare two documents."`
	Patch    patchCmd    `cmd:"" help:"Apply diff operations to a document."`
	Share    shareCmd    `cmd:"" help:"Encode or decode share tokens."`
	Serve    serveCmd    `cmd:"" help:"Serve analysis sessions over HTTP."`
	Watch    watchCmd    `cmd:"" help:"Re-analyze a file whenever it changes."`
	View     viewCmd     `cmd:"" help:"Browse a document interactively."`
}

// env is the shared state passed to the Run method of each command.
type env struct {
	ctx  context.Context
	cfg  *config.Config
	log  zerolog.Logger
	in   io.Reader
	out  io.Writer
	errw io.Writer
}

// newEnv loads the configuration and applies the global flags.
func (c *CLI) newEnv(ctx context.Context, in io.Reader, out, errw io.Writer) (*env, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Mode != "" {
		cfg.Analysis.Mode = c.Mode
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := cfg.Logger(errw)
	if err != nil {
		return nil, err
	}
	return &env{ctx: ctx, cfg: cfg, log: log, in: in, out: out, errw: errw}, nil
}

// read returns the contents of path, where "-" denotes standard input.
func (e *env) read(path string) (string, error) {
	if path == "-" {
		return analysis.ReadLimited(e.in, e.cfg.Analysis.MaxFileBytes)
	}
	return analysis.LoadFile(path, e.cfg.Analysis.MaxFileBytes)
}

// parse reads and parses the document at path in the configured mode.
// Syntax errors are reported with their position in the file.
func (e *env) parse(path string) (ast.Value, error) {
	text, err := e.read(path)
	if err != nil {
		return nil, err
	}
	v, err := analysis.Parse(text, e.cfg.Mode())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	e.log.Debug().Str("path", path).Int("bytes", len(text)).Msg("parsed")
	return v, nil
}

// docError reports a failed analysis of the document at path. The message
// of a syntax error already includes its position.
func docError(path string, rsp analysis.Response) error {
	if loc := rsp.Location; loc != nil && !strings.HasPrefix(rsp.Error, "line ") {
		return fmt.Errorf("%s:%d:%d: %s", path, loc.Line, loc.Col, rsp.Error)
	}
	return fmt.Errorf("%s: %s", path, rsp.Error)
}

// emit writes v to the output in the given format, "json" or "yaml".
func (e *env) emit(format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(e.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jinspect/analysis"
	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/diff"
	"github.com/creachadair/jinspect/jpath"
	"github.com/creachadair/jinspect/pretty"
	"github.com/creachadair/jinspect/schema"
	"github.com/creachadair/jinspect/share"
	"github.com/creachadair/jinspect/summary"
	"golang.org/x/sync/errgroup"
)

var (
	errInvalid   = errors.New("document does not match the schema")
	errDifferent = errors.New("documents differ")
)

type statsCmd struct {
	Format string   `help:"Output format (yaml or json)." enum:"yaml,json" default:"yaml" short:"f"`
	Jobs   int      `help:"Maximum number of files analyzed concurrently." default:"4" short:"j"`
	Files  []string `arg:"" optional:"" help:"Files to summarize (- for stdin)." default:"-"`
}

// fileStats is the summary of one file.
type fileStats struct {
	Path     string            `json:"path" yaml:"path"`
	Size     int               `json:"size" yaml:"size"`
	Large    bool              `json:"large,omitempty" yaml:"large,omitempty"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
	Overview *summary.Overview `json:"overview,omitempty" yaml:"overview,omitempty"`
	Timings  *analysis.Timings `json:"timings,omitempty" yaml:"timings,omitempty"`
}

func (c *statsCmd) Run(e *env) error {
	out := make([]fileStats, len(c.Files))
	g, ctx := errgroup.WithContext(e.ctx)
	g.SetLimit(max(c.Jobs, 1))
	for i, path := range c.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := e.read(path)
			if err != nil {
				return err
			}
			rsp := analysis.Analyze(text, e.cfg.Mode(), e.cfg.Analysis.SampleLimit)
			fs := fileStats{Path: path, Size: rsp.Size, Overview: rsp.Overview, Timings: rsp.Timings}
			if rsp.OK {
				fs.Large = analysis.LargeMode(rsp.Size, rsp.Timings.TotalMs, e.cfg.Thresholds())
			} else {
				fs.Error = docError(path, rsp).Error()
			}
			out[i] = fs
			e.log.Debug().Str("path", path).Bool("ok", rsp.OK).Msg("analyzed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var nerr int
	for _, fs := range out {
		if fs.Error != "" {
			nerr++
		}
	}
	var err error
	if len(out) == 1 {
		err = e.emit(c.Format, out[0])
	} else {
		err = e.emit(c.Format, out)
	}
	if err != nil {
		return err
	} else if nerr != 0 {
		return fmt.Errorf("%d of %d documents could not be parsed", nerr, len(out))
	}
	return nil
}

type fmtCmd struct {
	Indent  int    `help:"Indent width (default from configuration)." short:"i"`
	Sort    bool   `help:"Sort object keys." short:"s"`
	Compact bool   `help:"Write compact output on one line." short:"C"`
	File    string `arg:"" optional:"" help:"File to format (- for stdin)." default:"-"`
}

func (c *fmtCmd) Run(e *env) error {
	v, err := e.parse(c.File)
	if err != nil {
		return err
	}
	if c.Sort {
		v = ast.SortKeys(v)
	}
	if c.Compact {
		_, err = fmt.Fprintln(e.out, pretty.Compact(v))
		return err
	}
	indent := c.Indent
	if indent <= 0 {
		indent = e.cfg.Render.Indent
	}
	_, err = fmt.Fprintln(e.out, pretty.Print(v, indent).Text)
	return err
}

type queryCmd struct {
	Format   string `help:"Output format (text, json, or yaml)." enum:"text,json,yaml" default:"text" short:"f"`
	Pointers bool   `help:"Print only the pointers of the results." short:"p"`
	Expr     string `arg:"" help:"JSONPath expression."`
	File     string `arg:"" optional:"" help:"File to query (- for stdin)." default:"-"`
}

func (c *queryCmd) Run(e *env) error {
	v, err := e.parse(c.File)
	if err != nil {
		return err
	}
	rs, err := jpath.Query(v, c.Expr)
	if err != nil {
		return err
	}
	e.log.Debug().Str("query", c.Expr).Int("results", len(rs)).Msg("evaluated")

	switch c.Format {
	case "json":
		out := struct {
			Pointers []string          `json:"pointers"`
			Values   []json.RawMessage `json:"values,omitempty"`
		}{Pointers: jpath.Pointers(rs)}
		if !c.Pointers {
			out.Values = make([]json.RawMessage, len(rs))
			for i, r := range rs {
				out.Values[i] = json.RawMessage(r.Value.JSON())
			}
		}
		return e.emit("json", out)
	case "yaml":
		type entry struct {
			Pointer string `yaml:"pointer"`
			Value   any    `yaml:"value,omitempty"`
		}
		out := make([]entry, len(rs))
		for i, r := range rs {
			out[i].Pointer = r.Pointer
			if !c.Pointers {
				out[i].Value = ast.ToAny(r.Value)
			}
		}
		return e.emit("yaml", out)
	}
	var sb strings.Builder
	for _, r := range rs {
		sb.WriteString(displayPointer(r.Pointer))
		if !c.Pointers {
			sb.WriteByte('\t')
			sb.WriteString(pretty.Compact(r.Value))
		}
		sb.WriteByte('\n')
	}
	_, err = fmt.Fprint(e.out, sb.String())
	return err
}

// displayPointer renders the root pointer visibly.
func displayPointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

type validateCmd struct {
	Schema string `help:"JSON Schema file." short:"s" required:"" type:"existingfile"`
	Format string `help:"Output format (text, json, or yaml)." enum:"text,json,yaml" default:"text" short:"f"`
	File   string `arg:"" optional:"" help:"File to validate (- for stdin)." default:"-"`
}

func (c *validateCmd) Run(e *env) error {
	sch, err := e.parse(c.Schema)
	if err != nil {
		return err
	}
	v, err := e.parse(c.File)
	if err != nil {
		return err
	}
	res := schema.Validate(v, sch)
	switch c.Format {
	case "json", "yaml":
		if err := e.emit(c.Format, res); err != nil {
			return err
		}
	default:
		if res.Valid {
			fmt.Fprintln(e.out, "valid")
		}
		for _, se := range res.Errors {
			fmt.Fprintf(e.out, "%s: %s\n", se.Path, se.Message)
		}
	}
	if !res.Valid {
		return errInvalid
	}
	return nil
}

type diffCmd struct {
	Format string `help:"Output format (json, yaml, or text)." enum:"json,yaml,text" default:"json" short:"f"`
	Check  bool   `help:"Exit with an error if the documents differ."`
	A      string `arg:"" help:"Original document."`
	B      string `arg:"" help:"Modified document."`
}

func (c *diffCmd) Run(e *env) error {
	a, err := e.parse(c.A)
	if err != nil {
		return err
	}
	b, err := e.parse(c.B)
	if err != nil {
		return err
	}
	ops := diff.Diff(a, b)
	if ops == nil {
		ops = []diff.Op{}
	}
	switch c.Format {
	case "text":
		for _, op := range ops {
			line := fmt.Sprintf("%-7s %s", op.Op, displayPointer(op.Path))
			if op.Value != nil {
				line += " " + pretty.Preview(op.Value, 60)
			}
			fmt.Fprintln(e.out, line)
		}
	default:
		if err := e.emit(c.Format, ops); err != nil {
			return err
		}
	}
	if c.Check && len(ops) != 0 {
		return errDifferent
	}
	return nil
}

type patchCmd struct {
	Inverse bool   `help:"Print the operations that undo the patch instead of the patched document."`
	Indent  int    `help:"Indent width (default from configuration)." short:"i"`
	File    string `arg:"" help:"Document to patch."`
	Ops     string `arg:"" optional:"" help:"File of operations, as written by diff (- for stdin)." default:"-"`
}

func (c *patchCmd) Run(e *env) error {
	v, err := e.parse(c.File)
	if err != nil {
		return err
	}
	raw, err := e.parse(c.Ops)
	if err != nil {
		return err
	}
	ops, err := diff.ParseOps(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Ops, err)
	}
	out, err := diff.Apply(v, ops)
	if err != nil {
		return err
	}
	if c.Inverse {
		inv, err := diff.Invert(v, ops)
		if err != nil {
			return err
		}
		if inv == nil {
			inv = []diff.Op{}
		}
		return e.emit("json", inv)
	}
	indent := c.Indent
	if indent <= 0 {
		indent = e.cfg.Render.Indent
	}
	_, err = fmt.Fprintln(e.out, pretty.Print(out, indent).Text)
	return err
}

type shareCmd struct {
	Encode shareEncodeCmd `cmd:"" help:"Encode a document as a share token."`
	Decode shareDecodeCmd `cmd:"" help:"Decode a share token."`
}

type shareEncodeCmd struct {
	File string `arg:"" optional:"" help:"File to encode (- for stdin)." default:"-"`
}

func (c *shareEncodeCmd) Run(e *env) error {
	text, err := e.read(c.File)
	if err != nil {
		return err
	}
	tok, err := share.Encode(text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, tok)
	return err
}

type shareDecodeCmd struct {
	Strict bool   `help:"Fail if the token is not a share token, instead of printing it as-is."`
	Token  string `arg:"" help:"Token to decode."`
}

func (c *shareDecodeCmd) Run(e *env) error {
	if !c.Strict {
		_, err := fmt.Fprint(e.out, share.Decode(c.Token))
		return err
	}
	text, err := share.DecodeStrict(c.Token)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(e.out, text)
	return err
}

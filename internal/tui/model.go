// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package tui implements the interactive terminal viewer of jinspect.
//
// The viewer displays the pretty-printed rendering of the latest accepted
// parse result of an analysis session, with foldable regions, incremental
// text search, and JSONPath queries whose results become navigable matches.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/creachadair/jinspect/analysis"
	"github.com/creachadair/jinspect/fold"
	"github.com/creachadair/jinspect/pretty"
	"github.com/creachadair/jinspect/search"
)

// Options configure a Model.
type Options struct {
	Title  string          // shown in the status line
	Indent int             // pretty-printing indent (default 2)
	Schema json.RawMessage // if set, each accepted value is validated
	Keys   *KeyMap         // default DefaultKeyMap
}

// inputMode records what the text input is being used for.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputQuery
)

// A document is the displayed state of one accepted parse result.
type document struct {
	result analysis.Result
	pretty pretty.Result
	view   *fold.View
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx  context.Context
	sess *analysis.Session
	opts Options
	keys KeyMap

	width, height int
	vp            viewport.Model
	input         textinput.Model
	help          help.Model
	mode          inputMode

	doc    *document
	rows   []fold.Row
	cursor int // index into rows

	searchOpts search.Options
	query      string // last committed search query
	matches    *search.Cursor
	byLine     map[int][]search.Match

	status    string
	errText   string
	searchErr string
	invalid   int // schema errors for the current document, -1 if unchecked
}

// resultMsg carries a parse result accepted by the session.
type resultMsg analysis.Result

// queryMsg carries the response to a JSONPath or validate request.
type queryMsg struct {
	kind analysis.Kind
	rsp  analysis.Response
	err  error
}

// New constructs a viewer for the results of sess. The caller remains
// responsible for submitting text to sess and for closing it.
func New(ctx context.Context, sess *analysis.Session, opts Options) *Model {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	keys := DefaultKeyMap
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	in := textinput.New()
	in.CharLimit = 512
	return &Model{
		ctx:     ctx,
		sess:    sess,
		opts:    opts,
		keys:    keys,
		vp:      viewport.New(0, 0),
		input:   in,
		help:    help.New(),
		invalid: -1,
	}
}

// Init satisfies tea.Model.
func (m *Model) Init() tea.Cmd { return m.waitResult() }

// waitResult returns a command that delivers the next session result.
func (m *Model) waitResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case r := <-m.sess.Results():
			return resultMsg(r)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update satisfies tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case resultMsg:
		cmd := m.accept(analysis.Result(msg))
		return m, tea.Batch(m.waitResult(), cmd)

	case queryMsg:
		m.applyQuery(msg)
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m, m.updateInput(msg)
		}
		return m, m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-max(1, m.vp.Height))
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(max(1, m.vp.Height))
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.rows))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(false)
	case key.Matches(msg, m.keys.ToggleAll):
		m.toggle(true)
	case key.Matches(msg, m.keys.Collapse):
		if m.doc != nil {
			line := m.cursorLine()
			m.doc.view.CollapseAll()
			m.refresh(line)
		}
	case key.Matches(msg, m.keys.Expand):
		if m.doc != nil {
			line := m.cursorLine()
			m.doc.view.ExpandAll()
			m.refresh(line)
		}
	case key.Matches(msg, m.keys.Search):
		m.openInput(inputSearch, "/", m.query)
		return textinput.Blink
	case key.Matches(msg, m.keys.Query):
		m.openInput(inputQuery, "$ ", "")
		return textinput.Blink
	case key.Matches(msg, m.keys.Next):
		m.step(m.matches.Next)
	case key.Matches(msg, m.keys.Prev):
		m.step(m.matches.Prev)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return nil
	case key.Matches(msg, m.keys.Commit):
		text, mode := m.input.Value(), m.mode
		m.closeInput()
		if mode == inputQuery {
			return m.runQuery(text)
		}
		m.setSearch(text)
		m.step(m.matches.Next)
		return nil
	case m.mode == inputSearch && key.Matches(msg, m.keys.Regex):
		m.searchOpts.Regex = !m.searchOpts.Regex
	case m.mode == inputSearch && key.Matches(msg, m.keys.Case):
		m.searchOpts.CaseSensitive = !m.searchOpts.CaseSensitive
	case m.mode == inputSearch && key.Matches(msg, m.keys.WholeWord):
		m.searchOpts.WholeWord = !m.searchOpts.WholeWord
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.mode == inputSearch {
			m.setSearch(m.input.Value())
		}
		return cmd
	}
	m.setSearch(m.input.Value())
	return nil
}

func (m *Model) openInput(mode inputMode, prompt, value string) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.resize()
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.resize()
}

// accept installs a new parse result as the displayed document. A failed
// parse keeps the previous document on screen and reports the error.
func (m *Model) accept(r analysis.Result) tea.Cmd {
	switch {
	case r.Empty:
		m.doc, m.rows, m.cursor = nil, nil, 0
		m.errText, m.status = "", "empty document"
		m.setSearch(m.query)
		m.render()
		return nil
	case !r.OK:
		m.errText = r.Error
		if r.Location != nil {
			m.errText = fmt.Sprintf("%d:%d: %s", r.Location.Line, r.Location.Col, r.Error)
		}
		m.render()
		return nil
	}

	line := m.cursorLine()
	pr := pretty.Print(r.Value, m.opts.Indent)
	doc := &document{result: r, pretty: pr, view: fold.NewView(pr.Text)}
	if r.Large {
		// Large documents open with only the top level expanded.
		doc.view.CollapseAll()
		doc.view.Toggle(0, false)
	}
	m.doc, m.errText, m.invalid = doc, "", -1
	m.status = describe(r)
	m.setSearch(m.query)
	m.refresh(line)

	if len(m.opts.Schema) != 0 {
		return m.runValidate()
	}
	return nil
}

func (m *Model) runQuery(q string) tea.Cmd {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	if !strings.HasPrefix(q, "$") {
		q = "$" + q
	}
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		rsp, err := sess.Query(ctx, q)
		return queryMsg{kind: analysis.KindJSONPath, rsp: rsp, err: err}
	}
}

func (m *Model) runValidate() tea.Cmd {
	ctx, sess, schema := m.ctx, m.sess, m.opts.Schema
	return func() tea.Msg {
		rsp, err := sess.Validate(ctx, schema)
		return queryMsg{kind: analysis.KindValidate, rsp: rsp, err: err}
	}
}

// applyQuery turns the pointers reported by a JSONPath query, or the paths
// of schema errors, into the navigable match set.
func (m *Model) applyQuery(msg queryMsg) {
	if msg.err != nil {
		m.errText = msg.err.Error()
		return
	} else if m.doc == nil {
		return
	}
	var ptrs []string
	switch msg.kind {
	case analysis.KindJSONPath:
		ptrs = msg.rsp.Pointers
		m.status = fmt.Sprintf("%s: %d result(s)", msg.rsp.Query, len(ptrs))
	case analysis.KindValidate:
		m.invalid = len(msg.rsp.Errors)
		for _, e := range msg.rsp.Errors {
			ptrs = append(ptrs, e.Path)
		}
		m.status = describe(m.doc.result)
		if !msg.rsp.Valid {
			m.errText = fmt.Sprintf("schema: %s: %s", msg.rsp.Errors[0].Path, msg.rsp.Errors[0].Message)
		}
	}
	lines := m.doc.view.Lines()
	var ms []search.Match
	for _, p := range ptrs {
		if n, ok := m.doc.pretty.Line(p); ok && n < len(lines) {
			ms = append(ms, search.Match{Line: n, Start: 0, End: len(lines[n])})
		}
	}
	m.setMatches(ms)
	if msg.kind == analysis.KindJSONPath {
		m.step(m.matches.Next)
	}
	m.render()
}

// setSearch recompiles the search for q against the current document.
func (m *Model) setSearch(q string) {
	m.query = q
	if m.doc == nil {
		m.setMatches(nil)
		return
	}
	mt, err := search.Compile(q, m.searchOpts)
	if err != nil {
		m.searchErr = err.Error()
		m.setMatches(nil)
		m.render()
		return
	}
	m.searchErr = ""
	m.setMatches(mt.Scan(m.doc.view.Lines()))
	m.render()
}

func (m *Model) setMatches(ms []search.Match) {
	var r search.Revealer
	if m.doc != nil {
		r = m.doc.view
	}
	m.matches = search.NewCursor(ms, r)
	m.byLine = search.ByLine(ms)
}

// step moves the match cursor with f and places the row cursor on the
// line of the new active match.
func (m *Model) step(f func() (search.Match, bool)) {
	if m.matches == nil || m.doc == nil {
		return
	}
	if mt, ok := f(); ok {
		m.refresh(mt.Line)
	}
}

func (m *Model) toggle(recursive bool) {
	if m.doc == nil || len(m.rows) == 0 {
		return
	}
	line := m.rows[m.cursor].Line
	if m.doc.view.Toggle(line, recursive) {
		if r, ok := m.doc.view.Index().Resolve(line); ok {
			line = r.StartLine
		}
		m.refresh(line)
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.render()
}

// cursorLine reports the text line under the row cursor.
func (m *Model) cursorLine() int {
	if m.cursor < len(m.rows) {
		return m.rows[m.cursor].Line
	}
	return 0
}

// refresh recomputes the visible rows and places the cursor on the row that
// covers line.
func (m *Model) refresh(line int) {
	if m.doc == nil {
		m.rows, m.cursor = nil, 0
		m.render()
		return
	}
	m.rows = m.doc.view.Rows()
	m.cursor = 0
	for i, r := range m.rows {
		if r.Line <= line && line <= r.End {
			m.cursor = i
			break
		} else if r.Line > line {
			m.cursor = max(i-1, 0)
			break
		}
	}
	m.render()
}

func (m *Model) resize() {
	footer := 1 + lipgloss.Height(m.help.View(m.keys))
	if m.mode != inputNone {
		footer++
	}
	m.vp.Width = m.width
	m.vp.Height = max(m.height-footer, 1)
	m.render()
}

// render updates the content of the viewport and scrolls so that the row
// cursor is visible.
func (m *Model) render() {
	var sb strings.Builder
	active, hasActive := search.Match{}, false
	if m.matches != nil {
		active, hasActive = m.matches.Active()
	}
	for i, row := range m.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		activeStart := -1
		if hasActive && active.Line == row.Line {
			activeStart = active.Start
		}
		large := m.doc != nil && m.doc.result.Large
		sb.WriteString(renderRow(row, i == m.cursor, m.byLine[row.Line], activeStart, large))
	}
	m.vp.SetContent(sb.String())

	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if h := m.vp.Height; h > 0 && m.cursor >= m.vp.YOffset+h {
		m.vp.SetYOffset(m.cursor - h + 1)
	}
}

// View satisfies tea.Model.
func (m *Model) View() string {
	var parts []string
	if m.doc == nil && m.errText == "" {
		parts = append(parts, gutterStyle.Render("waiting for input…"))
	} else {
		parts = append(parts, m.vp.View())
	}
	parts = append(parts, m.statusLine())
	if m.mode != inputNone {
		parts = append(parts, m.input.View()+" "+gutterStyle.Render(m.searchFlags()))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) statusLine() string {
	if m.errText != "" {
		return errorStyle.Render(m.errText)
	} else if m.searchErr != "" {
		return errorStyle.Render(m.searchErr)
	}
	var ss []string
	if m.opts.Title != "" {
		ss = append(ss, m.opts.Title)
	}
	if m.status != "" {
		ss = append(ss, m.status)
	}
	if m.invalid == 0 {
		ss = append(ss, "schema ok")
	}
	if m.matches != nil && m.matches.Len() > 0 {
		ss = append(ss, fmt.Sprintf("match %d/%d", m.matches.Index()+1, m.matches.Len()))
	}
	return statusStyle.Render(strings.Join(ss, " · "))
}

func (m *Model) searchFlags() string {
	flag := func(on bool, s string) string {
		if on {
			return "[" + s + "]"
		}
		return " " + s + " "
	}
	if m.mode != inputSearch {
		return ""
	}
	return flag(m.searchOpts.Regex, ".*") + flag(m.searchOpts.CaseSensitive, "Aa") + flag(m.searchOpts.WholeWord, "\\b")
}

// describe summarizes a successful result for the status line.
func describe(r analysis.Result) string {
	s := fmt.Sprintf("%d bytes", r.Size)
	if ov := r.Overview; ov != nil {
		s += fmt.Sprintf(", %d nodes, depth %d", ov.TotalNodes, ov.MaxDepth)
	}
	if t := r.Timings; t != nil {
		s += fmt.Sprintf(", %.1fms", t.TotalMs)
	}
	if r.Large {
		s += " (large)"
	}
	return s
}

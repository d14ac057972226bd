// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creachadair/jinspect/analysis"
	"github.com/google/go-cmp/cmp"
)

const testDoc = `{"a":[1,2],"b":"x"}`

// newTestModel returns a sized model displaying the analysis of text.
func newTestModel(t *testing.T, text string, opts Options) (*Model, *analysis.Session) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sess := analysis.NewSession(ctx)
	t.Cleanup(func() { sess.Close() })
	m := New(ctx, sess, opts)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if _, err := sess.Submit(text); err != nil {
		t.Fatalf("Submit: unexpected error: %v", err)
	}
	select {
	case r := <-sess.Results():
		m.Update(resultMsg(r))
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for a result")
	}
	return m, sess
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// rowText returns the texts of the visible rows of m.
func rowText(m *Model) []string {
	var out []string
	for _, r := range m.rows {
		out = append(out, r.Text)
	}
	return out
}

func TestFolding(t *testing.T) {
	m, _ := newTestModel(t, testDoc, Options{})

	full := []string{`{`, `  "a": [`, `    1,`, `    2`, `  ],`, `  "b": "x"`, `}`}
	if diff := cmp.Diff(full, rowText(m)); diff != "" {
		t.Fatalf("Initial rows (-want, +got):\n%s", diff)
	}

	// Fold the array on the second row.
	m.Update(runes("j"))
	m.Update(space)
	want := []string{`{`, `  "a": […],`, `  "b": "x"`, `}`}
	if diff := cmp.Diff(want, rowText(m)); diff != "" {
		t.Errorf("After fold (-want, +got):\n%s", diff)
	}
	if m.cursor != 1 {
		t.Errorf("Cursor: got %d, want 1", m.cursor)
	}

	m.Update(runes("c"))
	if diff := cmp.Diff([]string{`{…}`}, rowText(m)); diff != "" {
		t.Errorf("After collapse all (-want, +got):\n%s", diff)
	}

	m.Update(runes("e"))
	if diff := cmp.Diff(full, rowText(m)); diff != "" {
		t.Errorf("After expand all (-want, +got):\n%s", diff)
	}
}

func TestSearchReveals(t *testing.T) {
	m, _ := newTestModel(t, testDoc, Options{})

	m.Update(runes("c"))
	m.Update(runes("/"))
	if m.mode != inputSearch {
		t.Fatalf("Mode: got %v, want search", m.mode)
	}
	m.Update(runes("2"))
	m.Update(enter)

	if m.mode != inputNone {
		t.Errorf("Mode after enter: got %v, want none", m.mode)
	}
	if got := m.matches.Len(); got != 1 {
		t.Fatalf("Matches: got %d, want 1", got)
	}
	// The match is on line 3, inside two collapsed regions.
	if got := m.rows[m.cursor].Line; got != 3 {
		t.Errorf("Cursor line: got %d, want 3", got)
	}
	if got := m.doc.view.Collapsed(); len(got) != 0 {
		t.Errorf("Collapsed after reveal: got %v, want none", got)
	}
	if v := m.View(); !strings.Contains(v, "match 1/1") {
		t.Errorf("View does not report the match:\n%s", v)
	}
}

func TestSearchCancel(t *testing.T) {
	m, _ := newTestModel(t, testDoc, Options{})

	m.Update(runes("/"))
	m.Update(runes("("))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}, Alt: true})
	if !m.searchOpts.Regex {
		t.Error("Regex option was not enabled")
	}
	if m.searchErr == "" {
		t.Error("Invalid regexp was not reported")
	}
	m.Update(esc)
	if m.mode != inputNone {
		t.Errorf("Mode after esc: got %v, want none", m.mode)
	}
}

func TestQuery(t *testing.T) {
	m, _ := newTestModel(t, testDoc, Options{})

	m.Update(runes(":"))
	for _, r := range ".a[*]" {
		m.Update(runes(string(r)))
	}
	_, cmd := m.Update(enter)
	if cmd == nil {
		t.Fatal("Query did not return a command")
	}
	msg, ok := cmd().(queryMsg)
	if !ok {
		t.Fatalf("Command result: got %T, want queryMsg", msg)
	}
	if msg.err != nil {
		t.Fatalf("Query: unexpected error: %v", msg.err)
	}
	m.Update(msg)

	var lines []int
	for _, mt := range m.matches.Matches() {
		lines = append(lines, mt.Line)
	}
	if diff := cmp.Diff([]int{2, 3}, lines); diff != "" {
		t.Errorf("Query match lines (-want, +got):\n%s", diff)
	}
	if got := m.rows[m.cursor].Line; got != 2 {
		t.Errorf("Cursor line: got %d, want 2", got)
	}
}

func TestSchema(t *testing.T) {
	schema := json.RawMessage(`{"properties":{"b":{"type":"number"}}}`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := analysis.NewSession(ctx)
	defer sess.Close()
	m := New(ctx, sess, Options{Schema: schema})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if _, err := sess.Submit(testDoc); err != nil {
		t.Fatalf("Submit: unexpected error: %v", err)
	}
	_, cmd := m.Update(resultMsg(<-sess.Results()))
	if cmd == nil {
		t.Fatal("Accepting a result did not return a command")
	}
	// Run the validation directly rather than through the batch.
	msg := m.runValidate()().(queryMsg)
	m.Update(msg)

	if m.invalid != 1 {
		t.Errorf("Schema errors: got %d, want 1", m.invalid)
	}
	if !strings.Contains(m.errText, "/b") {
		t.Errorf("Error text %q does not mention /b", m.errText)
	}
	if got := m.matches.Len(); got != 1 || m.matches.Matches()[0].Line != 5 {
		t.Errorf("Matches: got %+v, want one on line 5", m.matches.Matches())
	}
}

func TestErrorKeepsDocument(t *testing.T) {
	m, sess := newTestModel(t, testDoc, Options{})

	if _, err := sess.Submit(`{"a":`); err != nil {
		t.Fatalf("Submit: unexpected error: %v", err)
	}
	m.Update(resultMsg(<-sess.Results()))
	if m.errText == "" {
		t.Error("Parse error was not reported")
	}
	if len(m.rows) != 7 {
		t.Errorf("Rows after error: got %d, want 7", len(m.rows))
	}

	if _, err := sess.Submit("  "); err != nil {
		t.Fatalf("Submit: unexpected error: %v", err)
	}
	m.Update(resultMsg(<-sess.Results()))
	if m.doc != nil || len(m.rows) != 0 {
		t.Errorf("Empty result did not clear the document: %d rows", len(m.rows))
	}
}

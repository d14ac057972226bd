// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the viewer.
type KeyMap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Collapse  key.Binding
	Expand    key.Binding
	Search    key.Binding
	Query     key.Binding
	Next      key.Binding
	Prev      key.Binding
	Regex     key.Binding
	Case      key.Binding
	WholeWord key.Binding
	Help      key.Binding
	Cancel    key.Binding
	Commit    key.Binding
}

// DefaultKeyMap is the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
	Top:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("space", "fold")),
	ToggleAll: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "fold nested")),
	Collapse:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
	Expand:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Query:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "jsonpath")),
	Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
	Prev:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
	Regex:     key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "regexp")),
	Case:      key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "match case")),
	WholeWord: key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "whole word")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
}

// ShortHelp satisfies help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Search, k.Query, k.Next, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Toggle, k.ToggleAll, k.Collapse, k.Expand},
		{k.Search, k.Query, k.Next, k.Prev},
		{k.Regex, k.Case, k.WholeWord, k.Help, k.Quit},
	}
}

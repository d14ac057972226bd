// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/creachadair/jinspect/highlight"
)

var (
	keyColor    = lipgloss.AdaptiveColor{Light: "#0550ae", Dark: "#79c0ff"}
	stringColor = lipgloss.AdaptiveColor{Light: "#0a3069", Dark: "#a5d6ff"}
	numberColor = lipgloss.AdaptiveColor{Light: "#953800", Dark: "#ffa657"}
	constColor  = lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#d2a8ff"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#8b949e"}
	accentColor = lipgloss.Color("#0d7377")

	tokenStyles = map[highlight.Kind]lipgloss.Style{
		highlight.Plain:  lipgloss.NewStyle(),
		highlight.Punct:  lipgloss.NewStyle().Foreground(mutedColor),
		highlight.Key:    lipgloss.NewStyle().Foreground(keyColor),
		highlight.String: lipgloss.NewStyle().Foreground(stringColor),
		highlight.Number: lipgloss.NewStyle().Foreground(numberColor),
		highlight.Bool:   lipgloss.NewStyle().Foreground(constColor),
		highlight.Null:   lipgloss.NewStyle().Foreground(constColor).Italic(true),
	}

	matchStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#5c4b00"))
	activeStyle = lipgloss.NewStyle().Background(lipgloss.Color("#d29922")).Foreground(lipgloss.Color("#000000"))

	gutterStyle = lipgloss.NewStyle().Foreground(mutedColor)
	cursorStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)

	statusStyle = lipgloss.NewStyle().
		Background(accentColor).
		Foreground(lipgloss.Color("#f8f7f4")).
		Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f85149")).
		Bold(true)
)

// segmentStyle returns the style of a highlighted segment.
func segmentStyle(seg highlight.Segment) lipgloss.Style {
	st := tokenStyles[seg.Kind]
	switch {
	case seg.Active:
		return activeStyle
	case seg.Match:
		return st.Background(matchStyle.GetBackground())
	}
	return st
}

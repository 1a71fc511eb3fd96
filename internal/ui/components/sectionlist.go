// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the docchat TUI.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/registry"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// SectionList is the selectable list of document sections.
//
// Deleting is a two-step interaction: "d" arms the confirmation on the
// selected row, "y" commits, anything else disarms. The delete itself is
// only applied after the backend confirms; the row stays until then.
type SectionList struct {
	theme *styles.Theme
	width int

	entries  []registry.Entry
	activeID string
	cursor   int

	confirmingDelete bool
	pendingDelete    string
	confirmingFlush  bool
}

// NewSectionList creates an empty section list.
func NewSectionList(theme *styles.Theme) *SectionList {
	return &SectionList{theme: theme}
}

// SetWidth updates the render width.
func (l *SectionList) SetWidth(width int) {
	l.width = width
}

// SetEntries replaces the listed entries and clamps the cursor.
func (l *SectionList) SetEntries(entries []registry.Entry, activeID string) {
	l.entries = entries
	l.activeID = activeID
	if l.cursor >= len(entries) {
		l.cursor = len(entries) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	// Entries changed under an armed confirmation; disarm rather than risk
	// confirming against the wrong row.
	l.confirmingDelete = false
	l.pendingDelete = ""
	l.confirmingFlush = false
}

// Selected returns the entry under the cursor.
func (l *SectionList) Selected() (registry.Entry, bool) {
	if len(l.entries) == 0 {
		return registry.Entry{}, false
	}
	return l.entries[l.cursor], true
}

// Update handles key input while the list has focus.
func (l *SectionList) Update(msg tea.Msg) (*SectionList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if l.confirmingDelete {
		switch keyMsg.String() {
		case "y", "Y":
			id := l.pendingDelete
			l.confirmingDelete = false
			l.pendingDelete = ""
			return l, func() tea.Msg { return DeleteSectionMsg{SessionID: id} }
		default:
			l.confirmingDelete = false
			l.pendingDelete = ""
			return l, nil
		}
	}

	if l.confirmingFlush {
		l.confirmingFlush = false
		if s := keyMsg.String(); s == "y" || s == "Y" {
			return l, func() tea.Msg { return FlushRequestMsg{} }
		}
		return l, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.entries)-1 {
			l.cursor++
		}
	case "enter":
		if entry, ok := l.Selected(); ok {
			return l, func() tea.Msg { return ActivateSectionMsg{SessionID: entry.SessionID} }
		}
	case "d":
		if entry, ok := l.Selected(); ok {
			l.confirmingDelete = true
			l.pendingDelete = entry.SessionID
		}
	case "D":
		if len(l.entries) > 0 {
			l.confirmingFlush = true
		}
	}

	return l, nil
}

// View renders the list.
func (l *SectionList) View() string {
	var b strings.Builder

	if len(l.entries) == 0 {
		b.WriteString(l.theme.SectionEmpty.Render("No documents yet. Upload one to start."))
		return l.theme.SectionList.Width(l.width).Render(b.String())
	}

	nameWidth := l.width - 12
	if nameWidth < 10 {
		nameWidth = 10
	}

	for i, entry := range l.entries {
		name := util.TruncateString(util.SanitizeLine(entry.DisplayName), nameWidth)

		marker := "  "
		if entry.SessionID == l.activeID {
			marker = "* "
		}
		line := marker + name

		style := l.theme.SectionItem
		switch {
		case i == l.cursor && l.confirmingDelete:
			line += "  delete? y/n"
			style = l.theme.SectionSelected
		case i == l.cursor:
			style = l.theme.SectionSelected
		case entry.SessionID == l.activeID:
			style = l.theme.SectionActive
		}

		// Pad to the full row so the cursor highlight spans the list.
		line = util.PadString(line, l.width-4)

		b.WriteString(style.Render(line))
		if i < len(l.entries)-1 {
			b.WriteByte('\n')
		}
	}

	if l.confirmingFlush {
		b.WriteByte('\n')
		b.WriteString(l.theme.SectionEmpty.Render("delete ALL documents? y/n"))
	}

	return l.theme.SectionList.Width(l.width).Render(b.String())
}

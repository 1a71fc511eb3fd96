// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the docchat TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// Navbar is the top application bar: brand, active section, mode hint.
type Navbar struct {
	theme *styles.Theme
	width int

	sectionName string
}

// NewNavbar creates a navbar.
func NewNavbar(theme *styles.Theme) *Navbar {
	return &Navbar{theme: theme}
}

// SetWidth updates the render width.
func (n *Navbar) SetWidth(width int) {
	n.width = width
}

// SetSection sets the displayed active section name. Empty means no
// section is active.
func (n *Navbar) SetSection(name string) {
	n.sectionName = name
}

// View renders the bar.
func (n *Navbar) View() string {
	title := n.theme.NavbarTitle.Render("docchat")

	section := "no document"
	if n.sectionName != "" {
		// Display names come from uploaded file names; keep the bar to a
		// single clean line whatever they contain.
		section = util.TruncateString(util.SanitizeLine(n.sectionName), 40)
	}
	sectionView := n.theme.NavbarSection.Render(section)

	mode := "light"
	if n.theme.IsDark {
		mode = "dark"
	}
	hint := n.theme.NavbarHint.Render("ctrl+t " + mode)

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", sectionView)

	gap := n.width - lipgloss.Width(left) - lipgloss.Width(hint) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return n.theme.Navbar.Width(n.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, left, spacer, hint))
}

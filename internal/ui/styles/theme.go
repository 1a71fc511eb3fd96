// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the docchat TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Mode and terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	palette Palette

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// NAVBAR STYLES
	// ==========================================================================

	Navbar        lipgloss.Style
	NavbarTitle   lipgloss.Style
	NavbarSection lipgloss.Style
	NavbarHint    lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	SenderTag  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	InputDisabled    lipgloss.Style

	// ==========================================================================
	// SECTION LIST STYLES
	// ==========================================================================

	SectionList     lipgloss.Style
	SectionItem     lipgloss.Style
	SectionActive   lipgloss.Style
	SectionSelected lipgloss.Style
	SectionEmpty    lipgloss.Style

	// ==========================================================================
	// UPLOAD PANEL STYLES
	// ==========================================================================

	UploadBox    lipgloss.Style
	UploadTitle  lipgloss.Style
	UploadHint   lipgloss.Style
	UploadActive lipgloss.Style

	// ==========================================================================
	// ERROR MODAL STYLES
	// ==========================================================================

	ModalBox     lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalMessage lipgloss.Style
	ModalButton  lipgloss.Style

	// ==========================================================================
	// SPINNER AND STATUS STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a theme for the given mode.
func NewTheme(dark bool) *Theme {
	t := &Theme{
		IsDark:       dark,
		ColorProfile: termenv.ColorProfile(),
		palette:      PaletteFor(dark),
	}
	t.initStyles()
	return t
}

// SetDark switches palettes and rebuilds every style.
func (t *Theme) SetDark(dark bool) {
	t.IsDark = dark
	t.palette = PaletteFor(dark)
	t.initStyles()
}

// Palette exposes the active palette for components that render raw text.
func (t *Theme) Palette() Palette {
	return t.palette
}

// initStyles initializes all the lip gloss styles from the active palette.
func (t *Theme) initStyles() {
	p := t.palette

	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Navbar
	t.Navbar = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Brand).
		Background(p.SurfaceDim).
		Padding(0, 2)

	t.NavbarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.NavbarSection = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	t.NavbarHint = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.BubbleBorderFg).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(p.BotBubbleFg).
		Background(p.BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.BubbleBorderFg).
		Padding(0, 2).
		MarginRight(4)

	t.SenderTag = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Brand).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	t.InputDisabled = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Section list
	t.SectionList = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)

	t.SectionItem = lipgloss.NewStyle().
		Foreground(p.TextPrimary).
		Padding(0, 1)

	t.SectionActive = lipgloss.NewStyle().
		Foreground(p.Brand).
		Bold(true).
		Padding(0, 1)

	t.SectionSelected = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextInverse).
		Bold(true).
		Padding(0, 1)

	t.SectionEmpty = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true).
		Padding(0, 1)

	// Upload panel
	t.UploadBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(1, 2)

	t.UploadTitle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.UploadHint = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.UploadActive = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	// Error modal
	t.ModalBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.Danger).
		Background(p.Surface).
		Padding(1, 3)

	t.ModalTitle = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)

	t.ModalMessage = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	t.ModalButton = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Danger).
		Bold(true).
		Padding(0, 2)

	// Spinner and status
	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	t.StatusBar = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Brand).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

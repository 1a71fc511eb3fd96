// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the docchat TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is one complete color scheme. The dark-mode toggle swaps whole
// palettes rather than relying on terminal background detection, so the
// persisted preference always wins.
type Palette struct {
	// Accents
	Accent     lipgloss.Color
	AccentSoft lipgloss.Color
	Brand      lipgloss.Color

	// Semantic
	Danger     lipgloss.Color
	DangerDeep lipgloss.Color
	Warning    lipgloss.Color
	Success    lipgloss.Color

	// Surfaces
	Surface    lipgloss.Color
	SurfaceDim lipgloss.Color
	Overlay    lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	// Message bubbles
	UserBubbleBg   lipgloss.Color
	UserBubbleFg   lipgloss.Color
	BotBubbleBg    lipgloss.Color
	BotBubbleFg    lipgloss.Color
	BubbleBorderFg lipgloss.Color
}

// DarkPalette is the default scheme.
var DarkPalette = Palette{
	Accent:     lipgloss.Color("#A78BFA"),
	AccentSoft: lipgloss.Color("#4C1D95"),
	Brand:      lipgloss.Color("#22D3EE"),

	Danger:     lipgloss.Color("#FB7185"),
	DangerDeep: lipgloss.Color("#881337"),
	Warning:    lipgloss.Color("#FBBF24"),
	Success:    lipgloss.Color("#34D399"),

	Surface:    lipgloss.Color("#1E1E2E"),
	SurfaceDim: lipgloss.Color("#181825"),
	Overlay:    lipgloss.Color("#313244"),

	TextPrimary:   lipgloss.Color("#CDD6F4"),
	TextSecondary: lipgloss.Color("#A6ADC8"),
	TextMuted:     lipgloss.Color("#6C7086"),
	TextInverse:   lipgloss.Color("#1E1E2E"),

	UserBubbleBg:   lipgloss.Color("#1D4ED8"),
	UserBubbleFg:   lipgloss.Color("#E0F2FE"),
	BotBubbleBg:    lipgloss.Color("#3B3655"),
	BotBubbleFg:    lipgloss.Color("#E9E4F5"),
	BubbleBorderFg: lipgloss.Color("#A78BFA"),
}

// LightPalette mirrors DarkPalette for light backgrounds.
var LightPalette = Palette{
	Accent:     lipgloss.Color("#7C3AED"),
	AccentSoft: lipgloss.Color("#EDE9FE"),
	Brand:      lipgloss.Color("#0891B2"),

	Danger:     lipgloss.Color("#E11D48"),
	DangerDeep: lipgloss.Color("#FECDD3"),
	Warning:    lipgloss.Color("#D97706"),
	Success:    lipgloss.Color("#059669"),

	Surface:    lipgloss.Color("#FFFFFF"),
	SurfaceDim: lipgloss.Color("#F5F5F5"),
	Overlay:    lipgloss.Color("#E5E5E5"),

	TextPrimary:   lipgloss.Color("#1F2937"),
	TextSecondary: lipgloss.Color("#6B7280"),
	TextMuted:     lipgloss.Color("#9CA3AF"),
	TextInverse:   lipgloss.Color("#FFFFFF"),

	UserBubbleBg:   lipgloss.Color("#DBEAFE"),
	UserBubbleFg:   lipgloss.Color("#1E40AF"),
	BotBubbleBg:    lipgloss.Color("#F5F3FF"),
	BotBubbleFg:    lipgloss.Color("#5B4B8A"),
	BubbleBorderFg: lipgloss.Color("#C4B5FD"),
}

// PaletteFor returns the palette for the given mode.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}

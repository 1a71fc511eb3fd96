// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the docchat client.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateString truncates s to at most maxWidth terminal cells, appending
// an ellipsis when content was cut. Width is measured in display cells, not
// bytes or runes, so CJK and emoji line up in lists.
func TruncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// PadString pads s with spaces to exactly width terminal cells, truncating
// first if it is too long.
func PadString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = TruncateString(s, width)
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

// SanitizeLine collapses a multi-line string into a single display line.
func SanitizeLine(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

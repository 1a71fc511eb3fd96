// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the docchat TUI.
//
// Unlike terminals that auto-detect background color, the theme here follows
// an explicit dark-mode setting persisted in the config file, so the toggle
// survives restarts. Both palettes are defined statically; switching rebuilds
// the style set in place.
package styles

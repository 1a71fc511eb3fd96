// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the docchat TUI.

Each component is a small Bubble Tea model styled through a shared
*styles.Theme:

	theme := styles.NewTheme(true)
	list := components.NewSectionList(theme)
	list.SetEntries(reg.List(), activeID)
	view := list.View()

# Core Components

Navbar (navbar.go) - Top bar with the app name, active section, and hints.
SectionList (sectionlist.go) - Selectable list of document sections with
inline delete confirmation.
UploadPanel (uploadpanel.go) - File path prompt for document uploads.
ErrorModal (errormodal.go) - Blocking modal for global error notifications.

Cross-component messages live in msgs.go; the root application model routes
them between components and the coordinating packages.
*/
package components

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the docchat TUI.
package components

// =============================================================================
// REQUEST MESSAGES (component -> app)
// =============================================================================

// ActivateSectionMsg requests switching to a section.
type ActivateSectionMsg struct {
	SessionID string
}

// DeleteSectionMsg requests deleting a section. Sent only after the inline
// confirmation step.
type DeleteSectionMsg struct {
	SessionID string
}

// UploadRequestMsg requests uploading the document at Path.
type UploadRequestMsg struct {
	Path string
}

// FlushRequestMsg requests deleting every section.
type FlushRequestMsg struct{}

// ReloadRequestedMsg is sent when the user picks the reload action on an
// error modal. The app re-runs reconciliation and the history fetch.
type ReloadRequestedMsg struct{}

// DismissErrorMsg is sent when the user dismisses the error modal.
type DismissErrorMsg struct{}

// =============================================================================
// RESULT MESSAGES (app async work -> components)
// =============================================================================

// SectionActivatedMsg reports the outcome of a section switch.
type SectionActivatedMsg struct {
	SessionID string
	Gen       uint64
	Err       error
}

// SectionDeletedMsg reports the outcome of a section delete.
type SectionDeletedMsg struct {
	SessionID string
	Err       error
}

// FlushedMsg reports the outcome of a flush.
type FlushedMsg struct {
	Err error
}

// UploadFinishedMsg reports the outcome of an upload.
type UploadFinishedMsg struct {
	SessionID string
	Err       error
}

// RegistryReloadedMsg is sent when the registry file changed on disk and
// was reloaded.
type RegistryReloadedMsg struct{}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the plain-terminal REPL for docchat.

Used when the terminal is not a TTY or when --plain is passed. The REPL
offers the same operations as the TUI through slash commands:

	/sections           List document sections
	/switch N           Switch to section number N
	/upload PATH        Upload a document
	/delete N           Delete section number N
	/flush              Delete all sections
	/history            Show the current conversation
	/help               Show commands
	/quit               Exit

Plain questions stream to stdout as they arrive; on a TTY the complete
answer is re-rendered as markdown.
*/
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive REPL loop for docchat plain mode.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/notify"
	"github.com/jeranaias/docchat-tui/internal/registry"
	"github.com/jeranaias/docchat-tui/internal/sections"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/uploader"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22D3EE")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6ADC8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FB7185")).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399")).
			Bold(true)
)

// =============================================================================
// REPL
// =============================================================================

// REPL is the plain-terminal session.
type REPL struct {
	client   *backend.Client
	registry *registry.Registry
	store    *session.Store
	switcher *sections.Switcher
	uploader *uploader.Uploader
	notifier *notify.Notifier

	input    *Input
	renderer *glamour.TermRenderer

	// cancel aborts the in-flight completion stream on Ctrl+C. Written by
	// the main loop, read by the signal goroutine; mu guards both.
	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a REPL over the shared coordinating services.
func New(client *backend.Client, reg *registry.Registry, store *session.Store, sw *sections.Switcher, up *uploader.Uploader, notifier *notify.Notifier) *REPL {
	var renderer *glamour.TermRenderer
	if IsStdoutTTY() {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(GetTerminalWidth()),
		)
	}

	return &REPL{
		client:   client,
		registry: reg,
		store:    store,
		switcher: sw,
		uploader: up,
		notifier: notifier,
		input:    NewInput(),
		renderer: renderer,
	}
}

// Run enters the REPL loop and blocks until the user exits.
func (r *REPL) Run() error {
	defer r.input.Close()

	fmt.Println(infoStyle.Render("docchat - ask questions about your documents. /help for commands."))
	r.printSections()

	// Ctrl+C during streaming cancels the stream instead of killing the
	// process; liner handles Ctrl+C at the prompt itself.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			r.cancelStream()
		}
	}()

	for {
		line, err := r.input.Read(promptStyle.Render("docchat> "))
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			// EOF exits.
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if !r.handleCommand(line) {
				return nil
			}
			continue
		}

		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}

		if err := r.ask(line); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
		r.printNotification()
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleCommand dispatches a slash command. Returns false when the REPL
// should exit.
func (r *REPL) handleCommand(line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/quit", "/q", "/exit":
		return false

	case "/help", "/h":
		r.printHelp()

	case "/sections", "/ls":
		r.printSections()

	case "/switch", "/s":
		if len(args) != 1 {
			fmt.Println(infoStyle.Render("usage: /switch N"))
			break
		}
		r.switchSection(args[0])

	case "/upload", "/u":
		if len(args) != 1 {
			fmt.Println(infoStyle.Render("usage: /upload PATH"))
			break
		}
		r.upload(args[0])

	case "/delete", "/d":
		if len(args) != 1 {
			fmt.Println(infoStyle.Render("usage: /delete N"))
			break
		}
		r.deleteSection(args[0])

	case "/flush":
		r.flush()

	case "/files":
		r.printBackendFiles()

	case "/history":
		r.printHistory()

	default:
		fmt.Println(infoStyle.Render("unknown command; /help for the list"))
	}

	r.printNotification()
	return true
}

func (r *REPL) printHelp() {
	fmt.Println(infoStyle.Render(`Commands:
  /sections         list document sections
  /switch N         switch to section N
  /upload PATH      upload a document (PDF, up to 3MB)
  /delete N         delete section N
  /flush            delete all sections
  /files            list files known to the backend
  /history          show the current conversation
  /quit             exit`))
}

// resolveSection maps a 1-based index or raw session id onto an entry.
func (r *REPL) resolveSection(arg string) (registry.Entry, bool) {
	entries := r.registry.List()

	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(entries) {
			return entries[n-1], true
		}
		return registry.Entry{}, false
	}

	for _, entry := range entries {
		if entry.SessionID == arg {
			return entry, true
		}
	}
	return registry.Entry{}, false
}

func (r *REPL) printSections() {
	entries := r.registry.List()
	if len(entries) == 0 {
		fmt.Println(infoStyle.Render("no documents; /upload PATH to add one"))
		return
	}

	active, _ := r.store.Active()
	for i, entry := range entries {
		marker := "  "
		name := entry.DisplayName
		if entry.SessionID == active {
			marker = "* "
			name = activeStyle.Render(name)
		}
		fmt.Printf("%s%2d. %s\n", marker, i+1, name)
	}
}

func (r *REPL) switchSection(arg string) {
	entry, ok := r.resolveSection(arg)
	if !ok {
		fmt.Println(infoStyle.Render("no such section"))
		return
	}

	if _, err := r.switcher.Activate(context.Background(), entry.SessionID); err != nil {
		return
	}
	fmt.Println(infoStyle.Render("switched to " + entry.DisplayName))
}

func (r *REPL) upload(path string) {
	id, err := r.uploader.Upload(context.Background(), path)
	if err != nil {
		return
	}
	if name, ok := r.registry.Name(id); ok {
		fmt.Println(infoStyle.Render("uploaded " + name))
	}
}

func (r *REPL) deleteSection(arg string) {
	entry, ok := r.resolveSection(arg)
	if !ok {
		fmt.Println(infoStyle.Render("no such section"))
		return
	}

	if err := r.switcher.Delete(context.Background(), entry.SessionID); err != nil {
		return
	}
	fmt.Println(infoStyle.Render("deleted " + entry.DisplayName))
}

func (r *REPL) flush() {
	if err := r.switcher.Flush(context.Background()); err != nil {
		return
	}
	fmt.Println(infoStyle.Render("all sections deleted"))
}

func (r *REPL) printBackendFiles() {
	files, err := r.client.ListFiles(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		return
	}
	if len(files) == 0 {
		fmt.Println(infoStyle.Render("backend has no files"))
		return
	}
	for _, id := range files {
		name := id
		if display, ok := r.registry.Name(id); ok {
			name = display + " (" + id + ")"
		}
		fmt.Println("  " + name)
	}
}

func (r *REPL) printHistory() {
	id, ok := r.store.Active()
	if !ok {
		fmt.Println(infoStyle.Render("no active section"))
		return
	}

	entries, err := r.client.ChatHistory(context.Background(), id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		return
	}
	if len(entries) == 0 {
		fmt.Println(infoStyle.Render("no conversation yet"))
		return
	}

	for _, entry := range entries {
		tag := "Chatbot"
		if entry.Type == backend.HistoryTypeHuman {
			tag = "You"
		}
		fmt.Printf("%s: %s\n", promptStyle.Render(tag), entry.Content)
	}
}

// =============================================================================
// QUESTIONS
// =============================================================================

// ask streams the answer to a question. Raw text goes to stdout as it
// arrives; on a TTY the finished answer is re-rendered as markdown.
func (r *REPL) ask(question string) error {
	id, ok := r.store.Active()
	if !ok {
		fmt.Println(infoStyle.Render("no active section; /upload or /switch first"))
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.setCancel(cancel)
	defer func() {
		r.clearCancel()
		cancel()
	}()

	useMarkdown := r.renderer != nil

	fmt.Println()
	accumulator := backend.NewStreamAccumulator()
	err := r.client.ChatCompletionStream(ctx, id, question, func(chunk backend.Chunk) {
		accumulator.Add(chunk)
		if !useMarkdown && chunk.Text != "" {
			fmt.Print(chunk.Text)
		}
	})
	if err != nil {
		// Ctrl+C mid-stream is deliberate; drop the partial answer and
		// return to the prompt quietly.
		if backend.IsCanceled(err) {
			fmt.Println()
			return nil
		}
		return err
	}

	if useMarkdown {
		if rendered, rerr := r.renderer.Render(accumulator.Content()); rerr == nil {
			fmt.Print(rendered)
		} else {
			fmt.Println(accumulator.Content())
		}
	} else {
		fmt.Println()
	}
	fmt.Println()
	return nil
}

// setCancel installs the cancel function for the in-flight stream.
func (r *REPL) setCancel(cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancel = cancel
}

// clearCancel removes the installed cancel function.
func (r *REPL) clearCancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancel = nil
}

// cancelStream aborts the in-flight stream, if any. Safe to call from the
// signal goroutine at any time.
func (r *REPL) cancelStream() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// printNotification surfaces and clears a pending global notification.
// The REPL has no modal, so the tag and message print inline.
func (r *REPL) printNotification() {
	kind := r.notifier.Current()
	if kind == notify.KindNone {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n",
		errorStyle.Render("["+kind.String()+"]"), kind.Message())
	r.notifier.Clear()
}

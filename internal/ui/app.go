// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui contains the root Bubble Tea application model.
//
// The App composes the navbar, section list, upload panel, chat view, and
// error modal, and owns all coordination between them: it runs the async
// commands for uploads, activation, deletion, and flush, routes their
// results, and drives the session-change flow (cancel stream, reset
// engine, fetch history, fall back to the cached transcript).
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/engine"
	"github.com/jeranaias/docchat-tui/internal/histcache"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/notify"
	"github.com/jeranaias/docchat-tui/internal/registry"
	"github.com/jeranaias/docchat-tui/internal/sections"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui/chat"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/uploader"
)

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusChat focusArea = iota
	focusSections
	focusUpload
)

// Deps bundles the coordinating services the app is built from.
type Deps struct {
	Config   *config.Config
	Client   *backend.Client
	Registry *registry.Registry
	Store    *session.Store
	Cache    *histcache.Cache
	Notifier *notify.Notifier
	Engine   *engine.Engine
	Switcher *sections.Switcher
	Uploader *uploader.Uploader
}

// App is the root application model.
type App struct {
	deps  Deps
	theme *styles.Theme

	navbar   *components.Navbar
	sections *components.SectionList
	upload   *components.UploadPanel
	chat     *chat.Model
	modal    *components.ErrorModal

	focus  focusArea
	width  int
	height int

	// reloads carries registry file-watch events into the update loop.
	reloads chan struct{}
}

// NewApp builds the root model. Call Run to start the program.
func NewApp(deps Deps) *App {
	theme := styles.NewTheme(deps.Config.UI.DarkMode)

	app := &App{
		deps:     deps,
		theme:    theme,
		navbar:   components.NewNavbar(theme),
		sections: components.NewSectionList(theme),
		upload:   components.NewUploadPanel(theme),
		chat:     chat.New(theme, deps.Engine, deps.Client, deps.Store),
		modal:    components.NewErrorModal(theme),
		reloads:  make(chan struct{}, 1),
	}

	app.sections.SetEntries(deps.Registry.List(), "")
	return app
}

// Run starts the Bubble Tea program and blocks until it exits.
func (a *App) Run() error {
	// Registry watch mirrors external edits (another docchat process)
	// into the running UI.
	a.deps.Registry.Watch(func() {
		select {
		case a.reloads <- struct{}{}:
		default:
		}
	})
	defer a.deps.Registry.Close()

	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init kicks off startup reconciliation and the watch pump.
func (a *App) Init() tea.Cmd {
	a.chat.Focus()
	return tea.Batch(
		a.chat.Init(),
		a.reconcileCmd(),
		a.waitForReload(),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the owning component.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	// ---- component requests ----

	case components.ActivateSectionMsg:
		return a, a.activateCmd(msg.SessionID)

	case components.DeleteSectionMsg:
		return a, a.deleteCmd(msg.SessionID)

	case components.FlushRequestMsg:
		return a, a.flushCmd()

	case components.UploadRequestMsg:
		a.upload.SetUploading(true)
		return a, a.uploadCmd(msg.Path)

	case components.ReloadRequestedMsg:
		a.deps.Notifier.Clear()
		cmds := []tea.Cmd{a.reconcileCmd()}
		// Retry the history fetch that raised the modal.
		if _, ok := a.deps.Store.Active(); ok {
			cmds = append(cmds, a.sessionChanged())
		}
		return a, tea.Batch(cmds...)

	case components.DismissErrorMsg:
		a.deps.Notifier.Clear()
		return a, nil

	// ---- async results ----

	case components.SectionActivatedMsg:
		if msg.Err != nil {
			a.refreshSections()
			return a, a.raiseModal()
		}
		return a, a.sessionChanged()

	case components.SectionDeletedMsg:
		if msg.Err != nil {
			return a, a.raiseModal()
		}
		a.refreshSections()
		if _, ok := a.deps.Store.Active(); !ok {
			a.deps.Engine.Reset()
			a.chat.Refresh()
			a.navbar.SetSection("")
		}
		return a, nil

	case components.FlushedMsg:
		if msg.Err != nil {
			return a, a.raiseModal()
		}
		a.refreshSections()
		a.deps.Engine.Reset()
		a.chat.Refresh()
		a.navbar.SetSection("")
		return a, nil

	case components.UploadFinishedMsg:
		a.upload.SetUploading(false)
		if msg.Err != nil {
			return a, a.raiseModal()
		}
		a.focus = focusChat
		a.upload.Blur()
		a.chat.Focus()
		return a, a.sessionChanged()

	case components.RegistryReloadedMsg:
		a.refreshSections()
		return a, a.waitForReload()

	case chat.HistoryLoadedMsg:
		return a.handleHistoryLoaded(msg)

	case chat.ExchangeFinishedMsg:
		a.persistTranscript(msg.SessionID)
		return a, nil
	}

	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

// handleKey processes global shortcuts, then hands the key to the focused
// pane. A visible error modal captures everything.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal.Visible() {
		var cmd tea.Cmd
		a.modal, cmd = a.modal.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+t":
		a.toggleDarkMode()
		return a, nil
	case "ctrl+s":
		a.setFocus(focusSections)
		return a, nil
	case "ctrl+o":
		a.setFocus(focusUpload)
		return a, a.upload.Focus()
	case "esc":
		if a.focus != focusChat {
			a.setFocus(focusChat)
			return a, nil
		}
	}

	switch a.focus {
	case focusSections:
		var cmd tea.Cmd
		a.sections, cmd = a.sections.Update(msg)
		return a, cmd
	case focusUpload:
		var cmd tea.Cmd
		a.upload, cmd = a.upload.Update(msg)
		return a, cmd
	default:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}
}

// handleHistoryLoaded applies a history result, falling back to the cached
// transcript when the backend was unreachable.
func (a *App) handleHistoryLoaded(msg chat.HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Offer the reload action; a retried fetch is the way out of a
		// stale or empty transcript.
		if a.seedFromCache(msg.Gen) {
			a.deps.Notifier.NotifyWithReload(notify.KindForError(msg.Err))
			return a, a.raiseModal()
		}
		// No cached copy either; let the chat view apply the error path.
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		a.deps.Notifier.NotifyWithReload(notify.KindForError(msg.Err))
		return a, tea.Batch(cmd, a.raiseModal())
	}

	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	if id, ok := a.deps.Store.Active(); ok {
		a.persistTranscript(id)
	}
	return a, cmd
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the full layout.
func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.modal.Visible() {
		return a.modal.View(a.width, a.height)
	}

	top := a.navbar.View()

	sidebarWidth := a.width / 3
	if sidebarWidth > 44 {
		sidebarWidth = 44
	}
	if a.theme.GetLayoutMode() == styles.LayoutNarrow {
		sidebarWidth = 0
	}

	var body string
	if sidebarWidth > 0 {
		a.sections.SetWidth(sidebarWidth - 2)
		a.upload.SetWidth(sidebarWidth - 2)
		sidebar := lipgloss.JoinVertical(lipgloss.Left, a.sections.View(), a.upload.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, a.chat.View())
	} else {
		body = a.chat.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}

// resize lays out all panes for the terminal size.
func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.theme.SetSize(width, height)
	a.navbar.SetWidth(width)

	sidebarWidth := width / 3
	if sidebarWidth > 44 {
		sidebarWidth = 44
	}
	if a.theme.GetLayoutMode() == styles.LayoutNarrow {
		sidebarWidth = 0
	}

	chatWidth := width - sidebarWidth
	a.chat.SetSize(chatWidth, height-2)
}

// =============================================================================
// COMMANDS
// =============================================================================

func (a *App) activateCmd(id string) tea.Cmd {
	sw := a.deps.Switcher
	return func() tea.Msg {
		gen, err := sw.Activate(context.Background(), id)
		return components.SectionActivatedMsg{SessionID: id, Gen: gen, Err: err}
	}
}

func (a *App) deleteCmd(id string) tea.Cmd {
	sw := a.deps.Switcher
	return func() tea.Msg {
		err := sw.Delete(context.Background(), id)
		return components.SectionDeletedMsg{SessionID: id, Err: err}
	}
}

func (a *App) flushCmd() tea.Cmd {
	sw := a.deps.Switcher
	return func() tea.Msg {
		return components.FlushedMsg{Err: sw.Flush(context.Background())}
	}
}

func (a *App) uploadCmd(path string) tea.Cmd {
	up := a.deps.Uploader
	return func() tea.Msg {
		id, err := up.Upload(context.Background(), path)
		return components.UploadFinishedMsg{SessionID: id, Err: err}
	}
}

// reconcileCmd drops registry entries the backend no longer knows about.
// Failures are not fatal at startup; the list just stays as persisted.
func (a *App) reconcileCmd() tea.Cmd {
	sw := a.deps.Switcher
	return func() tea.Msg {
		sw.Reconcile(context.Background())
		return components.RegistryReloadedMsg{}
	}
}

// waitForReload blocks on the registry watch channel.
func (a *App) waitForReload() tea.Cmd {
	ch := a.reloads
	return func() tea.Msg {
		<-ch
		return components.RegistryReloadedMsg{}
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// sessionChanged runs the standard flow after the active session switched:
// cancel any stream, reset the engine, refresh chrome, fetch history.
func (a *App) sessionChanged() tea.Cmd {
	a.chat.CancelStream()
	a.deps.Engine.SessionChanged()
	a.chat.Refresh()
	a.refreshSections()

	if id, ok := a.deps.Store.Active(); ok {
		if name, ok := a.deps.Registry.Name(id); ok {
			a.navbar.SetSection(name)
		} else {
			a.navbar.SetSection(id)
		}
	} else {
		a.navbar.SetSection("")
	}

	return a.chat.LoadHistory()
}

// refreshSections re-reads the registry into the section list.
func (a *App) refreshSections() {
	active, _ := a.deps.Store.Active()
	a.sections.SetEntries(a.deps.Registry.List(), active)
}

// raiseModal surfaces the pending notification, if any.
func (a *App) raiseModal() tea.Cmd {
	kind := a.deps.Notifier.Current()
	if kind == notify.KindNone {
		return nil
	}
	a.modal.Show(kind, a.deps.Notifier.ShowReload())
	return nil
}

// seedFromCache installs the cached transcript for the active session.
// Returns false when nothing is cached.
func (a *App) seedFromCache(gen uint64) bool {
	if a.deps.Cache == nil {
		return false
	}
	id, ok := a.deps.Store.Active()
	if !ok {
		return false
	}
	cached, err := a.deps.Cache.Get(id)
	if err != nil {
		return false
	}

	msgs := make([]*model.Message, 0, len(cached))
	for _, cm := range cached {
		if cm.Sender == model.SenderUser.String() {
			msgs = append(msgs, model.NewUserMessage(cm.Content))
		} else {
			msgs = append(msgs, model.NewChatbotMessage(cm.Content))
		}
	}

	if !a.deps.Engine.SeedMessages(gen, msgs) {
		return false
	}
	a.chat.Refresh()
	return true
}

// persistTranscript writes the engine's current transcript to the cache.
func (a *App) persistTranscript(sessionID string) {
	if a.deps.Cache == nil {
		return
	}

	msgs := a.deps.Engine.Messages()
	cached := make([]histcache.CachedMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.IsStreaming {
			continue
		}
		cached = append(cached, histcache.CachedMessage{
			Sender:  m.Sender.String(),
			Content: m.Content,
		})
	}
	a.deps.Cache.Put(sessionID, cached)
}

// toggleDarkMode flips the theme and persists the preference.
func (a *App) toggleDarkMode() {
	a.deps.Config.UI.DarkMode = !a.deps.Config.UI.DarkMode
	a.theme.SetDark(a.deps.Config.UI.DarkMode)
	a.deps.Config.Save()
	a.chat.Refresh()
}

// setFocus moves keyboard focus between panes.
func (a *App) setFocus(f focusArea) {
	a.focus = f
	switch f {
	case focusChat:
		a.chat.Focus()
		a.upload.Blur()
	case focusUpload:
		a.chat.Blur()
	case focusSections:
		a.chat.Blur()
		a.upload.Blur()
	}
}

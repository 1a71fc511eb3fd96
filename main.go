// docchat TUI - A terminal client for chatting with your documents.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/cli"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/engine"
	"github.com/jeranaias/docchat-tui/internal/histcache"
	"github.com/jeranaias/docchat-tui/internal/notify"
	"github.com/jeranaias/docchat-tui/internal/registry"
	"github.com/jeranaias/docchat-tui/internal/sections"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui"
	"github.com/jeranaias/docchat-tui/internal/uploader"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		plain      = flag.Bool("plain", false, "run the line-mode REPL instead of the TUI")
		backendURL = flag.String("backend", "", "backend base URL (overrides config)")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("docchat %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*plain, *backendURL); err != nil {
		fmt.Fprintln(os.Stderr, "docchat:", err)
		os.Exit(1)
	}
}

func run(plain bool, backendURL string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}

	client := backend.NewClientWithConfig(cfg.ClientConfig())

	reg, err := registry.New()
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}

	store := session.NewStore()
	notifier := notify.NewNotifier()
	eng := engine.New(store)

	// The history cache is best-effort; run without it if sqlite fails.
	var cache *histcache.Cache
	if dir, derr := config.ConfigDir(); derr == nil {
		cache, _ = histcache.Open(filepath.Join(dir, histcache.CacheFileName))
	}
	if cache != nil {
		defer cache.Close()
	}

	switcher := sections.New(client, reg, store, cache, notifier)
	up := uploader.New(client, reg, store, notifier)
	up.SetMaxBytes(cfg.Upload.MaxUploadBytes)

	if plain || !cli.IsTTY() || !cli.IsStdoutTTY() {
		repl := cli.New(client, reg, store, switcher, up, notifier)
		return repl.Run()
	}

	app := ui.NewApp(ui.Deps{
		Config:   cfg,
		Client:   client,
		Registry: reg,
		Store:    store,
		Cache:    cache,
		Notifier: notifier,
		Engine:   eng,
		Switcher: switcher,
		Uploader: up,
	})
	return app.Run()
}

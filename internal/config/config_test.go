// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Backend.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected default base URL: %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSecs != 30 || cfg.Backend.UploadTimeoutSecs != 60 {
		t.Errorf("unexpected default timeouts: %d/%d", cfg.Backend.TimeoutSecs, cfg.Backend.UploadTimeoutSecs)
	}
	if cfg.Upload.MaxUploadBytes != 3*1024*1024 {
		t.Errorf("unexpected default upload ceiling: %d", cfg.Upload.MaxUploadBytes)
	}
	if !cfg.UI.DarkMode {
		t.Error("dark mode should default on")
	}
}

func TestSparseFileIsBackfilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := "[backend]\nbase_url = \"http://10.0.0.5:9000\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Backend.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("explicit base URL lost: %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.MaxRetries != 3 {
		t.Errorf("unset retries should backfill to 3, got %d", cfg.Backend.MaxRetries)
	}
	if cfg.Upload.MaxUploadBytes != 3*1024*1024 {
		t.Errorf("unset upload ceiling should backfill, got %d", cfg.Upload.MaxUploadBytes)
	}
}

func TestCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("[backend\nnot toml"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("corrupt config should fail loudly, not reset to defaults")
	}
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv(EnvBackendURL, "http://override:8123")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Backend.BaseURL != "http://override:8123" {
		t.Errorf("env override ignored: %s", cfg.Backend.BaseURL)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := Default()
	cfg.Backend.BaseURL = "http://saved:8000"
	cfg.UI.DarkMode = false
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Backend.BaseURL != "http://saved:8000" {
		t.Errorf("base URL lost in round trip: %s", loaded.Backend.BaseURL)
	}
	if loaded.UI.DarkMode {
		t.Error("dark mode choice lost in round trip")
	}
}

func TestClientConfigConversion(t *testing.T) {
	cfg := Default()
	cfg.Backend.TimeoutSecs = 5
	cfg.Backend.RetryDelayMs = 250

	cc := cfg.ClientConfig()
	if cc.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: %v", cc.Timeout)
	}
	if cc.RetryDelay != 250*time.Millisecond {
		t.Errorf("unexpected retry delay: %v", cc.RetryDelay)
	}
	if cc.BaseURL != cfg.Backend.BaseURL {
		t.Errorf("base URL mismatch: %s", cc.BaseURL)
	}
}

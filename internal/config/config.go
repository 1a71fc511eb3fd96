// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and persists docchat settings from
// ~/.docchat/config.toml.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/uploader"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// ConfigFileName is the settings file under the config directory.
const ConfigFileName = "config.toml"

// EnvBackendURL overrides the configured backend base URL when set.
const EnvBackendURL = "DOCCHAT_BACKEND_URL"

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the persisted application configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Upload  UploadConfig  `toml:"upload"`
	UI      UIConfig      `toml:"ui"`
}

// BackendConfig configures the HTTP client.
type BackendConfig struct {
	// BaseURL of the document-chat backend.
	BaseURL string `toml:"base_url"`

	// TimeoutSecs for non-streaming requests.
	TimeoutSecs int `toml:"timeout_secs"`

	// UploadTimeoutSecs for document uploads.
	UploadTimeoutSecs int `toml:"upload_timeout_secs"`

	// MaxRetries for idempotent GETs.
	MaxRetries int `toml:"max_retries"`

	// RetryDelayMs is the base delay between retries.
	RetryDelayMs int `toml:"retry_delay_ms"`
}

// UploadConfig configures the upload flow.
type UploadConfig struct {
	// MaxUploadBytes is the client-side size ceiling.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`
}

// UIConfig configures presentation.
type UIConfig struct {
	// DarkMode selects the dark color theme. Persisted so the choice
	// survives restarts.
	DarkMode bool `toml:"dark_mode"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:           "http://127.0.0.1:8000",
			TimeoutSecs:       30,
			UploadTimeoutSecs: 60,
			MaxRetries:        3,
			RetryDelayMs:      500,
		},
		Upload: UploadConfig{
			MaxUploadBytes: uploader.DefaultMaxUploadBytes,
		},
		UI: UIConfig{
			DarkMode: true,
		},
	}
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// ConfigDir returns ~/.docchat, creating it if needed.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, ".docchat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads the config file, filling defaults for anything unset. A
// missing file yields the defaults without error; a corrupt file is an
// error so a typo does not silently reset settings.
func Load() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, ConfigFileName))
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	fillDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// Save writes the config file atomically.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return c.SaveTo(filepath.Join(dir, ConfigFileName))
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// ClientConfig converts the backend section to a client configuration.
func (c *Config) ClientConfig() *backend.ClientConfig {
	return &backend.ClientConfig{
		BaseURL:       c.Backend.BaseURL,
		Timeout:       time.Duration(c.Backend.TimeoutSecs) * time.Second,
		UploadTimeout: time.Duration(c.Backend.UploadTimeoutSecs) * time.Second,
		MaxRetries:    c.Backend.MaxRetries,
		RetryDelay:    time.Duration(c.Backend.RetryDelayMs) * time.Millisecond,
	}
}

// fillDefaults backfills zero values left by a sparse config file.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = def.Backend.BaseURL
	}
	if cfg.Backend.TimeoutSecs == 0 {
		cfg.Backend.TimeoutSecs = def.Backend.TimeoutSecs
	}
	if cfg.Backend.UploadTimeoutSecs == 0 {
		cfg.Backend.UploadTimeoutSecs = def.Backend.UploadTimeoutSecs
	}
	if cfg.Backend.MaxRetries == 0 {
		cfg.Backend.MaxRetries = def.Backend.MaxRetries
	}
	if cfg.Backend.RetryDelayMs == 0 {
		cfg.Backend.RetryDelayMs = def.Backend.RetryDelayMs
	}
	if cfg.Upload.MaxUploadBytes == 0 {
		cfg.Upload.MaxUploadBytes = def.Upload.MaxUploadBytes
	}
}

// applyEnv applies environment overrides on top of the loaded config.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvBackendURL); v != "" {
		cfg.Backend.BaseURL = v
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads application settings: built-in defaults, overlaid
// with the user's YAML config file, overlaid with SDFT_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

type Config struct {
	ConfigVersion int             `yaml:"config_version"`
	Editor        EditorConfig    `yaml:"editor"`
	Workspace     WorkspaceConfig `yaml:"workspace"`
	Logging       LoggingConfig   `yaml:"logging"`
}

type EditorConfig struct {
	// DefaultFormat is the format used when a target gives no extension.
	DefaultFormat string `yaml:"default_format"`
	// StyleProfile optionally points at a JSON style profile that adjusts
	// the element formatting defaults.
	StyleProfile string `yaml:"style_profile"`
	// AutosaveSeconds is the autosave interval; 0 disables autosave.
	AutosaveSeconds int `yaml:"autosave_seconds"`
}

type WorkspaceConfig struct {
	Root        string `yaml:"root"`
	CatalogPath string `yaml:"catalog_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Editor: EditorConfig{
			DefaultFormat:   "sdft",
			AutosaveSeconds: 120,
		},
		Workspace: WorkspaceConfig{
			Root: ".",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Path returns the per-user config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "scriptdraft", "config.yaml"), nil
}

// Load reads the config at path on top of the defaults. A missing file is
// not an error; the defaults apply. Environment variables win last.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fine, first run
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		if cfg.ConfigVersion > CurrentConfigVersion {
			return cfg, fmt.Errorf("config %s has version %d, newer than supported %d",
				path, cfg.ConfigVersion, CurrentConfigVersion)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// CatalogPath resolves the catalog database location, defaulting to a
// hidden file inside the workspace root.
func (c Config) CatalogPath() string {
	if c.Workspace.CatalogPath != "" {
		return c.Workspace.CatalogPath
	}
	return filepath.Join(c.Workspace.Root, ".scriptdraft-catalog.db")
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	set(&cfg.Workspace.Root, "SDFT_WORKSPACE_ROOT")
	set(&cfg.Workspace.CatalogPath, "SDFT_CATALOG_PATH")
	set(&cfg.Editor.DefaultFormat, "SDFT_DEFAULT_FORMAT")
	set(&cfg.Editor.StyleProfile, "SDFT_STYLE_PROFILE")
	set(&cfg.Logging.Level, "SDFT_LOG_LEVEL")
	set(&cfg.Logging.Format, "SDFT_LOG_FORMAT")
	set(&cfg.Logging.File, "SDFT_LOG_FILE")
	if v, ok := os.LookupEnv("SDFT_LOG_SOURCE"); ok {
		cfg.Logging.Source = v == "1" || v == "true"
	}
}

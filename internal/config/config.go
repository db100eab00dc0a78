// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for runstate with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables (including a .env file in the working directory)
//  3. Configuration file
//  4. Built-in defaults
//
// The configuration file also declares the state file schema: the ordered
// list of options, their kinds and their default values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
	"github.com/sirseerhq/runstate/internal/logging"
	"github.com/sirseerhq/runstate/internal/state"
)

// Environment variables that override configuration values.
const (
	EnvStatePath   = "RUNSTATE_STATE_PATH"
	EnvLogLevel    = "RUNSTATE_LOG_LEVEL"
	EnvLogFormat   = "RUNSTATE_LOG_FORMAT"
	EnvLocale      = "RUNSTATE_LOCALE"
	EnvGranularity = "RUNSTATE_GRANULARITY"
	EnvTranslate   = "RUNSTATE_TRANSLATE"
)

// EnvFile is the dotenv file read from the working directory.
const EnvFile = ".env"

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .runstate.yaml (current directory)
//   - .runstate.yml (current directory)
//   - ~/.runstate/config.yaml
//   - ~/.runstate/config.yml
//
// Variables from a .env file in the working directory are loaded before
// environment overrides are applied; variables already set in the process
// environment win. Path expansion (~ and environment variables) is
// performed on the state path.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		home, _ := os.UserHomeDir()
		defaultPaths := []string{
			".runstate.yaml",
			".runstate.yml",
			filepath.Join(home, ".runstate", "config.yaml"),
			filepath.Join(home, ".runstate", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// Expand paths
	cfg.State.Path = expandPath(cfg.State.Path)

	return cfg, nil
}

// loadEnvFile reads a dotenv file into the process environment. A missing
// file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w: %w", path, rserrors.ErrInvalidConfig, err)
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w: %w", path, rserrors.ErrInvalidConfig, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) error {
	if path := os.Getenv(EnvStatePath); path != "" {
		cfg.State.Path = path
	}

	// Logging
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		cfg.Logging.Format = format
	}

	// Display
	if locale := os.Getenv(EnvLocale); locale != "" {
		cfg.Display.Locale = locale
	}
	if raw := os.Getenv(EnvGranularity); raw != "" {
		g, err := parsePositiveInt(raw)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", EnvGranularity, rserrors.ErrInvalidConfig, err)
		}
		cfg.Display.Granularity = g
	}
	if translate := os.Getenv(EnvTranslate); translate != "" {
		cfg.Display.Translate = parseBool(translate)
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Schema builds the state schema declared by the configuration. Defaults
// are parsed according to each option's kind; an empty default means the
// kind's zero value ("0.0.0" for versions).
func (c *Config) Schema() (*state.Schema, error) {
	opts := make([]state.Option, 0, len(c.State.Options))
	for _, oc := range c.State.Options {
		opt, err := oc.option()
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return state.NewSchema(opts...)
}

func (oc OptionConfig) option() (state.Option, error) {
	kind, err := state.ParseKind(oc.Kind)
	if err != nil {
		return state.Option{}, fmt.Errorf("option %q: %w", oc.Name, err)
	}

	raw := strings.TrimSpace(oc.Default)
	switch kind {
	case state.KindInt:
		if raw == "" {
			return state.Int(oc.Name, 0), nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return state.Option{}, fmt.Errorf("option %q: default %q is not an integer: %w", oc.Name, oc.Default, rserrors.ErrInvalidSchema)
		}
		return state.Int(oc.Name, n), nil

	case state.KindBool:
		if raw == "" {
			return state.Bool(oc.Name, false), nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return state.Option{}, fmt.Errorf("option %q: default %q is not a boolean: %w", oc.Name, oc.Default, rserrors.ErrInvalidSchema)
		}
		return state.Bool(oc.Name, b), nil

	case state.KindVersion:
		if raw == "" {
			raw = "0.0.0"
		}
		return state.Version(oc.Name, raw), nil
	}

	return state.String(oc.Name, oc.Default), nil
}

// Locale returns the display locale as a language tag.
func (c *Config) Locale() (language.Tag, error) {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("locale %q: %w: %w", c.Display.Locale, rserrors.ErrInvalidConfig, err)
	}
	return tag, nil
}

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "critical": true, "fatal": true,
}

// Validate checks if the configuration contains valid values. It ensures
// the state path is set, the option schema is well formed, and logging and
// display settings are recognised. This should be called after loading
// configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.State.Path == "" {
		return fmt.Errorf("state path cannot be empty: %w", rserrors.ErrInvalidConfig)
	}
	if len(c.State.Options) == 0 {
		return fmt.Errorf("state schema must declare at least one option: %w", rserrors.ErrInvalidConfig)
	}
	if _, err := c.Schema(); err != nil {
		return err
	}
	if !logLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("unknown log level %q: %w", c.Logging.Level, rserrors.ErrInvalidConfig)
	}
	if f := strings.ToLower(c.Logging.Format); f != logging.FormatText && f != logging.FormatJSON {
		return fmt.Errorf("unknown log format %q: %w", c.Logging.Format, rserrors.ErrInvalidConfig)
	}
	if c.Display.Granularity < 1 || c.Display.Granularity > 5 {
		return fmt.Errorf("display granularity must be between 1 and 5, got: %d: %w", c.Display.Granularity, rserrors.ErrInvalidConfig)
	}
	if _, err := c.Locale(); err != nil {
		return err
	}
	return nil
}

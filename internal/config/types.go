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

// Package config types define the configuration structures used throughout
// runstate. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for runstate.
type Config struct {
	State   StateConfig   `yaml:"state"`
	Logging LoggingConfig `yaml:"logging"`
	Display DisplayConfig `yaml:"display"`
}

// StateConfig locates the state file and declares its options. The order
// of Options is the order of lines in the file.
type StateConfig struct {
	Path    string         `yaml:"path"`
	Options []OptionConfig `yaml:"options"`
}

// OptionConfig declares one state option. Default is written as text and
// parsed according to Kind (string, int, bool or version).
type OptionConfig struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Default string `yaml:"default"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DisplayConfig controls how durations are rendered for humans.
type DisplayConfig struct {
	Locale      string `yaml:"locale"`
	Granularity int    `yaml:"granularity"`
	Rounded     bool   `yaml:"rounded"`
	Translate   bool   `yaml:"translate"`
}

// DefaultOptions is the schema used when no configuration declares one.
// It records how often and how recently a command ran.
func DefaultOptions() []OptionConfig {
	return []OptionConfig{
		{Name: "runs", Kind: "int", Default: "0"},
		{Name: "last_run", Kind: "int", Default: "0"},
		{Name: "last_duration", Kind: "int", Default: "0"},
		{Name: "last_version", Kind: "version", Default: "0.0.0"},
		{Name: "last_command", Kind: "string", Default: ""},
	}
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases.
func DefaultConfig() *Config {
	return &Config{
		State: StateConfig{
			Path:    "~/.runstate/state",
			Options: DefaultOptions(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Display: DisplayConfig{
			Locale:      "en",
			Granularity: 2,
			Rounded:     true,
			Translate:   false,
		},
	}
}

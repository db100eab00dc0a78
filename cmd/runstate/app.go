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

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/runstate/internal/config"
	"github.com/sirseerhq/runstate/internal/duration"
	rserrors "github.com/sirseerhq/runstate/internal/errors"
	"github.com/sirseerhq/runstate/internal/logging"
	"github.com/sirseerhq/runstate/internal/state"
)

// app carries the global flags and everything derived from them.
type app struct {
	configPath string
	statePath  string
	verbose    bool
	noColor    bool

	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	schema *state.Schema
	logger *slog.Logger
}

// setup loads configuration and builds the logger. It runs before every
// command.
func (a *app) setup() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.statePath != "" {
		cfg.State.Path = a.statePath
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	schema, err := cfg.Schema()
	if err != nil {
		return err
	}

	if a.noColor {
		color.NoColor = true
	}

	a.cfg = cfg
	a.schema = schema
	a.logger = logging.New(a.stderr, cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

// openStore opens and reconciles the configured state file.
func (a *app) openStore() (*state.Store, error) {
	return state.Open(a.cfg.State.Path, a.schema, state.WithLogger(a.logger))
}

// formatter returns the duration formatter for the configured locale.
func (a *app) formatter() (*duration.Formatter, error) {
	tag, err := a.cfg.Locale()
	if err != nil {
		return nil, err
	}
	return duration.New(duration.WithLocale(tag)), nil
}

// humanize renders seconds with the configured display settings.
func (a *app) humanize(f *duration.Formatter, seconds int64) string {
	d := a.cfg.Display
	return f.Convert(seconds, d.Granularity, d.Rounded, d.Translate)
}

// exactArgs is cobra.ExactArgs reporting an invalid argument error.
func exactArgs(n int) cobra.PositionalArgs {
	return invalidArgs(cobra.ExactArgs(n))
}

func invalidArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", rserrors.ErrInvalidArgument, err)
		}
		return nil
	}
}

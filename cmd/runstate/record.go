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
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
	"github.com/sirseerhq/runstate/internal/state"
)

// Options maintained by record. Options missing from the configured schema
// are skipped.
const (
	optRuns         = "runs"
	optLastRun      = "last_run"
	optLastDuration = "last_duration"
	optLastVersion  = "last_version"
	optLastCommand  = "last_command"
)

func newRecordCommand(a *app) *cobra.Command {
	var (
		appVersion string
		elapsed    int64
	)

	cmd := &cobra.Command{
		Use:   "record [flags] [-- command [args...]]",
		Short: "Record a run, optionally executing and timing a command",
		Long: `Record a run in the state file: increment the run counter and store the
start time, duration, command line and application version.

With a command after "--" the command is executed with the current stdin,
stdout and stderr, and its wall-clock duration is recorded. The run is
recorded even when the command fails; its error is returned afterwards.
Without a command, --duration supplies the elapsed seconds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if elapsed < 0 {
				return fmt.Errorf("duration must not be negative, got: %d: %w", elapsed, rserrors.ErrInvalidArgument)
			}
			if appVersion != "" {
				if i, ok := a.schema.Index(optLastVersion); ok {
					if err := a.schema.At(i).Accepts(appVersion); err != nil {
						return err
					}
				}
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			start := time.Now()
			var runErr error
			if len(args) > 0 {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				runErr = execute(ctx, cmd, args)
				stop()
				elapsed = int64(time.Since(start).Round(time.Second) / time.Second)
			}

			values, err := store.Load()
			if err != nil {
				return err
			}
			runs, _ := values.Int(optRuns)

			updates := []state.Update{
				state.Set(optRuns, runs+1),
				state.Set(optLastRun, start.Unix()),
				state.Set(optLastDuration, elapsed),
				state.Set(optLastCommand, strings.Join(args, " ")),
			}
			if appVersion != "" {
				updates = append(updates, state.Set(optLastVersion, appVersion))
			}

			if _, err := store.Save(known(a.schema, updates)...); err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run %d (%s)\n", runs+1, a.humanize(f, elapsed))

			return runErr
		},
	}

	cmd.Flags().StringVar(&appVersion, "app-version", "", "Version of the application being run (major.minor[.patch])")
	cmd.Flags().Int64Var(&elapsed, "duration", 0, "Elapsed seconds when no command is given")

	return cmd
}

// execute runs args as a child process wired to the command's streams.
func execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	child := exec.CommandContext(ctx, args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()

	if err := child.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", args[0], err)
	}
	return nil
}

// known drops updates for options the schema does not declare.
func known(schema *state.Schema, updates []state.Update) []state.Update {
	kept := updates[:0]
	for _, u := range updates {
		if _, ok := schema.Index(u.Name); ok {
			kept = append(kept, u)
		}
	}
	return kept
}

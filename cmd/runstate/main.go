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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCommand(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return mapErrorToExitCode(err)
	}
	return 0
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "runstate",
		Short: "Keep and repair a human-editable run state file",
		Long: `runstate records facts about past runs of a command (how often it ran,
when, for how long, with which version) in a plain text file that people
may edit by hand. Every invocation reconciles the file against the declared
options, dropping garbage, restoring order and filling in defaults.`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", rserrors.ErrInvalidArgument, err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Configuration file (default: .runstate.yaml or ~/.runstate/config.yaml)")
	flags.StringVar(&a.statePath, "state", "", "State file path (overrides configuration)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log debug details of every repair")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newCheckCommand(a),
		newShowCommand(a),
		newSetCommand(a),
		newRecordCommand(a),
		newStatusCommand(a),
		newHumanizeCommand(a),
		newWatchCommand(a),
		newResetCommand(a),
	)

	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, rserrors.ErrInvalidArgument) ||
		errors.Is(err, rserrors.ErrInvalidConfig) ||
		errors.Is(err, rserrors.ErrInvalidSchema) {
		return 2 // Usage and configuration errors
	}

	if errors.Is(err, rserrors.ErrNoData) {
		return 3
	}

	if errors.Is(err, rserrors.ErrStorage) {
		return 4
	}

	return 1 // General error
}

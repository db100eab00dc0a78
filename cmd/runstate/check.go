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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
	"github.com/sirseerhq/runstate/internal/output"
	"github.com/sirseerhq/runstate/internal/state"
)

func newCheckCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Reconcile the state file and report what was repaired",
		Long: `Reconcile the state file against the configured options.

A missing file is created from defaults. Malformed lines and unknown options
are dropped, misplaced or repeated options are merged back into place and
missing options are filled in. A file that is already conformant is not
touched.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			return writeReport(cmd, format, store.Report())
		},
	}

	cmd.Flags().StringVar(&format, "format", output.FormatText, "Output format: text or ndjson")

	return cmd
}

func writeReport(cmd *cobra.Command, format string, report state.Report) error {
	switch format {
	case output.FormatNDJSON, "json":
		return output.NewWriter(cmd.OutOrStdout()).Write(report)
	case output.FormatText:
	default:
		return fmt.Errorf("unknown output format %q: %w", format, rserrors.ErrInvalidArgument)
	}

	var status string
	switch {
	case report.Created:
		status = color.New(color.FgCyan).Sprint("created")
	case report.Rewritten:
		status = color.New(color.FgYellow).Sprint("repaired")
	default:
		status = color.New(color.FgGreen).Sprint("ok")
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", status, report.Path, report.Summary())
	return err
}

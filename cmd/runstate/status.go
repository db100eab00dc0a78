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
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/runstate/internal/state"
)

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarise the last recorded run",
		Long: `Summarise the recorded runs: how many there were, how long ago the last
one started and how long it took. Durations follow the display settings
(locale, granularity, rounding and translation).`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			values, err := store.Load()
			if err != nil {
				return err
			}
			f, err := a.formatter()
			if err != nil {
				return err
			}

			return writeStatus(cmd.OutOrStdout(), values, time.Now(), func(seconds int64) string {
				return a.humanize(f, seconds)
			})
		},
	}
}

func writeStatus(w io.Writer, values state.Values, now time.Time, humanize func(int64) string) error {
	label := color.New(color.Bold).SprintFunc()
	line := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", label(fmt.Sprintf("%-16s", name+":")), value)
	}

	runs, _ := values.Int(optRuns)
	line("runs", fmt.Sprint(runs))

	lastRun, ok := values.Int(optLastRun)
	if !ok || lastRun <= 0 {
		line("last run", color.New(color.FgYellow).Sprint("never"))
		return nil
	}

	line("since last run", humanize(now.Unix()-lastRun))
	line("started", time.Unix(lastRun, 0).Format(time.RFC3339))
	if took, ok := values.Int(optLastDuration); ok {
		line("took", humanize(took))
	}
	if v, ok := values.Text(optLastVersion); ok && v != "" {
		line("version", v)
	}
	if c, ok := values.Text(optLastCommand); ok && c != "" {
		line("command", c)
	}
	return nil
}

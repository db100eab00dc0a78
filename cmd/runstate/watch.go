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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/runstate/internal/state"
	"github.com/sirseerhq/runstate/internal/watch"
)

func newWatchCommand(a *app) *cobra.Command {
	var (
		debounce time.Duration
		format   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Repair the state file whenever it is edited",
		Long: `Watch the state file and reconcile it every time it changes on disk,
printing a report for each repair. Runs until interrupted.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := writeReport(cmd, format, store.Report()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var reportErr error
			w := watch.New(store,
				watch.WithLogger(a.logger),
				watch.WithDebounce(debounce),
				watch.OnReport(func(r state.Report) {
					if r.Changed() && reportErr == nil {
						reportErr = writeReport(cmd, format, r)
					}
				}),
			)
			if err := w.Run(ctx); err != nil {
				return err
			}
			return reportErr
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Wait this long for edits to settle")
	cmd.Flags().StringVar(&format, "format", "text", "Report format: text or ndjson")

	return cmd
}

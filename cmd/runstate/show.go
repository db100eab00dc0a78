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
	"github.com/spf13/cobra"

	"github.com/sirseerhq/runstate/internal/logging"
	"github.com/sirseerhq/runstate/internal/output"
)

func newShowCommand(a *app) *cobra.Command {
	var (
		format     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "show [option...]",
		Short: "Print stored option values",
		Long: `Print the values stored in the state file: configured options in
configuration order, then any other options found in the file.

With option names only those options are printed; it is an error if none
of them is present. Numbers and booleans are typed in ndjson output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			values, err := store.Load(args...)
			if err != nil {
				return err
			}

			var writer output.RecordWriter
			if outputFile == "" {
				writer, err = output.New(format, cmd.OutOrStdout())
			} else {
				writer, err = output.NewFile(format, outputFile)
			}
			if err != nil {
				return err
			}
			defer writer.Close()

			for _, rec := range output.OptionRecords(store.Schema(), values) {
				if err := writer.Write(rec); err != nil {
					return err
				}
			}
			a.logger.Debug("Printed options", logging.Count(writer.Count()))
			return writer.Close()
		},
	}

	cmd.Flags().StringVar(&format, "format", output.FormatText, "Output format: text or ndjson")
	cmd.Flags().StringVar(&outputFile, "output", "", "Write to this file instead of stdout")

	return cmd
}

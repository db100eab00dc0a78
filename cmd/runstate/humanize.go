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
	"strconv"

	"github.com/spf13/cobra"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
)

func newHumanizeCommand(a *app) *cobra.Command {
	var (
		granularity int
		exact       bool
		translate   bool
		locale      string
	)

	cmd := &cobra.Command{
		Use:   "humanize <seconds>",
		Short: "Print a number of seconds as human-readable text",
		Long: `Print a number of seconds as human-readable text, such as "1 day and 1 hour".

Flags default to the display settings of the configuration. Negative values
must follow "--", for example: runstate humanize -- -5`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("seconds must be an integer, got: %s: %w", args[0], rserrors.ErrInvalidArgument)
			}

			flags := cmd.Flags()
			if flags.Changed("granularity") {
				a.cfg.Display.Granularity = granularity
			}
			if flags.Changed("exact") {
				a.cfg.Display.Rounded = !exact
			}
			if flags.Changed("translate") {
				a.cfg.Display.Translate = translate
			}
			if flags.Changed("locale") {
				a.cfg.Display.Locale = locale
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.humanize(f, seconds))
			return err
		},
	}

	cmd.Flags().IntVarP(&granularity, "granularity", "g", 2, "Number of units to show")
	cmd.Flags().BoolVar(&exact, "exact", false, "Truncate instead of rounding")
	cmd.Flags().BoolVarP(&translate, "translate", "t", false, "Translate to the configured locale")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale for translated output (e.g. de, fr)")

	return cmd
}

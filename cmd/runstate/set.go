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
	"strings"

	"github.com/spf13/cobra"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
	"github.com/sirseerhq/runstate/internal/state"
)

func newSetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <option>=<value>...",
		Short: "Change stored option values",
		Long: `Change one or more option values in place.

Values are checked against the option's kind before anything is written.
The file is only rewritten when at least one value differs from what is
stored. An empty value (name=) stores the option as a bare name.`,
		Args: invalidArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseAssignments(args)
			if err != nil {
				return err
			}
			if err := checkUpdates(a.schema, updates); err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			changed, err := store.Save(updates...)
			if err != nil {
				return err
			}

			result := "unchanged"
			if changed {
				result = "updated"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result, store.Path())
			return err
		},
	}

	return cmd
}

// parseAssignments parses name=value arguments. Later assignments to the
// same name win.
func parseAssignments(args []string) ([]state.Update, error) {
	updates := make([]state.Update, 0, len(args))
	index := make(map[string]int, len(args))

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected <option>=<value>, got: %s: %w", arg, rserrors.ErrInvalidArgument)
		}

		if i, seen := index[name]; seen {
			updates[i].Value = value
			continue
		}
		index[name] = len(updates)
		updates = append(updates, state.Set(name, value))
	}

	return updates, nil
}

// checkUpdates rejects unknown options and values of the wrong kind.
func checkUpdates(schema *state.Schema, updates []state.Update) error {
	for _, u := range updates {
		i, ok := schema.Index(u.Name)
		if !ok {
			return fmt.Errorf("unknown option %q: %w", u.Name, rserrors.ErrInvalidArgument)
		}
		if err := schema.At(i).Accepts(state.FormatValue(u.Value)); err != nil {
			return err
		}
	}
	return nil
}

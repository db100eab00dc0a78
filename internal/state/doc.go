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

// Package state persists run state between invocations in a small,
// human-editable text file.
//
// The file holds one entry per line. Lines starting with '#' are comments
// and are carried through verbatim. Every other line is an option, written
// as "name: value", or as a bare "name" when the value is empty:
//
//	# last successful run
//	runs: 12
//	last_version: 1.4.0
//	last_command
//
// Because the file is meant to be edited by hand and outlives application
// upgrades, Open never trusts it. It reconciles the file against a Schema,
// the ordered list of options the running application knows about:
// malformed and unknown lines are dropped, misplaced and duplicated options
// are merged, missing options get their defaults, and the result is written
// back in schema order. A file that is already canonical is left untouched,
// so reconciling twice is a no-op.
//
// Example usage:
//
//	schema, err := state.NewSchema(
//	    state.Int("runs", 0),
//	    state.Version("last_version", "0.0.0"),
//	)
//	store, err := state.Open(state.DefaultPath("myapp"), schema)
//	values, err := store.Load("runs")
//	runs, _ := values.Int("runs")
//	_, err = store.Save(state.Set("runs", runs+1))
//
// A Store is not safe for concurrent use and assumes a single owning
// process per file.
package state

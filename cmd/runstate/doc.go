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

// Package main implements the runstate command-line interface.
// runstate keeps a small, hand-editable state file describing past runs of
// a command and repairs it whenever it drifts from the declared options.
//
// The CLI supports:
//   - Checking and repairing the state file (check, watch)
//   - Reading and writing options (show, set, reset)
//   - Recording a run of an arbitrary command (record)
//   - Summarising the last run in human-readable form (status, humanize)
//
// Usage:
//
//	runstate <command> [flags]
//
// Example:
//
//	runstate record --app-version 1.4.0 -- make release
//	runstate status
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Invalid argument, configuration or option schema
//   - 3: Requested options not present
//   - 4: State file unusable
package main

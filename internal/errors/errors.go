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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrStorage indicates the state file could not be opened, created, read or written.
	// The environment is considered broken; callers do not retry.
	// Maps to exit code 4.
	ErrStorage = errors.New("state storage failure")

	// ErrNoData indicates a filtered load matched none of the requested options.
	// Maps to exit code 3.
	ErrNoData = errors.New("no data for requested options")

	// ErrInvalidSchema indicates an option schema that cannot describe a state file.
	// Maps to exit code 2.
	ErrInvalidSchema = errors.New("invalid option schema")

	// ErrInvalidConfig indicates a configuration file or override with unusable values.
	// Maps to exit code 2.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidArgument indicates malformed command-line input.
	// Maps to exit code 2.
	ErrInvalidArgument = errors.New("invalid argument")
)

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

package state

import (
	"fmt"
	"strings"
	"time"
)

// Report records what a reconciliation pass found and repaired. It is the
// audit trail for a state file: callers can surface it to users or log it
// when a hand-edited file needed fixing.
type Report struct {
	Path string `json:"path"`

	// Created is set when the file did not exist and was written from defaults.
	Created bool `json:"created"`

	// Rewritten is set when the file on disk was replaced.
	Rewritten bool `json:"rewritten"`

	Malformed int `json:"malformed"` // unparsable lines dropped
	Unknown   int `json:"unknown"`   // options not in the schema dropped
	Misplaced int `json:"misplaced"` // known options found out of order
	Overflow  int `json:"overflow"`  // known options found after every slot was filled
	Filled    int `json:"filled"`    // missing options appended with defaults
	Merged    int `json:"merged"`    // options whose value was taken from a displaced copy

	CheckedAt time.Time `json:"checked_at"`
}

// Changed reports whether reconciliation had to repair anything.
func (r Report) Changed() bool {
	return r.Created || r.Rewritten
}

// Repairs returns the total number of line-level repairs.
func (r Report) Repairs() int {
	return r.Malformed + r.Unknown + r.Misplaced + r.Overflow + r.Filled
}

// Summary returns a short human-readable description.
func (r Report) Summary() string {
	if r.Created {
		return "created from defaults"
	}
	if !r.Rewritten {
		return "conformant"
	}

	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(r.Malformed, "malformed")
	add(r.Unknown, "unknown")
	add(r.Misplaced, "misplaced")
	add(r.Overflow, "duplicate")
	add(r.Filled, "filled")
	add(r.Merged, "merged")

	if len(parts) == 0 {
		return "rewritten"
	}
	return "repaired: " + strings.Join(parts, ", ")
}

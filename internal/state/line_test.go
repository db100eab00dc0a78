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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantKind  LineKind
		wantName  string
		wantValue string
	}{
		{name: "option", raw: "runs: 12", wantKind: LineOption, wantName: "runs", wantValue: "12"},
		{name: "bare option", raw: "last_command", wantKind: LineOption, wantName: "last_command"},
		{name: "empty value with separator", raw: "last_command: ", wantKind: LineOption, wantName: "last_command"},
		{name: "value containing separator", raw: "cmd: a: b", wantKind: LineOption, wantName: "cmd", wantValue: "a: b"},
		{name: "value keeps spaces", raw: "title:  spaced out ", wantKind: LineOption, wantName: "title", wantValue: " spaced out "},
		{name: "carriage return stripped", raw: "runs: 3\r", wantKind: LineOption, wantName: "runs", wantValue: "3"},
		{name: "comment", raw: "# saved by v1", wantKind: LineComment},
		{name: "comment that looks like an option", raw: "#runs: 4", wantKind: LineComment},
		{name: "empty line", raw: "", wantKind: LineMalformed},
		{name: "colon without space", raw: "runs:4", wantKind: LineMalformed},
		{name: "trailing colon", raw: "runs:", wantKind: LineMalformed},
		{name: "words without separator", raw: "not an option", wantKind: LineMalformed},
		{name: "empty name", raw: ": 4", wantKind: LineMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.raw)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}

func TestFormatOption(t *testing.T) {
	assert.Equal(t, "runs: 3", formatOption("runs", "3"))
	assert.Equal(t, "last_command", formatOption("last_command", ""))

	// Rendered lines parse back to the same option.
	for _, value := range []string{"3", "", "a: b", " padded "} {
		line := ParseLine(formatOption("opt", value))
		assert.Equal(t, LineOption, line.Kind)
		assert.Equal(t, "opt", line.Name)
		assert.Equal(t, value, line.Value)
	}
}

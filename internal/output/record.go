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

package output

import (
	"sort"

	"github.com/sirseerhq/runstate/internal/state"
)

// Record is one option as reported by the CLI.
type Record struct {
	Name  string `json:"name"`
	Kind  string `json:"kind,omitempty"`
	Value any    `json:"value"`
	// IsDefault is set when the value equals the schema default.
	IsDefault bool `json:"default"`
}

// String renders the record as a state file line.
func (r Record) String() string {
	text := state.FormatValue(r.Value)
	if text == "" {
		return r.Name
	}
	return r.Name + ": " + text
}

// OptionRecords turns loaded values into records: schema options first, in
// schema order, then any other names sorted alphabetically.
func OptionRecords(schema *state.Schema, values state.Values) []Record {
	records := make([]Record, 0, len(values))
	seen := make(map[string]bool, len(values))

	for i := 0; i < schema.Len(); i++ {
		opt := schema.At(i)
		v, ok := values[opt.Name]
		if !ok {
			continue
		}
		seen[opt.Name] = true
		records = append(records, Record{
			Name:      opt.Name,
			Kind:      opt.Kind.String(),
			Value:     v,
			IsDefault: state.FormatValue(v) == opt.DefaultText(),
		})
	}

	var extra []string
	for name := range values {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		records = append(records, Record{Name: name, Value: values[name]})
	}

	return records
}

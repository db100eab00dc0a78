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
	"strings"
	"unicode"
)

// LineKind classifies a physical line of a state file.
type LineKind int

const (
	LineMalformed LineKind = iota
	LineComment
	LineOption
)

const (
	commentPrefix = "#"
	separator     = ": "
)

// Line is one classified line. Name and Value are set for LineOption only.
type Line struct {
	Kind  LineKind
	Raw   string
	Name  string
	Value string
}

// ParseLine classifies raw. A line starting with '#' is a comment. A line
// containing ": " is an option, split at the first separator. A single
// token without ':' or whitespace is an option with an empty value.
// Everything else, including empty lines, is malformed.
func ParseLine(raw string) Line {
	raw = strings.TrimSuffix(raw, "\r")

	if strings.HasPrefix(raw, commentPrefix) {
		return Line{Kind: LineComment, Raw: raw}
	}

	if name, value, ok := strings.Cut(raw, separator); ok {
		if name == "" {
			return Line{Kind: LineMalformed, Raw: raw}
		}
		return Line{Kind: LineOption, Raw: raw, Name: name, Value: value}
	}

	if raw != "" && !strings.Contains(raw, ":") && strings.IndexFunc(raw, unicode.IsSpace) < 0 {
		return Line{Kind: LineOption, Raw: raw, Name: raw}
	}

	return Line{Kind: LineMalformed, Raw: raw}
}

// formatOption renders an option line; empty values are written as the bare name.
func formatOption(name, value string) string {
	if value == "" {
		return name
	}
	return name + separator + value
}

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
	"strconv"
	"strings"
)

// valueParser converts stored text into a typed value.
type valueParser func(text string) (any, bool)

// coercions are tried in order when loading; the first success wins and
// text that no parser accepts stays a string.
var coercions = []valueParser{
	parseIntValue,
	parseBoolValue,
}

var boolLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"on":    true,
	"1":     true,
	"false": false,
	"no":    false,
	"off":   false,
	"0":     false,
}

// Coerce converts stored text to int64, bool or string. It never fails.
func Coerce(text string) any {
	for _, parse := range coercions {
		if v, ok := parse(text); ok {
			return v
		}
	}
	return text
}

func parseIntValue(text string) (any, bool) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, false
	}
	return n, true
}

func parseBoolValue(text string) (any, bool) {
	b, ok := boolLiterals[strings.ToLower(text)]
	if !ok {
		return nil, false
	}
	return b, true
}

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
	"regexp"
	"strconv"

	"golang.org/x/mod/semver"
)

// comparator returns the greatest of values, or false when any value does
// not parse under its ordering.
type comparator func(values []string) (string, bool)

var versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// comparatorsFor lists the orderings tried when merging an option of kind k.
// Options declared as strings or booleans fall back to inference: integer
// ordering first, then version ordering.
func comparatorsFor(k Kind) []comparator {
	switch k {
	case KindInt:
		return []comparator{greatestInt}
	case KindVersion:
		return []comparator{greatestVersion}
	default:
		return []comparator{greatestInt, greatestVersion}
	}
}

// resolve picks the value an option keeps when duplicates or misplaced
// copies of it were found. current is the value already in the option's
// slot; candidates are the displaced values in file order.
func resolve(opt Option, current string, candidates []string) string {
	values := make([]string, 0, len(candidates)+1)
	values = append(values, current)
	values = append(values, candidates...)

	for _, greatest := range comparatorsFor(opt.Kind) {
		if winner, ok := greatest(values); ok {
			return winner
		}
	}

	def := opt.DefaultText()
	if current != def {
		return current
	}
	for _, c := range candidates {
		if c != def {
			return c
		}
	}
	return def
}

// greatestInt keeps the first of equal maxima.
func greatestInt(values []string) (string, bool) {
	var (
		best  string
		bestN int64
	)
	for i, v := range values {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return "", false
		}
		if i == 0 || n > bestN {
			best, bestN = v, n
		}
	}
	return best, len(values) > 0
}

func greatestVersion(values []string) (string, bool) {
	var best, bestCanon string
	for i, v := range values {
		canon, ok := parseVersion(v)
		if !ok {
			return "", false
		}
		if i == 0 || semver.Compare(canon, bestCanon) > 0 {
			best, bestCanon = v, canon
		}
	}
	return best, len(values) > 0
}

// parseVersion accepts major.minor[.patch] and returns the canonical
// semver form used for comparison. A missing patch compares as zero.
func parseVersion(v string) (string, bool) {
	if !versionPattern.MatchString(v) {
		return "", false
	}
	canon := "v" + v
	if !semver.IsValid(canon) {
		return "", false
	}
	return semver.Canonical(canon), true
}

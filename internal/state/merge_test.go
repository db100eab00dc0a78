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

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		opt        Option
		current    string
		candidates []string
		want       string
	}{
		{
			name:       "version ordering beats lexical ordering",
			opt:        Version("ver", "1.0.0"),
			current:    "1.2.0",
			candidates: []string{"1.10.0"},
			want:       "1.10.0",
		},
		{
			name:       "version without patch",
			opt:        Version("ver", "1.0.0"),
			current:    "1.0.0",
			candidates: []string{"1.3", "1.2.9"},
			want:       "1.3",
		},
		{
			name:       "equal versions keep the current value",
			opt:        Version("ver", "0.0.0"),
			current:    "1.2",
			candidates: []string{"1.2.0"},
			want:       "1.2",
		},
		{
			name:       "greatest integer",
			opt:        Int("runs", 0),
			current:    "4",
			candidates: []string{"12", "7"},
			want:       "12",
		},
		{
			name:       "negative integers",
			opt:        Int("offset", 0),
			current:    "-5",
			candidates: []string{"-2"},
			want:       "-2",
		},
		{
			name:       "integer kind with junk falls back to current",
			opt:        Int("runs", 0),
			current:    "4",
			candidates: []string{"many"},
			want:       "4",
		},
		{
			name:       "first candidate differing from default",
			opt:        String("mode", "z"),
			current:    "z",
			candidates: []string{"x", "y"},
			want:       "x",
		},
		{
			name:       "candidates equal to default keep default",
			opt:        String("mode", "z"),
			current:    "z",
			candidates: []string{"z"},
			want:       "z",
		},
		{
			name:       "customised current value wins the fallback",
			opt:        String("mode", "z"),
			current:    "w",
			candidates: []string{"x"},
			want:       "w",
		},
		{
			name:       "string kind infers integers",
			opt:        String("build", ""),
			current:    "9",
			candidates: []string{"10"},
			want:       "10",
		},
		{
			name:       "string kind infers versions",
			opt:        String("build", ""),
			current:    "9.5",
			candidates: []string{"10.0"},
			want:       "10.0",
		},
		{
			name:       "mixed integer and version text falls back",
			opt:        String("build", ""),
			current:    "10",
			candidates: []string{"9.5"},
			want:       "10",
		},
		{
			name:       "declared version kind never compares as integers",
			opt:        Version("ver", "0.0.0"),
			current:    "0.0.0",
			candidates: []string{"10", "9.5"},
			want:       "10",
		},
		{
			name:       "bool kind",
			opt:        Bool("enabled", false),
			current:    "false",
			candidates: []string{"true"},
			want:       "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(tt.opt, tt.current, tt.candidates))
		})
	}
}

func TestParseVersion(t *testing.T) {
	valid := map[string]string{
		"1.2.3":   "v1.2.3",
		"1.2":     "v1.2.0",
		"0.0.0":   "v0.0.0",
		"10.20.3": "v10.20.3",
	}
	for in, want := range valid {
		got, ok := parseVersion(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"1", "v1.2.3", "1.2.3.4", "1.02.3", "1.2.3-rc1", "", "a.b"} {
		_, ok := parseVersion(in)
		assert.False(t, ok, in)
	}
}

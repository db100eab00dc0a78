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

package logging

import "log/slog"

// Canonical log field names.
const (
	KeyPath   = "path"
	KeyOption = "option"
	KeyLine   = "line"
	KeyValue  = "value"
	KeyCount  = "count"
	KeyError  = "error"
)

func Path(p string) slog.Attr   { return slog.String(KeyPath, p) }
func Option(n string) slog.Attr { return slog.String(KeyOption, n) }
func LineNo(n int) slog.Attr    { return slog.Int(KeyLine, n) }
func Value(v string) slog.Attr  { return slog.String(KeyValue, v) }
func Count(n int) slog.Attr     { return slog.Int(KeyCount, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

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

// Package output writes command results as NDJSON (Newline Delimited JSON)
// or as plain text. NDJSON suits scripts: each line holds one JSON object.
// The text form mirrors the state file itself, one "name: value" line per
// option, so it can be read by eye or piped back into tools that understand
// the file format.
//
// Both writers implement RecordWriter and are safe for concurrent use.
//
// Example usage:
//
//	w, err := output.New(output.FormatNDJSON, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	for _, rec := range output.OptionRecords(schema, values) {
//	    if err := w.Write(rec); err != nil {
//	        return err
//	    }
//	}
package output

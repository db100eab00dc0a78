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
	"fmt"
	"io"
	"os"
	"strings"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
)

// RecordWriter defines the interface for writing command results.
type RecordWriter interface {
	// Write writes a single record to the output.
	// The record should be immediately flushed to avoid memory accumulation.
	Write(record any) error

	// Count returns the number of records written so far.
	Count() int

	// Close closes the underlying writer and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}

// Supported formats.
const (
	FormatText   = "text"
	FormatNDJSON = "ndjson"
)

// New returns a writer for format writing to w.
func New(format string, w io.Writer) (RecordWriter, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return NewTextWriter(w), nil
	case FormatNDJSON, "json":
		return NewWriter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q: %w", format, rserrors.ErrInvalidArgument)
}

// NewFile returns a writer for format writing to a newly created file.
// The format is checked before the file is created. Close closes the file.
func NewFile(format, filename string) (RecordWriter, error) {
	switch strings.ToLower(format) {
	case FormatNDJSON, "json":
		return NewFileWriter(filename)
	case FormatText, "":
		file, err := os.Create(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return &TextWriter{output: file, closeFunc: file.Close}, nil
	}
	return nil, fmt.Errorf("unknown output format %q: %w", format, rserrors.ErrInvalidArgument)
}

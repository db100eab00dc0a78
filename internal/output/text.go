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
	"sync"
)

// TextWriter writes one human-readable line per record. Values that
// implement fmt.Stringer, including Record, print through String.
type TextWriter struct {
	mu        sync.Mutex
	output    io.Writer
	count     int
	closeFunc func() error
}

// NewTextWriter creates a text writer for w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{output: w}
}

// Write writes record followed by a newline.
func (w *TextWriter) Write(record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintln(w.output, record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *TextWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying file when the writer created it. Writers
// from NewTextWriter leave w to the caller.
func (w *TextWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		err := w.closeFunc()
		w.closeFunc = nil
		return err
	}
	return nil
}

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
	"log/slog"

	"github.com/sirseerhq/runstate/internal/logging"
)

// entry is one line of reconciled output: a verbatim comment, or the value
// held by the schema option at index option.
type entry struct {
	option  int
	comment string
	value   string
}

const commentEntry = -1

// reconciler turns arbitrary file lines into schema-conformant entries.
//
// The scan walks the lines once with a cursor into the schema. A line that
// names the option under the cursor is accepted. Anything else in an option
// slot is replaced by that option's default, and recognisable values are set
// aside as merge candidates. Afterwards missing options are appended and the
// candidates are merged back into their options.
type reconciler struct {
	schema     *Schema
	logger     *slog.Logger
	report     *Report
	entries    []entry
	next       int
	candidates map[int][]string
	changed    bool
}

// reconcile returns the canonical entries for lines and whether they differ
// from the input. Counters are accumulated into report.
func reconcile(lines []string, schema *Schema, logger *slog.Logger, report *Report) ([]entry, bool) {
	r := &reconciler{
		schema:     schema,
		logger:     logger,
		report:     report,
		entries:    make([]entry, 0, len(lines)+schema.Len()),
		candidates: make(map[int][]string),
	}

	for i, raw := range lines {
		r.scan(i+1, ParseLine(raw))
	}
	r.fill()
	r.merge()

	return r.entries, r.changed
}

func (r *reconciler) scan(lineNo int, line Line) {
	switch line.Kind {
	case LineComment:
		r.entries = append(r.entries, entry{option: commentEntry, comment: line.Raw})
		return

	case LineMalformed:
		r.report.Malformed++
		r.logger.Debug("Dropping malformed state line", logging.LineNo(lineNo), logging.Value(line.Raw))
		r.replaceWithDefault()
		return
	}

	idx, known := r.schema.Index(line.Name)
	switch {
	case !known:
		r.report.Unknown++
		r.logger.Debug("Dropping unknown option", logging.LineNo(lineNo), logging.Option(line.Name))
		r.replaceWithDefault()

	case r.next >= r.schema.Len():
		r.report.Overflow++
		r.logger.Debug("Option repeated after all slots were filled",
			logging.LineNo(lineNo), logging.Option(line.Name), logging.Value(line.Value))
		r.candidates[idx] = append(r.candidates[idx], line.Value)
		r.changed = true

	case idx != r.next:
		r.report.Misplaced++
		r.logger.Debug("Option out of place",
			logging.LineNo(lineNo), logging.Option(line.Name),
			slog.String("expected", r.schema.At(r.next).Name))
		r.candidates[idx] = append(r.candidates[idx], line.Value)
		r.replaceWithDefault()

	default:
		r.entries = append(r.entries, entry{option: idx, value: line.Value})
		r.next++
	}
}

// replaceWithDefault puts the default of the option under the cursor in
// place of a rejected line. Once every slot is filled the line is dropped.
func (r *reconciler) replaceWithDefault() {
	r.changed = true
	if r.next >= r.schema.Len() {
		return
	}
	r.entries = append(r.entries, entry{option: r.next, value: r.schema.At(r.next).DefaultText()})
	r.next++
}

func (r *reconciler) fill() {
	for ; r.next < r.schema.Len(); r.next++ {
		opt := r.schema.At(r.next)
		r.report.Filled++
		r.logger.Debug("Adding missing option", logging.Option(opt.Name))
		r.entries = append(r.entries, entry{option: r.next, value: opt.DefaultText()})
		r.changed = true
	}
}

func (r *reconciler) merge() {
	if len(r.candidates) == 0 {
		return
	}

	for i := range r.entries {
		e := &r.entries[i]
		if e.option == commentEntry {
			continue
		}
		candidates, ok := r.candidates[e.option]
		if !ok {
			continue
		}

		opt := r.schema.At(e.option)
		winner := resolve(opt, e.value, candidates)
		if winner != e.value {
			r.report.Merged++
			r.logger.Debug("Merged option value",
				logging.Option(opt.Name), slog.String("from", e.value), slog.String("to", winner))
			e.value = winner
		}
	}
}

// render turns entries back into file lines.
func render(entries []entry, schema *Schema) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		if e.option == commentEntry {
			lines[i] = e.comment
			continue
		}
		lines[i] = formatOption(schema.At(e.option).Name, e.value)
	}
	return lines
}

// defaultLines is the content of a freshly created state file.
func defaultLines(schema *Schema) []string {
	lines := make([]string, schema.Len())
	for i := 0; i < schema.Len(); i++ {
		opt := schema.At(i)
		lines[i] = formatOption(opt.Name, opt.DefaultText())
	}
	return lines
}

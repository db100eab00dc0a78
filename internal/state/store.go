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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
	"github.com/sirseerhq/runstate/internal/logging"
)

// Store owns one state file and gives typed access to its options.
type Store struct {
	path    string
	schema  *Schema
	logger  *slog.Logger
	now     func() time.Time
	created bool
	report  Report
}

// OpenOption configures a Store.
type OpenOption func(*Store)

// WithLogger sets the logger used for repairs and anomalies.
func WithLogger(logger *slog.Logger) OpenOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used to stamp reports.
func WithClock(now func() time.Time) OpenOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Update is a single option assignment passed to Save.
type Update struct {
	Name  string
	Value any
}

// Set builds an Update.
func Set(name string, value any) Update {
	return Update{Name: name, Value: value}
}

// Open returns a store for path, creating the file from schema defaults
// when it does not exist and reconciling it against schema otherwise.
//
// Errors wrapping errors.ErrStorage mean the file could not be created,
// read or written. They are logged at critical severity; callers are
// expected to treat them as fatal.
func Open(path string, schema *Schema, opts ...OpenOption) (*Store, error) {
	if schema == nil {
		return nil, fmt.Errorf("nil schema: %w", rserrors.ErrInvalidSchema)
	}

	s := &Store{
		path:   path,
		schema: schema,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	report, err := s.Reconcile()
	if err != nil {
		return nil, err
	}
	s.created = report.Created

	return s, nil
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// Schema returns the schema the store reconciles against.
func (s *Store) Schema() *Schema { return s.schema }

// Created reports whether Open wrote the file from defaults. Callers may
// then use Schema().Defaults() instead of loading.
func (s *Store) Created() bool { return s.created }

// Report returns the result of the most recent reconciliation.
func (s *Store) Report() Report { return s.report }

// Reconcile repairs the state file so it matches the schema and rewrites it
// only when something changed. Open calls it once; long-running callers can
// call it again after the file was edited.
func (s *Store) Reconcile() (Report, error) {
	report := Report{Path: s.path, CheckedAt: s.now()}

	lines, err := readLines(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeLines(s.path, defaultLines(s.schema)); err != nil {
			return report, s.storageFailure("create", err)
		}
		s.logger.Info("Created state file from defaults", logging.Path(s.path), logging.Count(s.schema.Len()))
		report.Created = true
		s.report = report
		return report, nil
	}
	if err != nil {
		return report, s.storageFailure("read", err)
	}

	entries, changed := reconcile(lines, s.schema, s.logger, &report)
	if changed {
		if err := writeLines(s.path, render(entries, s.schema)); err != nil {
			return report, s.storageFailure("write", err)
		}
		report.Rewritten = true
		s.logger.Info("Repaired state file", logging.Path(s.path), slog.String("summary", report.Summary()))
	}

	s.report = report
	return report, nil
}

// Load reads the option values from disk. With no names it returns every
// option line in the file; otherwise only the requested names that are
// present, and errors.ErrNoData if none are. Stored text is converted to
// int64 or bool where it parses as one, else kept as a string.
//
// A file without a single parsable option line is treated as corrupt: the
// schema defaults are returned instead and the event is logged.
func (s *Store) Load(names ...string) (Values, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, s.storageFailure("read", err)
	}

	values := make(Values)
	for _, raw := range lines {
		line := ParseLine(raw)
		if line.Kind != LineOption {
			continue
		}
		values[line.Name] = Coerce(line.Value)
	}

	if len(values) == 0 {
		s.logger.Error("State file has no readable options, using defaults", logging.Path(s.path))
		values = s.schema.Defaults()
	}

	if len(names) == 0 {
		return values, nil
	}

	filtered := make(Values, len(names))
	for _, name := range names {
		if v, ok := values[name]; ok {
			filtered[name] = v
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(names, ", "), rserrors.ErrNoData)
	}
	return filtered, nil
}

// Save writes updates to their option lines. Updates whose value already
// matches the stored text are skipped, as are updates for options missing
// from the file; the latter are logged. The file is rewritten only when at
// least one line changed, and Save reports whether it did.
func (s *Store) Save(updates ...Update) (bool, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return false, s.storageFailure("read", err)
	}

	positions := make(map[string]int, len(lines))
	stored := make(map[string]string, len(lines))
	for i, raw := range lines {
		line := ParseLine(raw)
		if line.Kind != LineOption {
			continue
		}
		if _, seen := positions[line.Name]; !seen {
			positions[line.Name] = i
			stored[line.Name] = line.Value
		}
	}

	changed := false
	for _, u := range updates {
		text := FormatValue(u.Value)
		if strings.ContainsAny(text, "\r\n") {
			s.logger.Error("Refusing to save value with a line break", logging.Path(s.path), logging.Option(u.Name))
			continue
		}

		pos, ok := positions[u.Name]
		if !ok {
			s.logger.Error("Option not found in state file, skipping", logging.Path(s.path), logging.Option(u.Name))
			continue
		}
		if stored[u.Name] == text {
			continue
		}

		lines[pos] = formatOption(u.Name, text)
		stored[u.Name] = text
		changed = true
	}

	if !changed {
		return false, nil
	}
	if err := writeLines(s.path, lines); err != nil {
		return false, s.storageFailure("write", err)
	}
	return true, nil
}

func (s *Store) storageFailure(op string, err error) error {
	logging.Critical(s.logger, "State file unusable",
		logging.Path(s.path), slog.String("op", op), logging.Error(err))
	return fmt.Errorf("failed to %s state file %s: %w: %w", op, s.path, rserrors.ErrStorage, err)
}

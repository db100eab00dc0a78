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
	"fmt"
	"strconv"
	"strings"
	"unicode"

	rserrors "github.com/sirseerhq/runstate/internal/errors"
)

// Kind declares how an option's values are compared when duplicates
// have to be merged.
type Kind int

const (
	// KindString values are opaque text. Merging infers integer or
	// version ordering when every candidate allows it.
	KindString Kind = iota
	// KindInt values are base-10 integers; the greatest wins a merge.
	KindInt
	// KindBool values are booleans stored as "true" or "false".
	KindBool
	// KindVersion values are major.minor[.patch] versions; the highest wins a merge.
	KindVersion
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindInt:     "int",
	KindBool:    "bool",
	KindVersion: "version",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name ("string", "int", "bool", "version") to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "str":
		return KindString, nil
	case "int", "integer":
		return KindInt, nil
	case "bool", "boolean":
		return KindBool, nil
	case "version", "semver":
		return KindVersion, nil
	}
	return KindString, fmt.Errorf("unknown option kind %q: %w", s, rserrors.ErrInvalidSchema)
}

// Option is a single named entry of a Schema together with its default value.
type Option struct {
	Name    string
	Kind    Kind
	Default any
}

// Int declares an integer option.
func Int(name string, def int64) Option {
	return Option{Name: name, Kind: KindInt, Default: def}
}

// Bool declares a boolean option.
func Bool(name string, def bool) Option {
	return Option{Name: name, Kind: KindBool, Default: def}
}

// Version declares a version option such as "1.4.0".
func Version(name, def string) Option {
	return Option{Name: name, Kind: KindVersion, Default: def}
}

// String declares an opaque text option.
func String(name, def string) Option {
	return Option{Name: name, Kind: KindString, Default: def}
}

// DefaultText returns the default as it is written to the state file.
func (o Option) DefaultText() string {
	return FormatValue(o.Default)
}

// Accepts reports whether text is a valid stored value for the option.
// The returned error wraps errors.ErrInvalidArgument.
func (o Option) Accepts(text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("option %q: value contains a line break: %w", o.Name, rserrors.ErrInvalidArgument)
	}

	var ok bool
	switch o.Kind {
	case KindInt:
		_, err := strconv.ParseInt(text, 10, 64)
		ok = err == nil
	case KindBool:
		_, ok = parseBoolValue(text)
	case KindVersion:
		_, ok = parseVersion(text)
	default:
		ok = true
	}
	if !ok {
		return fmt.Errorf("option %q: %q is not a valid %s: %w", o.Name, text, o.Kind, rserrors.ErrInvalidArgument)
	}
	return nil
}

// Schema is the ordered, immutable set of options known to the application.
// Order is significant: a reconciled state file lists options in schema order.
type Schema struct {
	options []Option
	index   map[string]int
}

// NewSchema validates opts and returns the schema they describe. Option
// names must be unique, non-empty, free of ':' and whitespace, and must not
// start with '#'. Defaults must match the option kind.
func NewSchema(opts ...Option) (*Schema, error) {
	s := &Schema{
		options: make([]Option, 0, len(opts)),
		index:   make(map[string]int, len(opts)),
	}

	for _, opt := range opts {
		if err := validateName(opt.Name); err != nil {
			return nil, err
		}
		if _, dup := s.index[opt.Name]; dup {
			return nil, fmt.Errorf("duplicate option %q: %w", opt.Name, rserrors.ErrInvalidSchema)
		}

		def, err := normalizeDefault(opt)
		if err != nil {
			return nil, err
		}
		opt.Default = def

		s.index[opt.Name] = len(s.options)
		s.options = append(s.options, opt)
	}

	return s, nil
}

// Len returns the number of options.
func (s *Schema) Len() int { return len(s.options) }

// At returns the i-th option in schema order.
func (s *Schema) At(i int) Option { return s.options[i] }

// Index returns the schema position of name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns the option names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.options))
	for i, opt := range s.options {
		names[i] = opt.Name
	}
	return names
}

// Defaults returns every option's default, keeping the default's Go type.
func (s *Schema) Defaults() Values {
	values := make(Values, len(s.options))
	for _, opt := range s.options {
		values[opt.Name] = opt.Default
	}
	return values
}

func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty option name: %w", rserrors.ErrInvalidSchema)
	case strings.HasPrefix(name, "#"):
		return fmt.Errorf("option %q starts with a comment marker: %w", name, rserrors.ErrInvalidSchema)
	case strings.Contains(name, ":"):
		return fmt.Errorf("option %q contains ':': %w", name, rserrors.ErrInvalidSchema)
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return fmt.Errorf("option %q contains whitespace: %w", name, rserrors.ErrInvalidSchema)
	}
	return nil
}

func normalizeDefault(opt Option) (any, error) {
	switch opt.Kind {
	case KindInt:
		switch v := opt.Default.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case nil:
			return int64(0), nil
		}
	case KindBool:
		switch v := opt.Default.(type) {
		case bool:
			return v, nil
		case nil:
			return false, nil
		}
	case KindVersion:
		if v, ok := opt.Default.(string); ok {
			if _, valid := parseVersion(v); valid {
				return v, nil
			}
			return nil, fmt.Errorf("option %q: default %q is not a major.minor[.patch] version: %w",
				opt.Name, v, rserrors.ErrInvalidSchema)
		}
	case KindString:
		switch v := opt.Default.(type) {
		case string:
			if strings.ContainsAny(v, "\r\n") {
				return nil, fmt.Errorf("option %q: default contains a line break: %w", opt.Name, rserrors.ErrInvalidSchema)
			}
			return v, nil
		case nil:
			return "", nil
		}
	default:
		return nil, fmt.Errorf("option %q: %s: %w", opt.Name, opt.Kind, rserrors.ErrInvalidSchema)
	}

	return nil, fmt.Errorf("option %q: default %v (%T) does not match kind %s: %w",
		opt.Name, opt.Default, opt.Default, opt.Kind, rserrors.ErrInvalidSchema)
}

// FormatValue renders a value the way it is stored on disk.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Values maps option names to loaded values. Values are int64, bool or
// string, depending on what the stored text parses as.
type Values map[string]any

// Int returns the named value if it holds an integer.
func (v Values) Int(name string) (int64, bool) {
	n, ok := v[name].(int64)
	return n, ok
}

// Bool returns the named value if it holds a boolean. The integers 1 and 0
// count as true and false.
func (v Values) Bool(name string) (bool, bool) {
	switch t := v[name].(type) {
	case bool:
		return t, true
	case int64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	}
	return false, false
}

// Text returns the named value as it is written to the state file.
func (v Values) Text(name string) (string, bool) {
	raw, ok := v[name]
	if !ok {
		return "", false
	}
	return FormatValue(raw), true
}

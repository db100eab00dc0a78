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

package duration

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Sentinel phrases, also used as catalog keys.
const (
	AnyTimeNow      = "any time now"
	LessThanAMinute = "less than a minute"
)

// andKey joins the last two displayed units.
const andKey = "%s and %s"

type unit struct {
	step int64
	// key is the plural catalog key; singular and plural are the
	// untranslated forms.
	key      string
	singular string
	plural   string
}

var units = []unit{
	{step: 604800, key: "%d weeks", singular: "week", plural: "weeks"},
	{step: 86400, key: "%d days", singular: "day", plural: "days"},
	{step: 3600, key: "%d hours", singular: "hour", plural: "hours"},
	{step: 60, key: "%d minutes", singular: "minute", plural: "minutes"},
	{step: 1, key: "%d seconds", singular: "second", plural: "seconds"},
}

// part is one decomposed unit. value may be zero for units below the
// largest non-zero one.
type part struct {
	unit  int
	value int64
}

// Formatter converts seconds to text. The zero value is not usable; build
// one with New.
type Formatter struct {
	locale  language.Tag
	catalog catalog.Catalog
	printer *message.Printer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLocale sets the language used when translating. Languages missing
// from the catalog fall back to English.
func WithLocale(tag language.Tag) Option {
	return func(f *Formatter) {
		f.locale = tag
	}
}

// WithCatalog replaces the built-in translations. The catalog must define
// every unit key, the sentinels and the "%s and %s" joiner.
func WithCatalog(cat catalog.Catalog) Option {
	return func(f *Formatter) {
		if cat != nil {
			f.catalog = cat
		}
	}
}

// New returns a Formatter. Without options it formats English text.
func New(opts ...Option) *Formatter {
	f := &Formatter{locale: language.English}
	for _, opt := range opts {
		opt(f)
	}
	if f.catalog == nil {
		f.catalog = builtinCatalog()
	}
	f.printer = message.NewPrinter(f.match(), message.Catalog(f.catalog))
	return f
}

// match picks the catalog language closest to the configured locale,
// English when nothing is close.
func (f *Formatter) match() language.Tag {
	langs := append([]language.Tag{language.English}, f.catalog.Languages()...)
	_, idx, _ := language.NewMatcher(langs).Match(f.locale)
	return langs[idx]
}

// Locale returns the configured language.
func (f *Formatter) Locale() language.Tag { return f.locale }

var defaultFormatter = sync.OnceValue(func() *Formatter { return New() })

// Convert formats seconds with the English formatter.
func Convert(seconds int64, granularity int, rounded, translate bool) string {
	return defaultFormatter().Convert(seconds, granularity, rounded, translate)
}

// Convert formats seconds using at most granularity units, largest first.
// Negative input reads "any time now" and anything under a minute reads
// "less than a minute". When rounded is set the units that do not fit are
// folded into the displayed ones instead of being cut off. When translate
// is set the text goes through the formatter's catalog.
func (f *Formatter) Convert(seconds int64, granularity int, rounded, translate bool) string {
	switch {
	case seconds < 0:
		return f.phrase(AnyTimeNow, translate)
	case seconds < 60:
		return f.phrase(LessThanAMinute, translate)
	}
	if granularity < 1 {
		granularity = 1
	}

	parts := decompose(seconds)
	if rounded && len(parts) > granularity && !exact(parts[granularity:]) {
		parts = decompose(roundTotal(seconds, parts, granularity))
	}
	if len(parts) > granularity {
		parts = parts[:granularity]
	}

	var shown []string
	for _, p := range parts {
		if p.value == 0 {
			continue
		}
		shown = append(shown, f.unitText(p, translate))
	}
	return f.join(shown, translate)
}

// decompose splits seconds greedily into units, starting at the largest
// unit that fits.
func decompose(seconds int64) []part {
	var parts []part
	rest := seconds
	for i, u := range units {
		n := rest / u.step
		if n == 0 && len(parts) == 0 {
			continue
		}
		parts = append(parts, part{unit: i, value: n})
		rest -= n * u.step
	}
	return parts
}

func exact(parts []part) bool {
	for _, p := range parts {
		if p.value != 0 {
			return false
		}
	}
	return true
}

// roundTotal folds everything below the last displayed unit into it. At
// granularity 1 that unit rounds half up against its own step. Otherwise
// the last displayed unit is itself carried into its coarser neighbour when
// it exceeds half of that neighbour's step, and dropped when it does not.
func roundTotal(seconds int64, parts []part, granularity int) int64 {
	anchor := parts[0].unit
	if granularity > 1 {
		anchor = parts[granularity-2].unit
	}
	step := units[anchor].step

	residual := seconds % step
	total := seconds - residual
	if (2*residual > step || (granularity == 1 && 2*residual == step)) && total <= math.MaxInt64-step {
		total += step
	}
	return total
}

func (f *Formatter) unitText(p part, translate bool) string {
	u := units[p.unit]
	if translate {
		return f.printer.Sprintf(u.key, p.value)
	}
	if p.value == 1 {
		return "1 " + u.singular
	}
	return fmt.Sprintf("%d %s", p.value, u.plural)
}

func (f *Formatter) phrase(key string, translate bool) string {
	if !translate {
		return key
	}
	switch key {
	case AnyTimeNow:
		return f.printer.Sprintf(AnyTimeNow)
	case LessThanAMinute:
		return f.printer.Sprintf(LessThanAMinute)
	}
	return key
}

func (f *Formatter) join(shown []string, translate bool) string {
	switch len(shown) {
	case 0:
		return f.phrase(LessThanAMinute, translate)
	case 1:
		return shown[0]
	}

	head := strings.Join(shown[:len(shown)-1], ", ")
	last := shown[len(shown)-1]
	if translate {
		return f.printer.Sprintf(andKey, head, last)
	}
	return fmt.Sprintf(andKey, head, last)
}

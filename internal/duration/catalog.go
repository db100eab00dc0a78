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
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// translation holds one language's phrases. units follows the order of the
// package-level units table, each as {singular, plural} format strings.
type translation struct {
	units      [5][2]string
	anyTimeNow string
	lessThan   string
	and        string
}

var translations = map[language.Tag]translation{
	language.English: {
		units: [5][2]string{
			{"%d week", "%d weeks"},
			{"%d day", "%d days"},
			{"%d hour", "%d hours"},
			{"%d minute", "%d minutes"},
			{"%d second", "%d seconds"},
		},
		anyTimeNow: "any time now",
		lessThan:   "less than a minute",
		and:        "%s and %s",
	},
	language.German: {
		units: [5][2]string{
			{"%d Woche", "%d Wochen"},
			{"%d Tag", "%d Tage"},
			{"%d Stunde", "%d Stunden"},
			{"%d Minute", "%d Minuten"},
			{"%d Sekunde", "%d Sekunden"},
		},
		anyTimeNow: "jeden Moment",
		lessThan:   "weniger als eine Minute",
		and:        "%s und %s",
	},
	language.French: {
		units: [5][2]string{
			{"%d semaine", "%d semaines"},
			{"%d jour", "%d jours"},
			{"%d heure", "%d heures"},
			{"%d minute", "%d minutes"},
			{"%d seconde", "%d secondes"},
		},
		anyTimeNow: "d'un instant à l'autre",
		lessThan:   "moins d'une minute",
		and:        "%s et %s",
	},
}

// Languages returns the languages of the built-in catalog.
func Languages() []language.Tag {
	return builtinCatalog().Languages()
}

// NewCatalogBuilder returns a builder preloaded with the built-in
// translations. Callers can add languages to it and pass it to
// WithCatalog.
func NewCatalogBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, tr := range translations {
		mustSet(b, tag, AnyTimeNow, catalog.String(tr.anyTimeNow))
		mustSet(b, tag, LessThanAMinute, catalog.String(tr.lessThan))
		mustSet(b, tag, andKey, catalog.String(tr.and))
		for i, u := range units {
			forms := tr.units[i]
			mustSet(b, tag, u.key, plural.Selectf(1, "%d", "=1", forms[0], "other", forms[1]))
		}
	}
	return b
}

var builtinCatalog = sync.OnceValue(func() *catalog.Builder { return NewCatalogBuilder() })

func mustSet(b *catalog.Builder, tag language.Tag, key string, msg catalog.Message) {
	if err := b.Set(tag, key, msg); err != nil {
		panic("duration: invalid built-in catalog entry " + key + ": " + err.Error())
	}
}

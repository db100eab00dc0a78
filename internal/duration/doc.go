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

// Package duration renders elapsed seconds as short human-readable text
// such as "2 hours and 5 minutes".
//
// Only weeks, days, hours, minutes and seconds are used. Months and years
// have no fixed length and are never shown. Granularity limits how many
// units appear; with rounding enabled the dropped units are folded into the
// displayed ones, so 6 days and 20 hours at granularity 1 reads "1 week".
//
// Text can be localized through golang.org/x/text/message. The built-in
// catalog carries English, German and French:
//
//	f := duration.New(duration.WithLocale(language.German))
//	f.Convert(90000, 2, true, true) // "1 Tag und 1 Stunde"
package duration

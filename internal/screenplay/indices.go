/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"regexp"
	"sort"
	"strings"

	"scriptdraft/internal/element"
)

var (
	// Parenthetical modifiers after a cue name: (CONT'D), (V.O.), (O.S.), ...
	cueModifierRe = regexp.MustCompile(`\s*\([^)]*\)`)
	// Scene heading prefix plus the location portion up to the first dash.
	locationRe = regexp.MustCompile(`(?i)^\s*(INT\./EXT\.|INT/EXT\.|I/E\.|INT\.|EXT\.)\s*([^-]+)`)
)

// MarkIndicesStale flags the cached character and location indices for a
// rebuild on next access.
func (d *Document) MarkIndicesStale() { d.stale = true }

// Characters returns the distinct normalized character names appearing in
// Character elements, sorted. The result is a copy.
func (d *Document) Characters() []string {
	if d.stale {
		d.RebuildIndices()
	}
	return append([]string(nil), d.characters...)
}

// Locations returns the distinct locations extracted from Scene Heading
// elements, sorted. The result is a copy.
func (d *Document) Locations() []string {
	if d.stale {
		d.RebuildIndices()
	}
	return append([]string(nil), d.locations...)
}

// RebuildIndices rescans the whole element sequence and replaces both
// indices. The indices are derived data only; rebuilding never changes
// element content.
func (d *Document) RebuildIndices() {
	chars := map[string]struct{}{}
	locs := map[string]struct{}{}
	for _, e := range d.Elements {
		switch e.Type {
		case element.Character:
			if name, ok := NormalizeCharacterName(e.Text); ok {
				chars[name] = struct{}{}
			}
		case element.SceneHeading:
			if loc, ok := LocationFromSceneHeading(e.Text); ok {
				locs[loc] = struct{}{}
			}
		}
	}
	d.characters = sortedKeys(chars)
	d.locations = sortedKeys(locs)
	d.stale = false
}

// NormalizeCharacterName reduces a character cue to its canonical index
// form: parenthetical modifiers such as (CONT'D), (V.O.) or (O.S.) are
// stripped, whitespace collapsed, trailing punctuation removed, and the
// result uppercased. ok is false when nothing name-like remains (fewer than
// two characters).
func NormalizeCharacterName(text string) (string, bool) {
	s := cueModifierRe.ReplaceAllString(text, " ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRight(s, ".!?,:")
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return "", false
	}
	return s, true
}

// LocationFromSceneHeading extracts the location portion of a scene heading:
// the text between the INT./EXT. style prefix and the first dash, so
// "INT. COFFEE SHOP - DAY" yields "COFFEE SHOP". ok is false when the text
// has no recognized prefix or the location is too short to index.
func LocationFromSceneHeading(text string) (string, bool) {
	m := locationRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	loc := strings.ToUpper(strings.TrimSpace(m[2]))
	if len(loc) < 2 {
		return "", false
	}
	return loc, true
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

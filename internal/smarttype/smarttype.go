/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package smarttype suggests completions while typing: screenwriting stock
// terms plus the names and places already used in the open document.
package smarttype

import (
	"sort"
	"strings"
	"sync"

	"scriptdraft/internal/screenplay"
)

// Stock screenwriting vocabulary, always suggested regardless of document
// content.
var commonTerms = []string{
	"INT.", "EXT.", "INT/EXT.", "I/E.",
	"FADE IN:", "FADE OUT", "FADE TO BLACK",
	"CUT TO:", "DISSOLVE TO:", "SMASH CUT TO:", "MATCH CUT TO:", "JUMP CUT TO:",
	"CONT'D", "CONTINUED", "V.O.", "O.S.", "O.C.",
	"DAY", "NIGHT", "MORNING", "EVENING", "LATER", "CONTINUOUS",
}

const (
	minPrefixLen   = 2
	maxSuggestions = 10
)

// Engine holds the completion vocabulary. Safe for concurrent use; the
// document scan runs off the editing thread.
type Engine struct {
	mu         sync.RWMutex
	characters []string
	locations  []string
}

func NewEngine() *Engine { return &Engine{} }

// UpdateFromDocument refreshes the document-derived vocabulary from the
// character and location indices.
func (e *Engine) UpdateFromDocument(doc *screenplay.Document) {
	chars := doc.Characters()
	locs := doc.Locations()
	e.mu.Lock()
	e.characters = chars
	e.locations = locs
	e.mu.Unlock()
}

// CurrentWord finds the word under the cursor in text: the maximal run of
// letters, digits, apostrophes, periods and slashes ending at cursor. The
// returned start is the byte offset a completion would replace from.
func CurrentWord(text string, cursor int) (word string, start int) {
	if cursor > len(text) {
		cursor = len(text)
	}
	if cursor < 0 {
		cursor = 0
	}
	start = cursor
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	return text[start:cursor], start
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '\'' || b == '.' || b == '/':
		return true
	}
	return false
}

// Suggest returns up to 10 completions for prefix, case-insensitively, in
// order: matching characters, then locations, then stock terms. Prefixes
// shorter than 2 characters yield nothing to avoid noise while typing.
func (e *Engine) Suggest(prefix string) []string {
	if len(prefix) < minPrefixLen {
		return nil
	}
	p := strings.ToUpper(prefix)

	e.mu.RLock()
	pools := [][]string{e.characters, e.locations, commonTerms}
	out := make([]string, 0, maxSuggestions)
	seen := map[string]struct{}{}
	for _, pool := range pools {
		for _, cand := range pool {
			if len(out) == maxSuggestions {
				break
			}
			if !strings.HasPrefix(strings.ToUpper(cand), p) {
				continue
			}
			if _, dup := seen[cand]; dup {
				continue
			}
			seen[cand] = struct{}{}
			out = append(out, cand)
		}
	}
	e.mu.RUnlock()

	if len(out) == 0 {
		return nil
	}
	return out
}

// Vocabulary returns the full merged candidate list, sorted, mainly for
// diagnostics.
func (e *Engine) Vocabulary() []string {
	e.mu.RLock()
	all := make([]string, 0, len(e.characters)+len(e.locations)+len(commonTerms))
	all = append(all, e.characters...)
	all = append(all, e.locations...)
	e.mu.RUnlock()
	all = append(all, commonTerms...)
	sort.Strings(all)
	return all
}

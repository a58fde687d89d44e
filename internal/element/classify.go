/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"strings"
	"unicode"
)

// Slug prefixes that open a scene heading.
var sceneHeadingPrefixes = []string{"INT.", "EXT.", "INT/EXT.", "I/E."}

// Transition families, matched exactly or as a word prefix ("FADE OUT.",
// "CUT TO:", "SMASH CUT TO:").
var transitionPrefixes = []string{"FADE", "CUT", "DISSOLVE", "SMASH", "MATCH", "JUMP"}

// Shot families ("CLOSE ON SARAH", "ANGLE ON the door").
var shotPrefixes = []string{"CLOSE", "WIDE", "MEDIUM", "EXTREME", "POV", "ANGLE"}

const maxCharacterTokens = 4

// Classify maps one raw paragraph of text to its best-matching element type.
// prev is the type of the preceding element, or None.
//
// Rules are evaluated in priority order, first match wins:
// scene heading prefix, parenthetical, transition keyword, shot keyword,
// all-caps character name, then the context-sensitive fallback: Dialogue
// after a Character or Parenthetical, Action otherwise.
//
// Classify is pure: identical inputs always yield the same type.
func Classify(text string, prev Type) Type {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallback(prev)
	}

	if HasSceneHeadingPrefix(trimmed) {
		return SceneHeading
	}
	if isParenthetical(trimmed) {
		return Parenthetical
	}
	if hasKeywordPrefix(trimmed, transitionPrefixes) {
		return Transition
	}
	if hasKeywordPrefix(trimmed, shotPrefixes) && isAllCaps(trimmed) {
		return Shot
	}
	if isCharacterName(trimmed) {
		return Character
	}
	return fallback(prev)
}

func fallback(prev Type) Type {
	if prev == Character || prev == Parenthetical {
		return Dialogue
	}
	return Action
}

// HasSceneHeadingPrefix reports whether text starts with one of the slug
// prefixes, case-insensitively.
func HasSceneHeadingPrefix(text string) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, p := range sceneHeadingPrefixes {
		if strings.HasPrefix(upper, p) {
			return true
		}
	}
	return false
}

// isParenthetical reports whether text is wholly enclosed in one matching
// pair of parentheses.
func isParenthetical(text string) bool {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return false
	}
	depth := 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && i < len(text)-1 {
			return false
		}
	}
	return depth == 0
}

// hasKeywordPrefix reports whether the first word of text belongs to the
// keyword family, case-insensitively.
func hasKeywordPrefix(text string, keywords []string) bool {
	upper := strings.ToUpper(text)
	for _, k := range keywords {
		if upper == k {
			return true
		}
		if strings.HasPrefix(upper, k) {
			rest := upper[len(k):]
			if rest == "" || rest[0] == ' ' || rest[0] == ':' || rest[0] == '.' {
				return true
			}
		}
	}
	return false
}

// isCharacterName applies the character heuristic: entirely uppercase, at
// least one letter, at most four space-separated tokens, and no trailing
// period (which would read as abbreviated action).
func isCharacterName(text string) bool {
	if !isAllCaps(text) {
		return false
	}
	if strings.HasSuffix(text, ".") {
		return false
	}
	return len(strings.Fields(text)) <= maxCharacterTokens
}

// isAllCaps reports whether text contains at least one letter and no
// lowercase letters. Digits, punctuation and spaces are allowed.
func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

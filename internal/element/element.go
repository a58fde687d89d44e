/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package element defines the screenplay element taxonomy: the closed set of
// paragraph types, their default formatting, the classifier that maps raw
// text to a type, and the Enter/Tab transition tables.
package element

import "fmt"

// Type is the closed classification of screenplay paragraph content.
type Type int

const (
	SceneHeading Type = iota
	Action
	Character
	Dialogue
	Parenthetical
	Transition
	Shot
)

// None marks the absence of a preceding element for context-sensitive
// classification. It is not a valid element type itself.
const None Type = -1

// Types lists every valid element type in declaration order.
var Types = []Type{SceneHeading, Action, Character, Dialogue, Parenthetical, Transition, Shot}

// String returns the industry-standard display name, which is also the
// label used by both XML dialects.
func (t Type) String() string {
	switch t {
	case SceneHeading:
		return "Scene Heading"
	case Action:
		return "Action"
	case Character:
		return "Character"
	case Dialogue:
		return "Dialogue"
	case Parenthetical:
		return "Parenthetical"
	case Transition:
		return "Transition"
	case Shot:
		return "Shot"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType maps a display name back to its Type. The boolean is false for
// labels outside the taxonomy.
func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if t.String() == s {
			return t, true
		}
	}
	return Action, false
}

// Alignment is the horizontal paragraph alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// ParseAlignment maps the serialized form back to an Alignment. Unknown
// values fall back to left, matching the lenient reader behavior.
func ParseAlignment(s string) Alignment {
	switch s {
	case "right":
		return AlignRight
	case "center":
		return AlignCenter
	default:
		return AlignLeft
	}
}

// Twips is the margin unit: twentieths of a point, 1440 per inch.
const TwipsPerInch = 1440

// Font weights as used in the serialized formats.
const (
	WeightRegular = 400
	WeightBold    = 700
)

// Formatting carries every layout attribute a paragraph can have. Margins
// are measured in twips from the page body edges; SpaceBefore/SpaceAfter are
// points of vertical padding.
type Formatting struct {
	LeftMargin  int
	RightMargin int
	Alignment   Alignment
	FontWeight  int
	AllCaps     bool
	Italic      bool
	SpaceBefore int
	SpaceAfter  int
}

// DefaultFormatting returns the static layout rules for a type. It is total
// and constant: every valid type maps to a fixed record, and the caller gets
// a copy. Invalid types get the Action defaults.
//
// The margins follow US screenplay convention: Character at 4" from the page
// left edge, Dialogue as a 2.5"/2" block, Parenthetical a 3.5"/2.5" italic
// block, Transition flush right.
func DefaultFormatting(t Type) Formatting {
	switch t {
	case SceneHeading:
		return Formatting{Alignment: AlignLeft, FontWeight: WeightBold, AllCaps: true, SpaceBefore: 12, SpaceAfter: 12}
	case Character:
		return Formatting{LeftMargin: 4 * TwipsPerInch, Alignment: AlignLeft, FontWeight: WeightBold, AllCaps: true, SpaceBefore: 12, SpaceAfter: 6}
	case Dialogue:
		return Formatting{LeftMargin: 5 * TwipsPerInch / 2, RightMargin: 2 * TwipsPerInch, Alignment: AlignLeft, FontWeight: WeightRegular, SpaceBefore: 6, SpaceAfter: 6}
	case Parenthetical:
		return Formatting{LeftMargin: 7 * TwipsPerInch / 2, RightMargin: 5 * TwipsPerInch / 2, Alignment: AlignLeft, FontWeight: WeightRegular, Italic: true, SpaceBefore: 6, SpaceAfter: 6}
	case Transition:
		return Formatting{Alignment: AlignRight, FontWeight: WeightBold, AllCaps: true, SpaceBefore: 12, SpaceAfter: 12}
	case Shot:
		return Formatting{Alignment: AlignLeft, FontWeight: WeightBold, AllCaps: true, SpaceBefore: 6, SpaceAfter: 6}
	default: // Action and anything out of range
		return Formatting{Alignment: AlignLeft, FontWeight: WeightRegular, SpaceBefore: 6, SpaceAfter: 6}
	}
}

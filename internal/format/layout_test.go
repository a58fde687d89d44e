/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package format

import (
	"fmt"
	"strings"
	"testing"

	"scriptdraft/internal/element"
	"scriptdraft/internal/screenplay"
)

func TestPaginateSinglePage(t *testing.T) {
	pages := Paginate(sampleDoc())
	if len(pages) != 1 {
		t.Fatalf("short script paginated to %d pages", len(pages))
	}
	if pages[0].Number != 1 {
		t.Fatalf("first page numbered %d", pages[0].Number)
	}
	if len(pages[0].Lines) == 0 || len(pages[0].Lines) > LinesPerPage {
		t.Fatalf("page holds %d lines", len(pages[0].Lines))
	}
}

func TestPaginateBreaksAtCapacity(t *testing.T) {
	doc := screenplay.New()
	doc.Elements = doc.Elements[:0]
	for i := 0; i < 80; i++ {
		doc.Elements = append(doc.Elements, screenplay.Element{
			Type: element.Action,
			Text: fmt.Sprintf("Beat %d.", i),
		})
	}
	pages := Paginate(doc)
	if len(pages) < 2 {
		t.Fatalf("80 single-line elements fit on %d page(s)", len(pages))
	}
	for _, p := range pages {
		if len(p.Lines) > LinesPerPage {
			t.Fatalf("page %d holds %d lines, cap is %d", p.Number, len(p.Lines), LinesPerPage)
		}
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Fatalf("page %d numbered %d", i, p.Number)
		}
	}
}

func TestPaginateKeepsCharacterWithDialogue(t *testing.T) {
	doc := screenplay.New()
	doc.Elements = doc.Elements[:0]
	// Enough action to leave exactly one free line at the bottom of page 1.
	for i := 0; i < 27; i++ {
		doc.Elements = append(doc.Elements, screenplay.Element{
			Type: element.Action,
			Text: fmt.Sprintf("Beat %d.", i),
		})
	}
	doc.Elements = append(doc.Elements,
		screenplay.Element{Type: element.Character, Text: "SARAH"},
		screenplay.Element{Type: element.Dialogue, Text: "Wait."},
	)
	pages := Paginate(doc)
	for _, p := range pages {
		for i, l := range p.Lines {
			if l.Text != "SARAH" {
				continue
			}
			if i == len(p.Lines)-1 {
				t.Fatalf("character cue orphaned at the bottom of page %d", p.Number)
			}
		}
	}
}

// A cue that would still fit on the page must move anyway when its speech
// block does not.
func TestPaginateKeepsCueWithWrappedDialogue(t *testing.T) {
	doc := screenplay.New()
	doc.Elements = doc.Elements[:0]
	// Leaves room for the cue but not for the two-line dialogue under it.
	for i := 0; i < 26; i++ {
		doc.Elements = append(doc.Elements, screenplay.Element{
			Type: element.Action,
			Text: fmt.Sprintf("Beat %d.", i),
		})
	}
	doc.Elements = append(doc.Elements,
		screenplay.Element{Type: element.Character, Text: "SARAH"},
		screenplay.Element{Type: element.Dialogue, Text: "I can't believe this is happening."},
	)
	pages := Paginate(doc)
	for _, p := range pages {
		for i, l := range p.Lines {
			if l.Text != "SARAH" {
				continue
			}
			if i == len(p.Lines)-1 {
				t.Fatalf("character cue orphaned at the bottom of page %d", p.Number)
			}
			spoken := false
			for _, rest := range p.Lines[i+1:] {
				if strings.TrimSpace(rest.Text) != "" {
					spoken = true
					break
				}
			}
			if !spoken {
				t.Fatalf("no dialogue follows the cue on page %d", p.Number)
			}
		}
	}
}

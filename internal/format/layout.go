/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package format

import (
	"scriptdraft/internal/element"
	"scriptdraft/internal/screenplay"
)

// LinesPerPage is the industry-standard body measure of a screenplay page.
const LinesPerPage = 55

// Line is one rendered monospace row.
type Line struct {
	Indent int
	Text   string
}

// Page is one paginated screenplay page.
type Page struct {
	Number int
	Lines  []Line
}

// Paginate lays the document out into pages of at most LinesPerPage body
// lines. A Character cue is never orphaned as the last line of a page; it
// moves to the next page together with its dialogue.
func Paginate(doc *screenplay.Document) []Page {
	pages := []Page{{Number: 1}}
	cur := &pages[len(pages)-1]
	used := 0

	breakPage := func() {
		pages = append(pages, Page{Number: len(pages) + 1})
		cur = &pages[len(pages)-1]
		used = 0
	}

	for i, e := range doc.Elements {
		block := renderElement(e)
		need := len(block)
		if used > 0 {
			need++ // separator line between elements
		}
		// Blocks never split across pages, so a cue whose speech cannot
		// share the page must move with it: reserve room for the whole
		// following spoken block when deciding the break.
		if e.Type == element.Character && i+1 < len(doc.Elements) {
			switch doc.Elements[i+1].Type {
			case element.Dialogue, element.Parenthetical:
				need += 1 + len(renderElement(doc.Elements[i+1]))
			}
		}
		if used > 0 && used+need > LinesPerPage {
			breakPage()
		}
		if used > 0 {
			cur.Lines = append(cur.Lines, Line{})
			used++
		}
		cur.Lines = append(cur.Lines, block...)
		used += len(block)
	}
	return pages
}

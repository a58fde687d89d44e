/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package format

import (
	"strings"
	"unicode/utf8"

	"scriptdraft/internal/element"
	"scriptdraft/internal/screenplay"
)

// Plain text renders at a fixed 10 characters per inch, the classic
// monospace screenplay measure.
const (
	twipsPerColumn = element.TwipsPerInch / 10
	// Columns available to a full-measure element (Action) between the
	// page margins.
	plainTextColumns = 60
)

func savePlainText(doc *screenplay.Document) ([]byte, error) {
	var b strings.Builder
	if doc.Meta.Title != "" {
		writeCentered(&b, strings.ToUpper(doc.Meta.Title))
		if doc.Meta.Author != "" {
			b.WriteString("\n")
			writeCentered(&b, authorCredit)
			writeCentered(&b, doc.Meta.Author)
		}
		b.WriteString("\n\n")
	}
	first := true
	for _, e := range doc.Elements {
		if !first {
			b.WriteString("\n")
		}
		first = false
		for _, line := range renderElement(e) {
			b.WriteString(strings.Repeat(" ", line.Indent))
			b.WriteString(line.Text)
			b.WriteString("\n")
		}
	}
	return []byte(b.String()), nil
}

func writeCentered(b *strings.Builder, text string) {
	pad := (plainTextColumns - utf8.RuneCountInString(text)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(text)
	b.WriteString("\n")
}

// renderElement lays out one element as indented monospace lines. The same
// layout feeds plain text export and pagination.
func renderElement(e screenplay.Element) []Line {
	f := e.EffectiveFormatting()
	text := e.Text
	if f.AllCaps {
		text = strings.ToUpper(text)
	}
	indent := f.LeftMargin / twipsPerColumn
	width := plainTextColumns - indent - f.RightMargin/twipsPerColumn
	if width < 10 {
		width = 10
	}
	if f.Alignment == element.AlignRight {
		// Right-aligned elements (transitions) sit flush at the measure.
		// Column counts are runes, not bytes.
		indent = plainTextColumns - utf8.RuneCountInString(text)
		if indent < 0 {
			indent = 0
		}
		return []Line{{Indent: indent, Text: text}}
	}
	var lines []Line
	for _, row := range wrapText(text, width) {
		lines = append(lines, Line{Indent: indent, Text: row})
	}
	return lines
}

// wrapText breaks text at word boundaries; a word longer than the measure
// is emitted on its own overlong line rather than split.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	cur := words[0]
	curWidth := utf8.RuneCountInString(cur)
	for _, w := range words[1:] {
		wWidth := utf8.RuneCountInString(w)
		if curWidth+1+wWidth <= width {
			cur += " " + w
			curWidth += 1 + wWidth
		} else {
			out = append(out, cur)
			cur = w
			curWidth = wWidth
		}
	}
	return append(out, cur)
}

func loadPlainText(data []byte) (*screenplay.Document, error) {
	doc := screenplay.New()
	doc.Elements = doc.Elements[:0]
	prev := element.None
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		typ := element.Classify(line, prev)
		doc.Elements = append(doc.Elements, screenplay.Element{Type: typ, Text: line})
		prev = typ
	}
	if len(doc.Elements) == 0 {
		doc.Elements = append(doc.Elements, screenplay.Element{Type: element.SceneHeading})
	}
	doc.MarkIndicesStale()
	return doc, nil
}

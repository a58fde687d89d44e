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
	"testing"
	"unicode/utf8"

	"scriptdraft/internal/element"
	"scriptdraft/internal/screenplay"
)

func TestPlainTextExportIndents(t *testing.T) {
	doc := screenplay.New()
	doc.Elements = []screenplay.Element{
		{Type: element.SceneHeading, Text: "INT. LAB - DAY"},
		{Type: element.Character, Text: "SARAH"},
		{Type: element.Dialogue, Text: "Hello."},
		{Type: element.Transition, Text: "CUT TO:"},
	}
	data, err := savePlainText(doc)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	lines := strings.Split(string(data), "\n")
	find := func(text string) string {
		for _, l := range lines {
			if strings.TrimSpace(l) == text {
				return l
			}
		}
		t.Fatalf("line %q not in output:\n%s", text, data)
		return ""
	}
	if got := find("SARAH"); !strings.HasPrefix(got, strings.Repeat(" ", 40)) {
		t.Fatalf("character cue indent wrong: %q", got)
	}
	if got := find("Hello."); !strings.HasPrefix(got, strings.Repeat(" ", 25)) {
		t.Fatalf("dialogue indent wrong: %q", got)
	}
	// Right-aligned at the 60-column measure.
	if got := find("CUT TO:"); len(got) != plainTextColumns {
		t.Fatalf("transition not flush right: %q (len %d)", got, len(got))
	}
	if find("INT. LAB - DAY") != "INT. LAB - DAY" {
		t.Fatalf("scene heading should sit at the left margin")
	}
}

func TestPlainTextExportAlignsNonASCIIRight(t *testing.T) {
	doc := screenplay.New()
	doc.Elements = []screenplay.Element{{Type: element.Transition, Text: "FADE À NOIR:"}}
	data, err := savePlainText(doc)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "FADE À NOIR:" {
			continue
		}
		// Flush right means the line spans the measure in columns, not bytes.
		if got := utf8.RuneCountInString(l); got != plainTextColumns {
			t.Fatalf("transition spans %d columns, want %d: %q", got, plainTextColumns, l)
		}
		return
	}
	t.Fatalf("transition not in output:\n%s", data)
}

func TestPlainTextExportAppliesCaps(t *testing.T) {
	doc := screenplay.New()
	doc.Elements = []screenplay.Element{{Type: element.SceneHeading, Text: "int. lab - day"}}
	data, err := savePlainText(doc)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(string(data), "INT. LAB - DAY") {
		t.Fatalf("all-caps formatting not applied:\n%s", data)
	}
}

func TestPlainTextExportWraps(t *testing.T) {
	long := strings.Repeat("word ", 40)
	doc := screenplay.New()
	doc.Elements = []screenplay.Element{{Type: element.Action, Text: strings.TrimSpace(long)}}
	data, err := savePlainText(doc)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, l := range strings.Split(string(data), "\n") {
		if len(l) > plainTextColumns {
			t.Fatalf("line exceeds measure: %q", l)
		}
	}
}

func TestPlainTextImportClassifies(t *testing.T) {
	in := strings.Join([]string{
		"INT. COFFEE SHOP - DAY",
		"",
		"Sarah sits down.",
		"",
		"SARAH",
		"I can't believe this.",
		"",
		"CUT TO:",
	}, "\n")
	doc, err := loadPlainText([]byte(in))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []element.Type{
		element.SceneHeading, element.Action, element.Character,
		element.Dialogue, element.Transition,
	}
	if doc.Len() != len(want) {
		t.Fatalf("got %d elements, want %d", doc.Len(), len(want))
	}
	for i, w := range want {
		if doc.Elements[i].Type != w {
			t.Fatalf("element %d = %s, want %s", i, doc.Elements[i].Type, w)
		}
	}
}

func TestPlainTextImportEmpty(t *testing.T) {
	doc, err := loadPlainText(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Len() != 1 || doc.Elements[0].Type != element.SceneHeading {
		t.Fatalf("empty input must yield the blank Scene Heading")
	}
}

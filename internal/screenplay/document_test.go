/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"errors"
	"testing"

	"scriptdraft/internal/element"
)

func TestNewSeedsBlankSceneHeading(t *testing.T) {
	d := New()
	if d.Len() != 1 {
		t.Fatalf("new document has %d elements, want 1", d.Len())
	}
	e, err := d.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if e.Type != element.SceneHeading || e.Text != "" {
		t.Fatalf("seed element = %s %q, want blank Scene Heading", e.Type, e.Text)
	}
}

func TestInsertAndAppend(t *testing.T) {
	d := New()
	if err := d.InsertElement(1, element.Action, "She waits."); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := d.InsertElement(1, element.Character, "SARAH"); err != nil {
		t.Fatalf("insert middle: %v", err)
	}
	got := []element.Type{d.Elements[0].Type, d.Elements[1].Type, d.Elements[2].Type}
	want := []element.Type{element.SceneHeading, element.Character, element.Action}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d type = %s, want %s", i, got[i], want[i])
		}
	}
	if err := d.InsertElement(7, element.Action, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("insert past end error = %v, want ErrOutOfRange", err)
	}
}

func TestUpdateTextReclassifies(t *testing.T) {
	d := New()
	if err := d.UpdateText(0, "INT. COFFEE SHOP - DAY"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if d.Elements[0].Type != element.SceneHeading {
		t.Fatalf("type = %s, want Scene Heading", d.Elements[0].Type)
	}
	// Editing into transition-shaped text re-tags the element.
	if err := d.UpdateText(0, "CUT TO:"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if d.Elements[0].Type != element.Transition {
		t.Fatalf("type after edit = %s, want Transition", d.Elements[0].Type)
	}
}

func TestUpdateTextUsesPreviousContext(t *testing.T) {
	d := New()
	d.Elements = []Element{
		{Type: element.Character, Text: "SARAH"},
		{Type: element.Action},
	}
	if err := d.UpdateText(1, "I can't believe this."); err != nil {
		t.Fatalf("update: %v", err)
	}
	if d.Elements[1].Type != element.Dialogue {
		t.Fatalf("text after Character = %s, want Dialogue", d.Elements[1].Type)
	}
}

func TestRetypeFiltersOverrides(t *testing.T) {
	margin := 2 * element.TwipsPerInch
	bold := element.WeightBold
	d := New()
	d.Elements = []Element{{
		Type: element.Character,
		Text: "SARAH",
		Overrides: &Overrides{
			LeftMargin: &margin,
			FontWeight: &bold,
		},
	}}
	if err := d.UpdateText(0, "She crosses the room."); err != nil {
		t.Fatalf("update: %v", err)
	}
	e := d.Elements[0]
	if e.Type != element.Action {
		t.Fatalf("type = %s, want Action", e.Type)
	}
	if e.Overrides == nil || e.Overrides.LeftMargin == nil || *e.Overrides.LeftMargin != margin {
		t.Fatalf("layout override lost across retype: %+v", e.Overrides)
	}
	if e.Overrides.FontWeight != nil {
		t.Fatalf("weight override must not survive a retype")
	}
}

func TestSetTypeDropsSemanticOverrides(t *testing.T) {
	caps := true
	d := New()
	d.Elements = []Element{{Type: element.Action, Text: "hm", Overrides: &Overrides{AllCaps: &caps}}}
	if err := d.SetType(0, element.Character); err != nil {
		t.Fatalf("retype: %v", err)
	}
	if d.Elements[0].Overrides != nil {
		t.Fatalf("caps override survived forced retype: %+v", d.Elements[0].Overrides)
	}
}

func TestDeleteKeepsInvariant(t *testing.T) {
	d := New()
	d.Elements[0].Text = "INT. LAB - DAY"
	d.Elements[0].Type = element.SceneHeading
	if err := d.DeleteElement(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if d.Len() != 1 || d.Elements[0].Text != "" || d.Elements[0].Type != element.SceneHeading {
		t.Fatalf("sole-element delete must reset to blank Scene Heading, got %s %q", d.Elements[0].Type, d.Elements[0].Text)
	}

	d.InsertElement(1, element.Action, "first")
	d.InsertElement(2, element.Action, "second")
	if err := d.DeleteElement(1); err != nil {
		t.Fatalf("delete middle: %v", err)
	}
	if d.Len() != 2 || d.Elements[1].Text != "second" {
		t.Fatalf("unexpected sequence after delete: %+v", d.Elements)
	}
	if err := d.DeleteElement(5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("out-of-range delete error = %v", err)
	}
}

func TestMergeWithPrevious(t *testing.T) {
	d := New()
	d.Elements = []Element{
		{Type: element.Action, Text: "She opens "},
		{Type: element.Dialogue, Text: "the door."},
	}
	if err := d.MergeWithPrevious(1); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("len after merge = %d, want 1", d.Len())
	}
	e := d.Elements[0]
	if e.Text != "She opens the door." || e.Type != element.Action {
		t.Fatalf("merged element = %s %q", e.Type, e.Text)
	}
	if err := d.MergeWithPrevious(0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("merge at 0 error = %v, want ErrOutOfRange", err)
	}
}

func TestEffectiveFormattingOverrides(t *testing.T) {
	center := element.AlignCenter
	e := Element{Type: element.Action, Overrides: &Overrides{Alignment: &center}}
	f := e.EffectiveFormatting()
	if f.Alignment != element.AlignCenter {
		t.Fatalf("alignment override not applied")
	}
	if f.LeftMargin != element.DefaultFormatting(element.Action).LeftMargin {
		t.Fatalf("non-overridden fields must keep defaults")
	}
}

func TestSnapshotElementsIsDeepCopy(t *testing.T) {
	m := 1440
	d := New()
	d.Elements[0].Overrides = &Overrides{LeftMargin: &m}
	snap := d.SnapshotElements()
	*snap[0].Overrides.LeftMargin = 9999
	if *d.Elements[0].Overrides.LeftMargin != 1440 {
		t.Fatalf("snapshot shares override storage with the document")
	}
}

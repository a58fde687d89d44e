/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"testing"

	"scriptdraft/internal/element"
	"scriptdraft/internal/screenplay"
)

// Drives the canonical way a scene gets written: heading, action, then a
// Tab into the dialogue flow.
func TestTypicalSceneFlow(t *testing.T) {
	s := NewSession(screenplay.New())

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("session op failed: %v", err)
		}
	}
	must(s.OnTextChanged("INT. COFFEE SHOP - DAY"))
	must(s.OnKey(KeyEnter))
	must(s.OnTextChanged("Sarah sits down."))
	must(s.OnKey(KeyEnter))
	must(s.OnKey(KeyTab))
	must(s.OnTextChanged("SARAH"))
	must(s.OnKey(KeyEnter))
	must(s.OnTextChanged("I can't believe this."))

	doc := s.Document()
	want := []struct {
		typ  element.Type
		text string
	}{
		{element.SceneHeading, "INT. COFFEE SHOP - DAY"},
		{element.Action, "Sarah sits down."},
		{element.Character, "SARAH"},
		{element.Dialogue, "I can't believe this."},
	}
	if doc.Len() != len(want) {
		t.Fatalf("document has %d elements, want %d: %+v", doc.Len(), len(want), doc.Elements)
	}
	for i, w := range want {
		e := doc.Elements[i]
		if e.Type != w.typ || e.Text != w.text {
			t.Fatalf("element %d = %s %q, want %s %q", i, e.Type, e.Text, w.typ, w.text)
		}
	}
	if s.Pos() != 3 {
		t.Fatalf("cursor at %d, want 3", s.Pos())
	}

	// The session's completion vocabulary tracks the document.
	got := s.Suggestions("SA")
	if len(got) == 0 || got[0] != "SARAH" {
		t.Fatalf("Suggestions(SA) = %v, want SARAH first", got)
	}
}

func TestEnterOpensSuccessorType(t *testing.T) {
	cases := []struct {
		cur  element.Type
		next element.Type
	}{
		{element.SceneHeading, element.Action},
		{element.Character, element.Dialogue},
		{element.Transition, element.SceneHeading},
		{element.Dialogue, element.Action},
	}
	for _, tc := range cases {
		doc := screenplay.New()
		doc.Elements[0].Type = tc.cur
		s := NewSession(doc)
		if err := s.OnKey(KeyEnter); err != nil {
			t.Fatalf("enter on %s: %v", tc.cur, err)
		}
		if got := s.Document().Elements[1].Type; got != tc.next {
			t.Fatalf("enter on %s opened %s, want %s", tc.cur, got, tc.next)
		}
	}
}

func TestTabCyclesInPlace(t *testing.T) {
	s := NewSession(screenplay.New())
	if err := s.Document().SetType(0, element.Action); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for _, want := range []element.Type{element.Character, element.Dialogue, element.Parenthetical, element.Dialogue} {
		if err := s.OnKey(KeyTab); err != nil {
			t.Fatalf("tab: %v", err)
		}
		if got := s.Document().Elements[0].Type; got != want {
			t.Fatalf("tab cycled to %s, want %s", got, want)
		}
	}
	if s.Document().Len() != 1 {
		t.Fatalf("tab must not create elements")
	}
}

func TestUndoRedoRestoresDocument(t *testing.T) {
	s := NewSession(screenplay.New())
	if err := s.OnTextChanged("INT. LAB - DAY"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.OnKey(KeyEnter); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if err := s.OnTextChanged("She pours the vial."); err != nil {
		t.Fatalf("edit: %v", err)
	}

	// Rapid edits coalesce into one undo step, restoring the blank
	// document.
	if !s.Undo() {
		t.Fatalf("undo failed")
	}
	doc := s.Document()
	if doc.Len() != 1 || doc.Elements[0].Text != "" || doc.Elements[0].Type != element.SceneHeading {
		t.Fatalf("undo did not restore the initial state: %+v", doc.Elements)
	}
	if s.Pos() != 0 {
		t.Fatalf("cursor not clamped after undo: %d", s.Pos())
	}

	if !s.Redo() {
		t.Fatalf("redo failed")
	}
	doc = s.Document()
	if doc.Len() != 2 || doc.Elements[1].Text != "She pours the vial." {
		t.Fatalf("redo did not restore the edited state: %+v", doc.Elements)
	}
	if s.Redo() {
		t.Fatalf("redo past the top succeeded")
	}
}

func TestDeleteCurrentClampsCursor(t *testing.T) {
	s := NewSession(screenplay.New())
	if err := s.OnKey(KeyEnter); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if err := s.DeleteCurrent(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Pos() != 0 || s.Document().Len() != 1 {
		t.Fatalf("cursor %d, len %d after delete", s.Pos(), s.Document().Len())
	}
}

func TestMergeBack(t *testing.T) {
	s := NewSession(screenplay.New())
	if err := s.OnTextChanged("INT. LAB - "); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.OnKey(KeyEnter); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if err := s.OnTextChanged("DAY"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.MergeBack(); err != nil {
		t.Fatalf("merge: %v", err)
	}
	doc := s.Document()
	if doc.Len() != 1 || doc.Elements[0].Text != "INT. LAB - DAY" {
		t.Fatalf("merge result: %+v", doc.Elements)
	}
	if s.Pos() != 0 {
		t.Fatalf("cursor at %d after merge, want 0", s.Pos())
	}
	if err := s.MergeBack(); err != nil {
		t.Fatalf("merge on first element must be a no-op, got %v", err)
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor drives an interactive editing session over one open
// document: key-driven element flow, text reconciliation and undo.
package editor

import (
	"fmt"
	"log/slog"

	"scriptdraft/internal/element"
	"scriptdraft/internal/format"
	"scriptdraft/internal/log"
	"scriptdraft/internal/screenplay"
	"scriptdraft/internal/smarttype"
	"scriptdraft/internal/undo"
)

// Key is an editing keystroke with element-flow semantics.
type Key int

const (
	// KeyEnter finishes the current element and opens the natural
	// successor below it.
	KeyEnter Key = iota
	// KeyTab cycles the current element through the dialogue flow.
	KeyTab
)

// Session is a live editing session. Not safe for concurrent use; the
// editing surface drives it from a single goroutine.
type Session struct {
	doc        *screenplay.Document
	pos        int
	history    *undo.Manager
	completion *smarttype.Engine
	logger     *slog.Logger
}

// NewSession opens a session on doc, which must be non-nil. The cursor
// starts on the first element.
func NewSession(doc *screenplay.Document) *Session {
	return &Session{
		doc:        doc,
		history:    undo.NewManager(undo.DefaultConfig()),
		completion: smarttype.NewEngine(),
		logger:     log.WithComponent("editor"),
	}
}

// Document returns the session's current document. The pointer changes
// after Undo/Redo; callers must not cache it across those.
func (s *Session) Document() *screenplay.Document { return s.doc }

// Pos returns the active element position.
func (s *Session) Pos() int { return s.pos }

// SetPos moves the cursor to an existing element.
func (s *Session) SetPos(pos int) error {
	if pos < 0 || pos >= s.doc.Len() {
		return fmt.Errorf("cursor to %d: %w", pos, screenplay.ErrOutOfRange)
	}
	s.pos = pos
	return nil
}

// OnKey applies element-flow keystrokes. Enter inserts the current type's
// natural successor after the cursor and moves onto it; Tab re-types the
// current element in place.
func (s *Session) OnKey(k Key) error {
	cur, err := s.doc.At(s.pos)
	if err != nil {
		return err
	}
	s.snapshot()
	switch k {
	case KeyEnter:
		next := element.EnterNext(cur.Type)
		if err := s.doc.InsertElement(s.pos+1, next, ""); err != nil {
			return err
		}
		s.pos++
		s.logger.Debug("element opened", "type", next.String(), "pos", s.pos)
	case KeyTab:
		if err := s.doc.SetType(s.pos, element.TabNext(cur.Type)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported key %d", int(k))
	}
	return nil
}

// OnTextChanged replaces the active element's text; the document layer
// reclassifies it in context.
func (s *Session) OnTextChanged(text string) error {
	s.snapshot()
	return s.doc.UpdateText(s.pos, text)
}

// DeleteCurrent removes the active element.
func (s *Session) DeleteCurrent() error {
	s.snapshot()
	if err := s.doc.DeleteElement(s.pos); err != nil {
		return err
	}
	if s.pos >= s.doc.Len() {
		s.pos = s.doc.Len() - 1
	}
	return nil
}

// MergeBack joins the active element onto its predecessor, the backspace-
// at-element-start gesture. On the first element it is a no-op.
func (s *Session) MergeBack() error {
	if s.pos == 0 {
		return nil
	}
	s.snapshot()
	if err := s.doc.MergeWithPrevious(s.pos); err != nil {
		return err
	}
	s.pos--
	return nil
}

// Suggestions returns completion candidates for the word being typed,
// drawn from the document's cast and locations plus stock terms.
func (s *Session) Suggestions(prefix string) []string {
	s.completion.UpdateFromDocument(s.doc)
	return s.completion.Suggest(prefix)
}

// CanUndo reports whether an Undo would succeed.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a Redo would succeed.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Undo restores the document to its state before the last recorded edit.
func (s *Session) Undo() bool {
	cur, err := format.Save(s.doc, format.SDft)
	if err != nil {
		s.logger.Error("undo snapshot failed", "error", err)
		return false
	}
	snap, ok := s.history.Undo(cur)
	if !ok {
		return false
	}
	return s.restore(snap.Blob)
}

// Redo reverses the last Undo.
func (s *Session) Redo() bool {
	cur, err := format.Save(s.doc, format.SDft)
	if err != nil {
		s.logger.Error("redo snapshot failed", "error", err)
		return false
	}
	snap, ok := s.history.Redo(cur)
	if !ok {
		return false
	}
	return s.restore(snap.Blob)
}

// snapshot records the pre-edit document state.
func (s *Session) snapshot() {
	blob, err := format.Save(s.doc, format.SDft)
	if err != nil {
		// An unserializable document should be impossible; log and keep
		// editing rather than blocking the user.
		s.logger.Error("history snapshot failed", "error", err)
		return
	}
	s.history.Push(blob)
}

func (s *Session) restore(blob []byte) bool {
	doc, err := format.Load(blob, format.SDft)
	if err != nil {
		s.logger.Error("history restore failed", "error", err)
		return false
	}
	s.doc = doc
	if s.pos >= s.doc.Len() {
		s.pos = s.doc.Len() - 1
	}
	return true
}

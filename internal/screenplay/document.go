/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package screenplay holds the document model: the ordered sequence of typed
// elements, per-element formatting overrides, and the derived character and
// location indices.
package screenplay

import (
	"errors"
	"fmt"

	"scriptdraft/internal/element"
)

// ErrOutOfRange is returned by position-based operations when the position
// does not address an existing element.
var ErrOutOfRange = errors.New("element position out of range")

// Metadata is the title-page information of a screenplay.
// ContactInfo may contain embedded newlines.
type Metadata struct {
	Title       string
	Author      string
	ContactInfo string
}

// Overrides is the sparse record of formatting fields explicitly set by the
// user or an import, as opposed to the type's taxonomy defaults. A nil field
// means "use the default". Two elements of the same type with equal
// overrides serialize identically.
type Overrides struct {
	LeftMargin  *int
	RightMargin *int
	Alignment   *element.Alignment
	FontWeight  *int
	AllCaps     *bool
	Italic      *bool
	SpaceBefore *int
	SpaceAfter  *int
}

// Empty reports whether no field is overridden.
func (o *Overrides) Empty() bool {
	if o == nil {
		return true
	}
	return o.LeftMargin == nil && o.RightMargin == nil && o.Alignment == nil &&
		o.FontWeight == nil && o.AllCaps == nil && o.Italic == nil &&
		o.SpaceBefore == nil && o.SpaceAfter == nil
}

// Clone returns a deep copy, or nil for a nil/empty receiver.
func (o *Overrides) Clone() *Overrides {
	if o.Empty() {
		return nil
	}
	c := &Overrides{}
	if o.LeftMargin != nil {
		v := *o.LeftMargin
		c.LeftMargin = &v
	}
	if o.RightMargin != nil {
		v := *o.RightMargin
		c.RightMargin = &v
	}
	if o.Alignment != nil {
		v := *o.Alignment
		c.Alignment = &v
	}
	if o.FontWeight != nil {
		v := *o.FontWeight
		c.FontWeight = &v
	}
	if o.AllCaps != nil {
		v := *o.AllCaps
		c.AllCaps = &v
	}
	if o.Italic != nil {
		v := *o.Italic
		c.Italic = &v
	}
	if o.SpaceBefore != nil {
		v := *o.SpaceBefore
		c.SpaceBefore = &v
	}
	if o.SpaceAfter != nil {
		v := *o.SpaceAfter
		c.SpaceAfter = &v
	}
	return c
}

// Element is one paragraph unit of screenplay content.
//
// ImportedType carries the verbatim paragraph type of an interchange import
// that has no equivalent in the taxonomy; such elements are held as Action
// and the original label is written back on export so the information is not
// silently destroyed.
type Element struct {
	Type         element.Type
	Text         string
	Overrides    *Overrides
	ImportedType string
}

// EffectiveFormatting resolves the element's layout: taxonomy defaults for
// its type with any overrides applied on top.
func (e Element) EffectiveFormatting() element.Formatting {
	f := element.DefaultFormatting(e.Type)
	o := e.Overrides
	if o == nil {
		return f
	}
	if o.LeftMargin != nil {
		f.LeftMargin = *o.LeftMargin
	}
	if o.RightMargin != nil {
		f.RightMargin = *o.RightMargin
	}
	if o.Alignment != nil {
		f.Alignment = *o.Alignment
	}
	if o.FontWeight != nil {
		f.FontWeight = *o.FontWeight
	}
	if o.AllCaps != nil {
		f.AllCaps = *o.AllCaps
	}
	if o.Italic != nil {
		f.Italic = *o.Italic
	}
	if o.SpaceBefore != nil {
		f.SpaceBefore = *o.SpaceBefore
	}
	if o.SpaceAfter != nil {
		f.SpaceAfter = *o.SpaceAfter
	}
	return f
}

// Document is an open screenplay: metadata plus the ordered element
// sequence. The sequence is never empty while the document is open; an
// "empty" document holds exactly one blank Scene Heading as the insertion
// point, matching how a fresh script starts.
//
// Code that writes Elements directly (the transcoders do, on load) must call
// MarkIndicesStale afterwards.
type Document struct {
	Meta     Metadata
	Elements []Element

	characters []string
	locations  []string
	stale      bool
}

// New creates an empty open document with its single blank Scene Heading.
func New() *Document {
	return &Document{
		Elements: []Element{{Type: element.SceneHeading}},
		stale:    true,
	}
}

// Len returns the number of elements.
func (d *Document) Len() int { return len(d.Elements) }

// At returns the element at pos.
func (d *Document) At(pos int) (Element, error) {
	if pos < 0 || pos >= len(d.Elements) {
		return Element{}, fmt.Errorf("position %d: %w", pos, ErrOutOfRange)
	}
	return d.Elements[pos], nil
}

// InsertElement inserts a new element at pos, shifting later elements down.
// pos may equal Len() to append.
func (d *Document) InsertElement(pos int, typ element.Type, text string) error {
	if pos < 0 || pos > len(d.Elements) {
		return fmt.Errorf("insert at %d: %w", pos, ErrOutOfRange)
	}
	d.Elements = append(d.Elements, Element{})
	copy(d.Elements[pos+1:], d.Elements[pos:])
	d.Elements[pos] = Element{Type: typ, Text: text}
	d.MarkIndicesStale()
	return nil
}

// UpdateText replaces the text at pos and reconciles the element's type
// against the new content: the classifier runs with the previous element's
// type as context, and if it disagrees with the stored type the element is
// re-tagged. On a re-tag, overrides that only made sense for the old type
// (weight, capitalization, italics) are dropped while layout overrides
// (margins, alignment, spacing) survive.
func (d *Document) UpdateText(pos int, text string) error {
	if pos < 0 || pos >= len(d.Elements) {
		return fmt.Errorf("update at %d: %w", pos, ErrOutOfRange)
	}
	prev := element.None
	if pos > 0 {
		prev = d.Elements[pos-1].Type
	}
	e := &d.Elements[pos]
	e.Text = text
	if newType := element.Classify(text, prev); newType != e.Type {
		e.Type = newType
		e.Overrides = retainLayoutOverrides(e.Overrides)
		e.ImportedType = ""
	}
	d.MarkIndicesStale()
	return nil
}

// SetType force-assigns a type (the Tab path). Character-formatting
// overrides are dropped the same way a classifier re-tag drops them.
func (d *Document) SetType(pos int, typ element.Type) error {
	if pos < 0 || pos >= len(d.Elements) {
		return fmt.Errorf("retype at %d: %w", pos, ErrOutOfRange)
	}
	e := &d.Elements[pos]
	if e.Type == typ {
		return nil
	}
	e.Type = typ
	e.Overrides = retainLayoutOverrides(e.Overrides)
	e.ImportedType = ""
	d.MarkIndicesStale()
	return nil
}

// DeleteElement removes the element at pos. Deleting the only element resets
// it to the blank Scene Heading insertion point instead, preserving the
// never-empty invariant.
func (d *Document) DeleteElement(pos int) error {
	if pos < 0 || pos >= len(d.Elements) {
		return fmt.Errorf("delete at %d: %w", pos, ErrOutOfRange)
	}
	if len(d.Elements) == 1 {
		d.Elements[0] = Element{Type: element.SceneHeading}
	} else {
		d.Elements = append(d.Elements[:pos], d.Elements[pos+1:]...)
	}
	d.MarkIndicesStale()
	return nil
}

// MergeWithPrevious joins the element at pos onto the end of its
// predecessor, used when a deletion crosses an element boundary. The merged
// element keeps the predecessor's type and formatting.
func (d *Document) MergeWithPrevious(pos int) error {
	if pos < 1 || pos >= len(d.Elements) {
		return fmt.Errorf("merge at %d: %w", pos, ErrOutOfRange)
	}
	d.Elements[pos-1].Text += d.Elements[pos].Text
	d.Elements = append(d.Elements[:pos], d.Elements[pos+1:]...)
	d.MarkIndicesStale()
	return nil
}

// Clone deep-copies the document, including overrides, without the index
// caches.
func (d *Document) Clone() *Document {
	c := &Document{Meta: d.Meta, Elements: d.SnapshotElements(), stale: true}
	return c
}

// SnapshotElements returns a deep copy of the element sequence. Index
// rebuilds that run off the editing thread must work on such a snapshot so a
// concurrent edit cannot race with the scan.
func (d *Document) SnapshotElements() []Element {
	out := make([]Element, len(d.Elements))
	for i, e := range d.Elements {
		out[i] = e
		out[i].Overrides = e.Overrides.Clone()
	}
	return out
}

// retainLayoutOverrides keeps margin/alignment/spacing overrides across a
// type change and discards weight, capitalization and italics, which are
// tied to the old type's semantics.
func retainLayoutOverrides(o *Overrides) *Overrides {
	if o == nil {
		return nil
	}
	kept := &Overrides{
		LeftMargin:  o.LeftMargin,
		RightMargin: o.RightMargin,
		Alignment:   o.Alignment,
		SpaceBefore: o.SpaceBefore,
		SpaceAfter:  o.SpaceAfter,
	}
	if kept.Empty() {
		return nil
	}
	return kept
}

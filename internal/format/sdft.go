/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package format

import (
	"encoding/xml"

	"scriptdraft/internal/element"
	"scriptdraft/internal/log"
	"scriptdraft/internal/screenplay"
)

// The native dialect. Every element carries its complete effective
// formatting on disk, so a file stays renderable without the taxonomy
// tables; on load, fields that match the type's defaults are folded back
// into "no override" so a save/load cycle does not manufacture overrides.
const (
	sdftNamespace = "http://scriptdraft.app/sdft"
	sdftVersion   = "1.0"
	sdftFormat    = "industry-standard"
)

type sdftScreenplay struct {
	XMLName  xml.Name      `xml:"screenplay"`
	Xmlns    string        `xml:"xmlns,attr"`
	Version  string        `xml:"version,attr"`
	Format   string        `xml:"format,attr"`
	Metadata *sdftMetadata `xml:"metadata"`
	Content  *sdftContent  `xml:"content"`
}

type sdftMetadata struct {
	Title       string `xml:"title"`
	Author      string `xml:"author"`
	ContactInfo string `xml:"contact_info"`
}

type sdftContent struct {
	Elements []sdftElement `xml:"element"`
}

type sdftElement struct {
	Type         string          `xml:"type,attr"`
	ImportedType string          `xml:"imported_type,attr,omitempty"`
	Text         string          `xml:"text"`
	Formatting   *sdftFormatting `xml:"formatting"`
}

// Pointer fields so a hand-edited file may omit any of them; an absent
// field means "use the type default".
type sdftFormatting struct {
	LeftMargin  *int    `xml:"left_margin"`
	RightMargin *int    `xml:"right_margin"`
	Alignment   *string `xml:"alignment"`
	FontWeight  *int    `xml:"font_weight"`
	AllCaps     *bool   `xml:"all_caps"`
	Italic      *bool   `xml:"italic"`
	SpaceBefore *int    `xml:"space_before"`
	SpaceAfter  *int    `xml:"space_after"`
}

func saveSDft(doc *screenplay.Document) ([]byte, error) {
	root := sdftScreenplay{
		Xmlns:    sdftNamespace,
		Version:  sdftVersion,
		Format:   sdftFormat,
		Metadata: &sdftMetadata{Title: doc.Meta.Title, Author: doc.Meta.Author, ContactInfo: doc.Meta.ContactInfo},
		Content:  &sdftContent{},
	}
	for _, e := range doc.Elements {
		f := e.EffectiveFormatting()
		align := f.Alignment.String()
		se := sdftElement{
			Type:         e.Type.String(),
			ImportedType: e.ImportedType,
			Text:         e.Text,
			Formatting: &sdftFormatting{
				LeftMargin:  &f.LeftMargin,
				RightMargin: &f.RightMargin,
				Alignment:   &align,
				FontWeight:  &f.FontWeight,
				AllCaps:     &f.AllCaps,
				Italic:      &f.Italic,
				SpaceBefore: &f.SpaceBefore,
				SpaceAfter:  &f.SpaceAfter,
			},
		}
		root.Content.Elements = append(root.Content.Elements, se)
	}
	out, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, &SerializeError{Format: SDft, Reason: err.Error()}
	}
	buf := make([]byte, 0, len(xml.Header)+len(out)+1)
	buf = append(buf, xml.Header...)
	buf = append(buf, out...)
	buf = append(buf, '\n')
	return buf, nil
}

func loadSDft(data []byte) (*screenplay.Document, error) {
	var root sdftScreenplay
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Format: SDft, Err: err}
	}
	if root.Metadata == nil || root.Content == nil {
		return nil, &ParseError{Format: SDft, Err: ErrMalformedDocument}
	}
	doc := screenplay.New()
	doc.Meta = screenplay.Metadata{
		Title:       root.Metadata.Title,
		Author:      root.Metadata.Author,
		ContactInfo: root.Metadata.ContactInfo,
	}
	doc.Elements = doc.Elements[:0]
	for _, se := range root.Content.Elements {
		typ, ok := element.ParseType(se.Type)
		if !ok {
			// Lenient: an unknown type becomes Action rather than
			// failing the whole file.
			log.L().Warn("unknown element type, importing as Action", "type", se.Type)
			typ = element.Action
		}
		doc.Elements = append(doc.Elements, screenplay.Element{
			Type:         typ,
			Text:         se.Text,
			ImportedType: se.ImportedType,
			Overrides:    overridesFromFile(typ, se.Formatting),
		})
	}
	if len(doc.Elements) == 0 {
		doc.Elements = append(doc.Elements, screenplay.Element{Type: element.SceneHeading})
	}
	doc.MarkIndicesStale()
	return doc, nil
}

// overridesFromFile keeps only the fields that deviate from the type's
// defaults. Absent fields never become overrides.
func overridesFromFile(typ element.Type, f *sdftFormatting) *screenplay.Overrides {
	if f == nil {
		return nil
	}
	def := element.DefaultFormatting(typ)
	o := &screenplay.Overrides{}
	if f.LeftMargin != nil && *f.LeftMargin != def.LeftMargin {
		o.LeftMargin = f.LeftMargin
	}
	if f.RightMargin != nil && *f.RightMargin != def.RightMargin {
		o.RightMargin = f.RightMargin
	}
	if f.Alignment != nil {
		if a := element.ParseAlignment(*f.Alignment); a != def.Alignment {
			o.Alignment = &a
		}
	}
	if f.FontWeight != nil && *f.FontWeight != def.FontWeight {
		o.FontWeight = f.FontWeight
	}
	if f.AllCaps != nil && *f.AllCaps != def.AllCaps {
		o.AllCaps = f.AllCaps
	}
	if f.Italic != nil && *f.Italic != def.Italic {
		o.Italic = f.Italic
	}
	if f.SpaceBefore != nil && *f.SpaceBefore != def.SpaceBefore {
		o.SpaceBefore = f.SpaceBefore
	}
	if f.SpaceAfter != nil && *f.SpaceAfter != def.SpaceAfter {
		o.SpaceAfter = f.SpaceAfter
	}
	if o.Empty() {
		return nil
	}
	return o
}

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
	"strings"

	"scriptdraft/internal/element"
	"scriptdraft/internal/log"
	"scriptdraft/internal/screenplay"
)

// Final Draft interchange. Only paragraph types and text cross this
// boundary; formatting overrides do not survive an FDX round trip, the
// receiving program applies its own stylesheet.

type fdxDocument struct {
	XMLName      xml.Name      `xml:"FinalDraft"`
	DocumentType string        `xml:"DocumentType,attr"`
	Template     string        `xml:"Template,attr"`
	Version      string        `xml:"Version,attr"`
	Content      *fdxContent   `xml:"Content"`
	TitlePage    *fdxTitlePage `xml:"TitlePage"`
}

type fdxContent struct {
	Paragraphs []fdxParagraph `xml:"Paragraph"`
}

type fdxParagraph struct {
	Type string `xml:"Type,attr"`
	Text string `xml:"Text"`
}

type fdxTitlePage struct {
	Content *fdxContent `xml:"Content"`
}

const (
	authorCredit    = "Written by"
	titleHeaderType = "Title Page Header"
	titleFooterType = "Title Page Footer"
)

func saveFDX(doc *screenplay.Document) ([]byte, error) {
	root := fdxDocument{
		DocumentType: "Script",
		Template:     "No",
		Version:      "5",
		Content:      &fdxContent{},
	}
	if tp := titlePageFor(doc.Meta); tp != nil {
		root.TitlePage = tp
	}
	for _, e := range doc.Elements {
		typ := e.Type.String()
		if e.ImportedType != "" {
			// Round-trip a foreign paragraph type verbatim instead of
			// downgrading it to Action.
			typ = e.ImportedType
		}
		root.Content.Paragraphs = append(root.Content.Paragraphs, fdxParagraph{Type: typ, Text: e.Text})
	}
	out, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, &SerializeError{Format: FDX, Reason: err.Error()}
	}
	buf := make([]byte, 0, len(xml.Header)+len(out)+1)
	buf = append(buf, xml.Header...)
	buf = append(buf, out...)
	buf = append(buf, '\n')
	return buf, nil
}

func titlePageFor(m screenplay.Metadata) *fdxTitlePage {
	if m.Title == "" && m.Author == "" && m.ContactInfo == "" {
		return nil
	}
	c := &fdxContent{}
	add := func(typ, text string) {
		c.Paragraphs = append(c.Paragraphs, fdxParagraph{Type: typ, Text: text})
	}
	if m.Title != "" {
		add(titleHeaderType, m.Title)
	}
	if m.Author != "" {
		add(titleHeaderType, authorCredit)
		add(titleHeaderType, m.Author)
	}
	if m.ContactInfo != "" {
		for _, line := range strings.Split(m.ContactInfo, "\n") {
			add(titleFooterType, line)
		}
	}
	return &fdxTitlePage{Content: c}
}

func loadFDX(data []byte) (*screenplay.Document, error) {
	var root fdxDocument
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Format: FDX, Err: err}
	}
	if root.Content == nil {
		return nil, &ParseError{Format: FDX, Err: ErrMalformedDocument}
	}
	doc := screenplay.New()
	doc.Meta = metadataFromTitlePage(root.TitlePage)
	doc.Elements = doc.Elements[:0]
	for _, p := range root.Paragraphs() {
		e := screenplay.Element{Text: p.Text}
		switch {
		case p.Type == "General":
			e.Type = element.Action
		default:
			typ, ok := element.ParseType(p.Type)
			if !ok {
				// Hold foreign paragraph types as Action and remember
				// the original label for export.
				log.L().Warn("foreign paragraph type, holding as Action", "type", p.Type)
				e.Type = element.Action
				e.ImportedType = p.Type
			} else {
				e.Type = typ
			}
		}
		doc.Elements = append(doc.Elements, e)
	}
	if len(doc.Elements) == 0 {
		doc.Elements = append(doc.Elements, screenplay.Element{Type: element.SceneHeading})
	}
	doc.MarkIndicesStale()
	return doc, nil
}

func (d *fdxDocument) Paragraphs() []fdxParagraph {
	if d.Content == nil {
		return nil
	}
	return d.Content.Paragraphs
}

// metadataFromTitlePage reads the conventional title page layout: the
// header paragraph after a "Written by" credit is the author, the first
// other non-empty header paragraph is the title, and footer paragraphs
// carry contact info with interior blank lines kept.
func metadataFromTitlePage(tp *fdxTitlePage) screenplay.Metadata {
	var m screenplay.Metadata
	if tp == nil || tp.Content == nil {
		return m
	}
	var extra []string
	wantAuthor := false
	for _, p := range tp.Content.Paragraphs {
		text := strings.TrimSpace(p.Text)
		if p.Type == titleFooterType {
			extra = append(extra, text)
			continue
		}
		if text == "" {
			continue
		}
		switch {
		case strings.EqualFold(text, authorCredit):
			wantAuthor = true
		case wantAuthor && m.Author == "":
			m.Author = text
			wantAuthor = false
		case m.Title == "":
			m.Title = text
		default:
			extra = append(extra, text)
		}
	}
	for len(extra) > 0 && extra[0] == "" {
		extra = extra[1:]
	}
	for len(extra) > 0 && extra[len(extra)-1] == "" {
		extra = extra[:len(extra)-1]
	}
	m.ContactInfo = strings.Join(extra, "\n")
	return m
}

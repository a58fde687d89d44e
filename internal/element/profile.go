/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed style_profile.schema.json
var profileSchema []byte

// Profile overrides the taxonomy's default formatting per element type, for
// layouts such as stage-play margins. A profile never changes classification
// or transitions, only the formatting table.
type Profile struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description,omitempty"`
	Elements    map[string]FormattingPatch `json:"elements"`
}

// FormattingPatch is a sparse formatting record; nil fields keep the
// taxonomy default.
type FormattingPatch struct {
	LeftMargin  *int    `json:"left_margin,omitempty"`
	RightMargin *int    `json:"right_margin,omitempty"`
	Alignment   *string `json:"alignment,omitempty"`
	FontWeight  *int    `json:"font_weight,omitempty"`
	AllCaps     *bool   `json:"all_caps,omitempty"`
	Italic      *bool   `json:"italic,omitempty"`
	SpaceBefore *int    `json:"space_before,omitempty"`
	SpaceAfter  *int    `json:"space_after,omitempty"`
}

// LoadProfile reads and validates a style profile file. The document is
// checked against the embedded JSON schema before decoding, so a malformed
// profile is rejected with the schema violations instead of silently
// producing a partial layout.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile validates and decodes style profile bytes.
func ParseProfile(data []byte) (*Profile, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(profileSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate style profile: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.New("invalid style profile: " + strings.Join(msgs, "; "))
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode style profile: %w", err)
	}
	for label := range p.Elements {
		if _, ok := ParseType(label); !ok {
			return nil, fmt.Errorf("invalid style profile: unknown element type %q", label)
		}
	}
	return &p, nil
}

// Formatting returns the profile's formatting for a type: the taxonomy
// default with the profile's patch applied on top.
func (p *Profile) Formatting(t Type) Formatting {
	f := DefaultFormatting(t)
	if p == nil {
		return f
	}
	patch, ok := p.Elements[t.String()]
	if !ok {
		return f
	}
	if patch.LeftMargin != nil {
		f.LeftMargin = *patch.LeftMargin
	}
	if patch.RightMargin != nil {
		f.RightMargin = *patch.RightMargin
	}
	if patch.Alignment != nil {
		f.Alignment = ParseAlignment(*patch.Alignment)
	}
	if patch.FontWeight != nil {
		f.FontWeight = *patch.FontWeight
	}
	if patch.AllCaps != nil {
		f.AllCaps = *patch.AllCaps
	}
	if patch.Italic != nil {
		f.Italic = *patch.Italic
	}
	if patch.SpaceBefore != nil {
		f.SpaceBefore = *patch.SpaceBefore
	}
	if patch.SpaceAfter != nil {
		f.SpaceAfter = *patch.SpaceAfter
	}
	return f
}

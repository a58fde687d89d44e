/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import "scriptdraft/internal/element"

// ApplyStyleProfile restyles the document: wherever the profile deviates
// from the taxonomy defaults for an element's type, that deviation becomes
// an override on the element. Overrides the user already placed by hand
// win over the profile.
func (d *Document) ApplyStyleProfile(p *element.Profile) {
	if p == nil {
		return
	}
	for i := range d.Elements {
		e := &d.Elements[i]
		o := profileOverrides(e.Type, p)
		if o == nil {
			continue
		}
		merged := mergeOverrides(o, e.Overrides)
		if merged.Empty() {
			e.Overrides = nil
		} else {
			e.Overrides = merged
		}
	}
}

// profileOverrides expresses the profile's patch for one type as a sparse
// override record, nil when the profile leaves the type untouched.
func profileOverrides(typ element.Type, p *element.Profile) *Overrides {
	def := element.DefaultFormatting(typ)
	styled := p.Formatting(typ)
	if styled == def {
		return nil
	}
	o := &Overrides{}
	if styled.LeftMargin != def.LeftMargin {
		v := styled.LeftMargin
		o.LeftMargin = &v
	}
	if styled.RightMargin != def.RightMargin {
		v := styled.RightMargin
		o.RightMargin = &v
	}
	if styled.Alignment != def.Alignment {
		v := styled.Alignment
		o.Alignment = &v
	}
	if styled.FontWeight != def.FontWeight {
		v := styled.FontWeight
		o.FontWeight = &v
	}
	if styled.AllCaps != def.AllCaps {
		v := styled.AllCaps
		o.AllCaps = &v
	}
	if styled.Italic != def.Italic {
		v := styled.Italic
		o.Italic = &v
	}
	if styled.SpaceBefore != def.SpaceBefore {
		v := styled.SpaceBefore
		o.SpaceBefore = &v
	}
	if styled.SpaceAfter != def.SpaceAfter {
		v := styled.SpaceAfter
		o.SpaceAfter = &v
	}
	return o
}

// mergeOverrides layers existing on top of base; fields set in existing
// win.
func mergeOverrides(base, existing *Overrides) *Overrides {
	if existing.Empty() {
		return base.Clone()
	}
	out := base.Clone()
	if out == nil {
		out = &Overrides{}
	}
	if existing.LeftMargin != nil {
		out.LeftMargin = existing.LeftMargin
	}
	if existing.RightMargin != nil {
		out.RightMargin = existing.RightMargin
	}
	if existing.Alignment != nil {
		out.Alignment = existing.Alignment
	}
	if existing.FontWeight != nil {
		out.FontWeight = existing.FontWeight
	}
	if existing.AllCaps != nil {
		out.AllCaps = existing.AllCaps
	}
	if existing.Italic != nil {
		out.Italic = existing.Italic
	}
	if existing.SpaceBefore != nil {
		out.SpaceBefore = existing.SpaceBefore
	}
	if existing.SpaceAfter != nil {
		out.SpaceAfter = existing.SpaceAfter
	}
	return out
}

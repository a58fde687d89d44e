/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProfileAppliesPatch(t *testing.T) {
	data := []byte(`{
		"name": "stage-play",
		"elements": {
			"Character": {"left_margin": 2880, "all_caps": false},
			"Transition": {"alignment": "center"}
		}
	}`)
	p, err := ParseProfile(data)
	if err != nil {
		t.Fatalf("ParseProfile error: %v", err)
	}
	ch := p.Formatting(Character)
	if ch.LeftMargin != 2880 {
		t.Fatalf("patched Character left margin = %d, want 2880", ch.LeftMargin)
	}
	if ch.AllCaps {
		t.Fatalf("patched Character should not be all caps")
	}
	// Unpatched fields keep taxonomy defaults.
	if ch.FontWeight != WeightBold {
		t.Fatalf("Character weight = %d, want %d", ch.FontWeight, WeightBold)
	}
	if p.Formatting(Transition).Alignment != AlignCenter {
		t.Fatalf("patched Transition should be centered")
	}
	// Untouched types are pure defaults.
	if p.Formatting(Dialogue) != DefaultFormatting(Dialogue) {
		t.Fatalf("unpatched Dialogue deviates from defaults")
	}
}

func TestParseProfileRejectsUnknownType(t *testing.T) {
	if _, err := ParseProfile([]byte(`{"name":"x","elements":{"Voiceover":{}}}`)); err == nil {
		t.Fatalf("expected schema rejection for unknown element type")
	}
}

func TestParseProfileRejectsBadValues(t *testing.T) {
	if _, err := ParseProfile([]byte(`{"name":"x","elements":{"Action":{"font_weight":123}}}`)); err == nil {
		t.Fatalf("expected schema rejection for unsupported font weight")
	}
	if _, err := ParseProfile([]byte(`{"elements":{}}`)); err == nil {
		t.Fatalf("expected schema rejection for missing name")
	}
	if _, err := ParseProfile([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for non-JSON input")
	}
}

func TestLoadProfileFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	if err := os.WriteFile(path, []byte(`{"name":"tight","elements":{"Dialogue":{"right_margin":1440}}}`), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile error: %v", err)
	}
	if p.Formatting(Dialogue).RightMargin != 1440 {
		t.Fatalf("profile from disk not applied")
	}
	if _, err := LoadProfile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNilProfileFormatting(t *testing.T) {
	var p *Profile
	if p.Formatting(Action) != DefaultFormatting(Action) {
		t.Fatalf("nil profile must return taxonomy defaults")
	}
}

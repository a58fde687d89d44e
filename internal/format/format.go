/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package format transcodes screenplay documents between the native XML
// dialect, the Final Draft interchange dialect and plain text. All three
// codecs are pure byte-slice transforms; file handling lives elsewhere.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"scriptdraft/internal/screenplay"
)

// Format identifies one of the supported on-disk representations.
type Format int

const (
	SDft Format = iota
	FDX
	PlainText
)

func (f Format) String() string {
	switch f {
	case SDft:
		return "sdft"
	case FDX:
		return "fdx"
	case PlainText:
		return "text"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sdft":
		return SDft, true
	case "fdx", "finaldraft":
		return FDX, true
	case "text", "txt", "plain":
		return PlainText, true
	}
	return SDft, false
}

// FromPath infers the format from a file extension.
func FromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sdft":
		return SDft, true
	case ".fdx":
		return FDX, true
	case ".txt", ".text":
		return PlainText, true
	}
	return SDft, false
}

// ErrMalformedDocument marks input that parsed syntactically but lacks the
// structure a screenplay file must have.
var ErrMalformedDocument = errors.New("malformed screenplay document")

// ParseError wraps any import failure with the format being read.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SerializeError reports an export failure.
type SerializeError struct {
	Format Format
	Reason string
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("serialize %s: %s", e.Format, e.Reason)
}

// Save encodes the document in the given format.
func Save(doc *screenplay.Document, f Format) ([]byte, error) {
	switch f {
	case SDft:
		return saveSDft(doc)
	case FDX:
		return saveFDX(doc)
	case PlainText:
		return savePlainText(doc)
	default:
		return nil, &SerializeError{Format: f, Reason: "unsupported format"}
	}
}

// Load decodes a document from data in the given format. The returned
// document always satisfies the never-empty invariant; loading an empty
// file yields the blank Scene Heading insertion point.
func Load(data []byte, f Format) (*screenplay.Document, error) {
	switch f {
	case SDft:
		return loadSDft(data)
	case FDX:
		return loadFDX(data)
	case PlainText:
		return loadPlainText(data)
	default:
		return nil, &ParseError{Format: f, Err: errors.New("unsupported format")}
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a crash report plus an autosave of the
// open document, so a writing session is never lost to a bug.
package crash

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"scriptdraft/internal/log"
	"scriptdraft/internal/storage"
	"scriptdraft/internal/version"
)

// SnapshotFunc returns the open document's path and serialized bytes. ok is
// false when nothing is open.
type SnapshotFunc func() (path string, blob []byte, ok bool)

// test seam
var exitFn = os.Exit

// Recover is installed with defer at the top of main goroutines. On panic
// it writes a crash report, autosaves the document and exits nonzero.
func Recover(snapshot SnapshotFunc) {
	r := recover()
	if r == nil {
		return
	}
	report := writeReport(r, debug.Stack())
	saved := ""
	if snapshot != nil {
		if path, blob, ok := snapshot(); ok {
			saved = storage.AutosaveCrashSnapshot(path, blob)
		}
	}
	log.L().Error("fatal error, shutting down",
		"panic", fmt.Sprint(r), "report", report, "autosave", saved)
	exitFn(1)
}

// writeReport stores the panic and stack under the user cache directory.
// The returned path is empty when even that failed.
func writeReport(r any, stack []byte) string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "scriptdraft", "crashes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", time.Now().UTC().Format("20060102-150405")))
	body := fmt.Sprintf("scriptdraft %s\ntime: %s\npanic: %v\n\n%s",
		version.Version, time.Now().UTC().Format(time.RFC3339), r, stack)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		return ""
	}
	return path
}

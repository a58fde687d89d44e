/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecoverWritesAutosaveAndExits(t *testing.T) {
	exited := -1
	exitFn = func(code int) { exited = code }
	defer func() { exitFn = os.Exit }()

	docPath := filepath.Join(t.TempDir(), "open.sdft")
	snapshot := func() (string, []byte, bool) {
		return docPath, []byte("<screenplay/>"), true
	}

	func() {
		defer Recover(snapshot)
		panic("boom")
	}()

	if exited != 1 {
		t.Fatalf("exit code = %d, want 1", exited)
	}
	data, err := os.ReadFile(docPath + ".autosave")
	if err != nil {
		t.Fatalf("autosave missing: %v", err)
	}
	if string(data) != "<screenplay/>" {
		t.Fatalf("autosave content %q", data)
	}
}

func TestRecoverNoPanicIsNoop(t *testing.T) {
	exitFn = func(int) { t.Fatalf("exit called without a panic") }
	defer func() { exitFn = os.Exit }()
	func() {
		defer Recover(nil)
	}()
}

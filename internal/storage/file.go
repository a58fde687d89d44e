/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage handles screenplay files on disk: atomic writes with
// rolling backups, crash autosaves, a SQLite catalog over a workspace, and
// filesystem change notification.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"scriptdraft/internal/log"
)

const (
	backupDirName = ".backups"
	maxBackups    = 5
	backupStamp   = "20060102-150405"
)

// SaveDocumentFile writes data to path atomically: the bytes go to a
// temporary file in the same directory, are synced, and replace the target
// by rename. An existing target is copied into a timestamped backup first,
// so a save can never destroy the only good copy.
func SaveDocumentFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := backupFile(path); err != nil {
			// A failed backup should not block the save itself.
			log.L().Warn("backup before save failed", "path", path, "error", err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".scriptdraft-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// OpenDocumentFile reads path; when the primary file is missing or
// unreadable it falls back to the newest backup, logging the recovery.
func OpenDocumentFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	backup, ok := latestBackup(path)
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	log.L().Warn("primary file unreadable, recovering from backup",
		"path", path, "backup", backup, "error", err)
	data, berr := os.ReadFile(backup)
	if berr != nil {
		return nil, fmt.Errorf("open %s (backup %s also failed: %v): %w", path, backup, berr, err)
	}
	return data, nil
}

// Backups returns the backup files for path, newest first.
func Backups(path string) []string {
	pattern := filepath.Join(filepath.Dir(path), backupDirName, filepath.Base(path)+".*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches
}

func latestBackup(path string) (string, bool) {
	b := Backups(path)
	if len(b) == 0 {
		return "", false
	}
	return b[0], true
}

// backupFile copies path into the backup directory with a timestamp suffix
// and prunes old copies beyond maxBackups.
func backupFile(path string) error {
	dir := filepath.Join(filepath.Dir(path), backupDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	stamp := time.Now().UTC().Format(backupStamp)
	dst := filepath.Join(dir, fmt.Sprintf("%s.%s", filepath.Base(path), stamp))
	if err := copyFile(path, dst); err != nil {
		return err
	}
	if backups := Backups(path); len(backups) > maxBackups {
		for _, old := range backups[maxBackups:] {
			os.Remove(old)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// AutosaveCrashSnapshot writes blob to an autosave location derived from
// path (or a fallback in the user cache when path is empty), for the crash
// handler. Best effort; the returned path is empty on failure.
func AutosaveCrashSnapshot(path string, blob []byte) string {
	var target string
	if path != "" {
		target = path + ".autosave"
	} else {
		dir, err := os.UserCacheDir()
		if err != nil {
			return ""
		}
		target = filepath.Join(dir, "scriptdraft", fmt.Sprintf("recovered-%s.sdft", time.Now().UTC().Format(backupStamp)))
	}
	if err := SaveDocumentFile(target, blob); err != nil {
		log.L().Error("autosave failed", "path", target, "error", err)
		return ""
	}
	return target
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"scriptdraft/internal/format"
	"scriptdraft/internal/log"
)

// ChangeKind says what happened to a watched screenplay file.
type ChangeKind int

const (
	FileModified ChangeKind = iota
	FileRemoved
)

// Change is one filesystem event on a screenplay file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports changes to screenplay files under a workspace root,
// recursively. New subdirectories are picked up as they appear.
type Watcher struct {
	fw      *fsnotify.Watcher
	changes chan Change
	done    chan struct{}
}

// NewWatcher starts watching root. Callers receive events on Changes and
// must Close the watcher when done.
func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	w := &Watcher{
		fw:      fw,
		changes: make(chan Change, 64),
		done:    make(chan struct{}),
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

// Changes is the event stream. It closes when the watcher shuts down.
func (w *Watcher) Changes() <-chan Change { return w.changes }

// Close stops the watcher and closes the event stream.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == backupDirName {
			return filepath.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.L().Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	// A created directory gets added to the watch so files inside it are
	// seen too.
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if filepath.Base(ev.Name) != backupDirName {
				if err := w.fw.Add(ev.Name); err != nil {
					log.L().Warn("watch new directory failed", "path", ev.Name, "error", err)
				}
			}
			return
		}
	}
	if _, ok := format.FromPath(ev.Name); !ok {
		return
	}
	var kind ChangeKind
	switch {
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		kind = FileRemoved
	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		kind = FileModified
	default:
		return
	}
	select {
	case w.changes <- Change{Path: ev.Name, Kind: kind}:
	default:
		log.L().Warn("watcher event dropped, consumer too slow", "path", ev.Name)
	}
}

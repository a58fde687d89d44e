/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package undo provides a bounded snapshot-based undo/redo stack for a
// single open document. Snapshots are opaque serialized blobs; the package
// never inspects them.
package undo

import (
	"sync"
	"time"
)

// Snapshot is one captured document state.
type Snapshot struct {
	Blob    []byte
	TakenAt time.Time
}

// Config bounds the history.
type Config struct {
	// MaxDepth caps the number of undo steps; oldest steps fall off.
	MaxDepth int
	// MaxBytes caps the total blob bytes held across both stacks.
	MaxBytes int
	// MinInterval coalesces snapshots pushed in rapid succession (fast
	// typing) into a single undo step.
	MinInterval time.Duration
}

// DefaultConfig matches interactive editing: deep enough history for a
// writing session, bounded memory.
func DefaultConfig() Config {
	return Config{
		MaxDepth:    200,
		MaxBytes:    16 << 20,
		MinInterval: 400 * time.Millisecond,
	}
}

// Stats is a point-in-time view of the history for diagnostics.
type Stats struct {
	UndoDepth int
	RedoDepth int
	Bytes     int
}

// Manager holds the undo and redo stacks. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	undo     []Snapshot
	redo     []Snapshot
	bytes    int
	lastPush time.Time

	now func() time.Time // test seam
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultConfig().MaxBytes
	}
	return &Manager{cfg: cfg, now: time.Now}
}

// Push records the document state as it was before an edit. Any redo
// history is invalidated. Pushes arriving within MinInterval of the
// previous one are coalesced: the earlier snapshot stays the restore point.
func (m *Manager) Push(blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropRedoLocked()

	ts := m.now()
	if len(m.undo) > 0 && m.cfg.MinInterval > 0 && ts.Sub(m.lastPush) < m.cfg.MinInterval {
		m.lastPush = ts
		return
	}
	m.lastPush = ts

	cp := append([]byte(nil), blob...)
	m.undo = append(m.undo, Snapshot{Blob: cp, TakenAt: ts})
	m.bytes += len(cp)
	m.trimLocked()
}

// Undo pops the most recent snapshot and stores current as the redo state.
// ok is false when there is nothing to undo; current is untouched then.
func (m *Manager) Undo(current []byte) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) == 0 {
		return Snapshot{}, false
	}
	top := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.bytes -= len(top.Blob)

	cp := append([]byte(nil), current...)
	m.redo = append(m.redo, Snapshot{Blob: cp, TakenAt: m.now()})
	m.bytes += len(cp)
	return top, true
}

// Redo reverses the most recent Undo.
func (m *Manager) Redo(current []byte) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.redo) == 0 {
		return Snapshot{}, false
	}
	top := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.bytes -= len(top.Blob)

	cp := append([]byte(nil), current...)
	m.undo = append(m.undo, Snapshot{Blob: cp, TakenAt: m.now()})
	m.bytes += len(cp)
	// A redo target must stay reachable even under byte pressure, so trim
	// runs after the push.
	m.trimLocked()
	return top, true
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// Clear empties both stacks, e.g. after opening a different document.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo, m.redo = nil, nil
	m.bytes = 0
	m.lastPush = time.Time{}
}

func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{UndoDepth: len(m.undo), RedoDepth: len(m.redo), Bytes: m.bytes}
}

func (m *Manager) dropRedoLocked() {
	for _, s := range m.redo {
		m.bytes -= len(s.Blob)
	}
	m.redo = nil
}

// trimLocked evicts the oldest undo entries until depth and byte budgets
// hold. The newest entry always survives.
func (m *Manager) trimLocked() {
	for len(m.undo) > 1 && (len(m.undo) > m.cfg.MaxDepth || m.bytes > m.cfg.MaxBytes) {
		m.bytes -= len(m.undo[0].Blob)
		m.undo = m.undo[1:]
	}
}

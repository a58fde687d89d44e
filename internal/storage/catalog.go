/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"scriptdraft/internal/element"
	"scriptdraft/internal/format"
	"scriptdraft/internal/log"
	"scriptdraft/internal/screenplay"
)

const catalogSchemaVersion = 1

// Catalog is a SQLite index over the screenplay files of a workspace:
// which documents exist, and which characters, locations and scenes they
// contain. It is derived data and can always be rebuilt with Scan.
type Catalog struct {
	db *sql.DB
}

// DocumentInfo is one cataloged screenplay.
type DocumentInfo struct {
	Path     string
	Title    string
	Author   string
	Elements int
	Updated  time.Time
}

// SceneInfo is one scene heading within a cataloged document.
type SceneInfo struct {
	Path     string
	Position int
	Heading  string
	Location string
}

// OpenCatalog opens or creates the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}
	// Pragmas ride in the DSN so every pooled connection gets them.
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	// A single connection avoids writer lock contention during indexing.
	db.SetMaxOpenConns(1)
	c := &Catalog{db: db}
	if err := c.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
	path       TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	author     TEXT NOT NULL DEFAULT '',
	elements   INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS characters (
	doc_path TEXT NOT NULL REFERENCES documents(path) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	PRIMARY KEY (doc_path, name)
);
CREATE TABLE IF NOT EXISTS locations (
	doc_path TEXT NOT NULL REFERENCES documents(path) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	PRIMARY KEY (doc_path, name)
);
CREATE TABLE IF NOT EXISTS scenes (
	doc_path TEXT NOT NULL REFERENCES documents(path) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	heading  TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (doc_path, position)
);`
	if _, err := c.db.Exec(ddl); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	_, err := c.db.Exec(
		`INSERT INTO meta(key, value) VALUES('schema_version', ?)
		 ON CONFLICT(key) DO NOTHING`, fmt.Sprint(catalogSchemaVersion))
	if err != nil {
		return fmt.Errorf("catalog meta: %w", err)
	}
	return nil
}

func (c *Catalog) Close() error { return c.db.Close() }

// IndexDocument replaces the catalog rows for path with the document's
// current content in one transaction.
func (c *Catalog) IndexDocument(path string, doc *screenplay.Document) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}
	_, err = tx.Exec(
		`INSERT INTO documents(path, title, author, elements, updated_at) VALUES(?, ?, ?, ?, ?)`,
		path, doc.Meta.Title, doc.Meta.Author, doc.Len(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}
	for _, name := range doc.Characters() {
		if _, err := tx.Exec(`INSERT INTO characters(doc_path, name) VALUES(?, ?)`, path, name); err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}
	}
	for _, name := range doc.Locations() {
		if _, err := tx.Exec(`INSERT INTO locations(doc_path, name) VALUES(?, ?)`, path, name); err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}
	}
	for i, e := range doc.Elements {
		if e.Type != element.SceneHeading || e.Text == "" {
			continue
		}
		loc, _ := screenplay.LocationFromSceneHeading(e.Text)
		if _, err := tx.Exec(
			`INSERT INTO scenes(doc_path, position, heading, location) VALUES(?, ?, ?, ?)`,
			path, i, e.Text, loc); err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}
	}
	return tx.Commit()
}

// Remove drops a document and its dependent rows from the catalog.
func (c *Catalog) Remove(path string) error {
	if _, err := c.db.Exec(`DELETE FROM documents WHERE path = ?`, path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Documents lists cataloged screenplays ordered by path.
func (c *Catalog) Documents() ([]DocumentInfo, error) {
	rows, err := c.db.Query(`SELECT path, title, author, elements, updated_at FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var out []DocumentInfo
	for rows.Next() {
		var d DocumentInfo
		if err := rows.Scan(&d.Path, &d.Title, &d.Author, &d.Elements, &d.Updated); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Characters returns the distinct character names across the workspace.
func (c *Catalog) Characters() ([]string, error) {
	return c.distinct(`SELECT DISTINCT name FROM characters ORDER BY name`)
}

// Locations returns the distinct locations across the workspace.
func (c *Catalog) Locations() ([]string, error) {
	return c.distinct(`SELECT DISTINCT name FROM locations ORDER BY name`)
}

func (c *Catalog) distinct(query string) ([]string, error) {
	rows, err := c.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Scenes lists the scenes of one document in script order.
func (c *Catalog) Scenes(path string) ([]SceneInfo, error) {
	rows, err := c.db.Query(
		`SELECT doc_path, position, heading, location FROM scenes WHERE doc_path = ? ORDER BY position`, path)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()
	var out []SceneInfo
	for rows.Next() {
		var s SceneInfo
		if err := rows.Scan(&s.Path, &s.Position, &s.Heading, &s.Location); err != nil {
			return nil, fmt.Errorf("list scenes: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Scan walks root, loads every recognizable screenplay file and indexes
// it. Files that fail to parse are skipped with a warning; the scan keeps
// going. Returns the number of documents indexed.
func (c *Catalog) Scan(root string) (int, error) {
	indexed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == backupDirName {
				return filepath.SkipDir
			}
			return nil
		}
		f, ok := format.FromPath(path)
		if !ok {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.L().Warn("scan: unreadable file skipped", "path", path, "error", err)
			return nil
		}
		doc, err := format.Load(data, f)
		if err != nil {
			log.L().Warn("scan: unparseable file skipped", "path", path, "error", err)
			return nil
		}
		if err := c.IndexDocument(path, doc); err != nil {
			return err
		}
		indexed++
		return nil
	})
	if err != nil {
		return indexed, fmt.Errorf("scan %s: %w", root, err)
	}
	return indexed, nil
}

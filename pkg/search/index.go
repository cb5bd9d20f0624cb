package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-navtree/pkg/frontmatter"
	"github.com/mattsolo1/grove-navtree/pkg/models"
)

// Index caches a vault's note dictionary in sqlite so the menu can be built
// without rescanning the vault.
type Index struct {
	db *sql.DB
}

// NewIndex opens or creates the index at dbPath
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		parent TEXT NOT NULL DEFAULT '',
		fname TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		vault TEXT NOT NULL DEFAULT '',
		stub BOOLEAN NOT NULL DEFAULT 0,
		nav_exclude BOOLEAN NOT NULL DEFAULT 0,
		nav_order INTEGER,
		created_ms INTEGER NOT NULL DEFAULT 0,
		updated_ms INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_notes_parent ON notes(parent);
	CREATE INDEX IF NOT EXISTS idx_notes_fname ON notes(fname);

	CREATE TABLE IF NOT EXISTS domains (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := idx.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ReplaceAll swaps the indexed vault for data in a single transaction
func (idx *Index) ReplaceAll(data *models.NoteData) error {
	if !data.Verify() {
		return fmt.Errorf("replace index: note data not loaded")
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"notes", "domains", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO notes (
			id, parent, fname, title, description, vault, stub, nav_exclude,
			nav_order, created_ms, updated_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, note := range data.Notes {
		var navOrder sql.NullInt64
		if note.NavOrder != nil {
			navOrder = sql.NullInt64{Int64: int64(*note.NavOrder), Valid: true}
		}
		_, err := stmt.Exec(
			note.ID, note.Parent, note.Fname, note.Title, note.Desc, note.Vault,
			note.Stub, note.NavExclude, navOrder,
			frontmatter.ToEpochMillis(note.Created), frontmatter.ToEpochMillis(note.Updated),
		)
		if err != nil {
			return fmt.Errorf("insert note %s: %w", note.ID, err)
		}
	}

	for i, id := range data.Domains {
		if _, err := tx.Exec("INSERT INTO domains (position, id) VALUES (?, ?)", i, id); err != nil {
			return fmt.Errorf("insert domain %s: %w", id, err)
		}
	}

	if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES ('note_index', ?)", data.NoteIndex); err != nil {
		return fmt.Errorf("insert note index: %w", err)
	}

	return tx.Commit()
}

// Load rebuilds the note data from the index. Children are ordered by fname,
// matching the vault loader.
func (idx *Index) Load() (*models.NoteData, error) {
	notes, err := idx.queryNotes("SELECT "+noteColumns+" FROM notes ORDER BY fname, id", -1)
	if err != nil {
		return nil, err
	}

	data := &models.NoteData{Notes: make(models.NoteDict, len(notes)), Domains: []string{}}
	for _, note := range notes {
		data.Notes[note.ID] = note
	}
	for _, note := range notes {
		if parent := data.Notes.Get(note.Parent); parent != nil {
			parent.Children = append(parent.Children, note.ID)
		}
	}

	rows, err := idx.db.Query("SELECT id FROM domains ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		data.Domains = append(data.Domains, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = idx.db.QueryRow("SELECT value FROM meta WHERE key = 'note_index'").Scan(&data.NoteIndex)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	return data, nil
}

// SearchTitles finds notes whose title or fname contains query, ignoring case
func (idx *Index) SearchTitles(query string, limit int) ([]*models.Note, error) {
	if limit <= 0 {
		limit = 50
	}

	searchPattern := "%" + strings.ReplaceAll(escapeLike(strings.ToLower(query)), " ", "%") + "%"
	return idx.queryNotes(`
		SELECT `+noteColumns+`
		FROM notes
		WHERE stub = 0 AND (lower(title) LIKE ? ESCAPE '\' OR lower(fname) LIKE ? ESCAPE '\')
		ORDER BY fname
		LIMIT ?
	`, limit, searchPattern, searchPattern)
}

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

const noteColumns = `id, parent, fname, title, description, vault, stub, nav_exclude,
	nav_order, created_ms, updated_ms`

// queryNotes runs a notes query. A non-negative limit is appended as the last argument.
func (idx *Index) queryNotes(query string, limit int, args ...any) ([]*models.Note, error) {
	if limit >= 0 {
		args = append(args, limit)
	}
	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.Note
	for rows.Next() {
		note := &models.Note{}
		var navOrder sql.NullInt64
		var createdMs, updatedMs int64

		err := rows.Scan(
			&note.ID, &note.Parent, &note.Fname, &note.Title, &note.Desc, &note.Vault,
			&note.Stub, &note.NavExclude, &navOrder, &createdMs, &updatedMs,
		)
		if err != nil {
			return nil, err
		}
		if navOrder.Valid {
			order := int(navOrder.Int64)
			note.NavOrder = &order
		}
		note.Created = frontmatter.FromEpochMillis(createdMs)
		note.Updated = frontmatter.FromEpochMillis(updatedMs)

		results = append(results, note)
	}

	return results, rows.Err()
}

// Count returns the number of indexed notes
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&n)
	return n, err
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Package testutil provides database fixtures and independent verification
// helpers for litebind tests.
//
// Verification deliberately goes through database/sql with the
// mattn/go-sqlite3 driver rather than through the binding under test, so a
// replace-protocol bug cannot hide behind a matching read-side bug.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/roach88/litebind"
)

// TempPath returns a database file path inside a per-test temp directory.
func TempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// OpenTemp opens a fresh file-backed database, closed automatically at test
// end, and returns it with its path.
func OpenTemp(t *testing.T, name string) (*litebind.Database, string) {
	t.Helper()
	path := TempPath(t, name)
	db, err := litebind.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

// OpenMemory opens a fresh in-memory database, closed at test end.
func OpenMemory(t *testing.T) *litebind.Database {
	t.Helper()
	db, err := litebind.Open(":memory:")
	if err != nil {
		t.Fatalf("open :memory:: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// MustExec runs SQL and fails the test on error.
func MustExec(t *testing.T, db *litebind.Database, sql string, args ...any) {
	t.Helper()
	if err := db.Exec(sql, args...); err != nil {
		t.Fatalf("exec %q: %v", sql, err)
	}
}

// SeedItems creates the items table used across the suite and loads the
// baseline rows (1, Widget, 10) and (2, Gadget, 5).
func SeedItems(t *testing.T, db *litebind.Database) {
	t.Helper()
	MustExec(t, db, `CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, qty INT)`)
	MustExec(t, db, `INSERT INTO items (id, name, qty) VALUES (1, 'Widget', 10)`)
	MustExec(t, db, `INSERT INTO items (id, name, qty) VALUES (2, 'Gadget', 5)`)
}

// ReadAll drains a query through the binding and returns every row.
func ReadAll(t *testing.T, db *litebind.Database, sql string, args ...any) [][]any {
	t.Helper()
	rows, err := db.Query(sql, args...)
	if err != nil {
		t.Fatalf("query %q: %v", sql, err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		row := rows.Row()
		copied := make([]any, len(row))
		copy(copied, row)
		out = append(out, copied)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate %q: %v", sql, err)
	}
	return out
}

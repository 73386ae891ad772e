package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3" // independent read path for verification
)

// VerifyRows reads a query from a database file through database/sql and
// the mattn driver, a completely separate code path from the binding under
// test, and returns every row. Integer columns come back as int64, text as
// string, matching litebind's own decoding so the two sides compare
// directly.
func VerifyRows(t *testing.T, path, query string) [][]any {
	t.Helper()

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("verification open %s: %v", path, err)
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		t.Fatalf("verification query %q: %v", query, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		t.Fatalf("verification columns: %v", err)
	}

	var out [][]any
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			t.Fatalf("verification scan: %v", err)
		}
		for i, v := range raw {
			// database/sql hands text back as []byte for untyped drivers.
			if b, ok := v.([]byte); ok {
				raw[i] = string(b)
			}
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("verification iterate: %v", err)
	}
	return out
}

// VerifyTableNames lists the user tables of a database file through the
// independent driver.
func VerifyTableNames(t *testing.T, path string) []string {
	t.Helper()
	rows := VerifyRows(t, path,
		`SELECT name FROM sqlite_schema WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r[0].(string))
	}
	return names
}

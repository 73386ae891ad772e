package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/litebind"
	"github.com/roach88/litebind/internal/testutil"
)

// execute runs the CLI with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// seedDatabase creates a database file with a deterministic schema.
func seedDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := litebind.Open(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, qty INT)`))
	require.NoError(t, db.Exec(`INSERT INTO items (id, name, qty) VALUES (1, 'Widget', 10), (2, 'Gadget', 5)`))
	require.NoError(t, db.Exec(`CREATE INDEX items_qty_idx ON items (qty)`))
	require.NoError(t, db.Exec(`CREATE VIEW items_names AS SELECT name FROM items`))
	return path
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "tables", "whatever.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestTables_TextGolden(t *testing.T) {
	path := seedDatabase(t)

	out, err := execute(t, "tables", path)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "tables_text", []byte(out))
}

func TestTables_JSONGolden(t *testing.T) {
	path := seedDatabase(t)

	out, err := execute(t, "--format", "json", "tables", path)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "tables_json", []byte(out))
}

func TestTables_EmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := litebind.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := execute(t, "tables", path)
	require.NoError(t, err)
	assert.Equal(t, "no objects\n", out)
}

func TestSerializeRestore_EndToEnd(t *testing.T) {
	src := seedDatabase(t)
	snap := filepath.Join(t.TempDir(), "app.snap")

	out, err := execute(t, "serialize", src, "-o", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "blake3 ")

	dstPath := filepath.Join(t.TempDir(), "restored.db")
	dst, err := litebind.Open(dstPath)
	require.NoError(t, err)
	require.NoError(t, dst.Exec(`CREATE TABLE stale (x)`))
	require.NoError(t, dst.Close())

	_, err = execute(t, "restore", dstPath, snap)
	require.NoError(t, err)

	assert.Equal(t, []string{"items"}, testutil.VerifyTableNames(t, dstPath))
	rows := testutil.VerifyRows(t, dstPath, `SELECT name FROM items ORDER BY id`)
	require.Len(t, rows, 2)
	assert.Equal(t, "Widget", rows[0][0])
}

func TestSerializeRestore_XZAndVerify(t *testing.T) {
	src := seedDatabase(t)
	snap := filepath.Join(t.TempDir(), "app.snap.xz")

	_, err := execute(t, "serialize", src, "-o", snap, "--xz")
	require.NoError(t, err)

	// The file on disk is an xz stream, detected by magic on restore.
	raw, err := os.ReadFile(snap)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, xzMagic))

	dstPath := filepath.Join(t.TempDir(), "restored.db")
	_, err = execute(t, "restore", dstPath, snap)
	require.NoError(t, err)
	assert.Equal(t, []string{"items"}, testutil.VerifyTableNames(t, dstPath))

	// A wrong digest refuses the restore before touching the target.
	_, err = execute(t, "restore", dstPath, snap, "--verify", "deadbeef")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "digest mismatch")
}

func TestBackup_EndToEnd(t *testing.T) {
	src := seedDatabase(t)
	dst := filepath.Join(t.TempDir(), "copy.db")

	_, err := execute(t, "backup", src, dst)
	require.NoError(t, err)
	assert.Equal(t, []string{"items"}, testutil.VerifyTableNames(t, dst))
}

func TestDiffApplyInvert_EndToEnd(t *testing.T) {
	before := seedDatabase(t)
	after := seedDatabase(t)

	ab, err := litebind.Open(after)
	require.NoError(t, err)
	require.NoError(t, ab.Exec(`UPDATE items SET qty = 20 WHERE id = 1`))
	require.NoError(t, ab.Exec(`INSERT INTO items (id, name, qty) VALUES (3, 'Doohickey', 15)`))
	require.NoError(t, ab.Close())

	cs := filepath.Join(t.TempDir(), "changes.cs")
	_, err = execute(t, "diff", before, after, "-o", cs)
	require.NoError(t, err)

	// Applying the diff to the before-state produces the after-state rows.
	_, err = execute(t, "apply", before, cs)
	require.NoError(t, err)
	rows := testutil.VerifyRows(t, before, `SELECT id, name, qty FROM items ORDER BY id`)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(20), rows[0][2])
	assert.Equal(t, "Doohickey", rows[2][1])

	// Inverting and applying the inverse undoes it again.
	undo := filepath.Join(t.TempDir(), "undo.cs")
	_, err = execute(t, "invert", cs, "-o", undo)
	require.NoError(t, err)
	_, err = execute(t, "apply", before, undo)
	require.NoError(t, err)
	rows = testutil.VerifyRows(t, before, `SELECT id, qty FROM items ORDER BY id`)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(10), rows[0][1])
}

func TestDiff_NoChanges(t *testing.T) {
	a := seedDatabase(t)
	b := seedDatabase(t)
	cs := filepath.Join(t.TempDir(), "none.cs")

	out, err := execute(t, "diff", a, b, "-o", cs)
	require.NoError(t, err)
	assert.Contains(t, out, "no changes")

	data, err := os.ReadFile(cs)
	require.NoError(t, err)
	assert.Empty(t, data, "identical databases diff to the empty changeset")
}

func TestRestore_CorruptSnapshot(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "bad.snap")
	require.NoError(t, os.WriteFile(snap, bytes.Repeat([]byte{0xAB}, 1000), 0o644))

	dst := filepath.Join(t.TempDir(), "victim.db")
	_, err := execute(t, "restore", dst, snap)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCLI_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "litebind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\nbusy_timeout_ms: 250\n"), 0o644))

	path := seedDatabase(t)
	out, err := execute(t, "--config", cfgPath, "tables", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`, "format falls back to the config file")
}

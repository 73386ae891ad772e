package litebind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/litebind"
	"github.com/roach88/litebind/internal/testutil"
)

func TestOpen_Memory(t *testing.T) {
	db, err := litebind.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.IsOpen())
	assert.False(t, db.Busy())
	assert.Equal(t, ":memory:", db.Location())
}

func TestOpen_File(t *testing.T) {
	db, path := testutil.OpenTemp(t, "app.db")
	testutil.SeedItems(t, db)
	require.NoError(t, db.Close())

	// Reopen and read back through the independent driver.
	names := testutil.VerifyTableNames(t, path)
	assert.Equal(t, []string{"items"}, names)
}

func TestOpen_EmptyLocation(t *testing.T) {
	_, err := litebind.Open("")
	require.Error(t, err)

	var ce *litebind.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "", ce.Location)
}

func TestOpen_MalformedLocation(t *testing.T) {
	// A directory that does not exist cannot host a database file.
	_, err := litebind.Open(t.TempDir() + "/no/such/dir/app.db")
	require.Error(t, err)

	var ce *litebind.ConnectionError
	assert.ErrorAs(t, err, &ce)
}

func TestClose_Idempotent(t *testing.T) {
	db, err := litebind.Open(":memory:")
	require.NoError(t, err)

	require.NoError(t, db.Close())
	require.NoError(t, db.Close(), "second close must be a no-op")
	assert.False(t, db.IsOpen())
}

func TestClosedHandle_RefusesEverything(t *testing.T) {
	db, err := litebind.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.True(t, litebind.IsClosed(db.Exec(`SELECT 1`)))

	_, err = db.Query(`SELECT 1`)
	assert.True(t, litebind.IsClosed(err))

	_, err = db.Serialize("")
	assert.True(t, litebind.IsClosed(err))

	_, err = db.CreateSession("")
	assert.True(t, litebind.IsClosed(err))

	assert.True(t, litebind.IsClosed(db.Deserialize([]byte{}, "")))
	assert.True(t, litebind.IsClosed(db.ApplyChangeset([]byte{})))
	assert.True(t, litebind.IsClosed(db.SetBusyTimeout(100)))
}

func TestExec_WithArgs(t *testing.T) {
	db := testutil.OpenMemory(t)
	testutil.SeedItems(t, db)

	require.NoError(t, db.Exec(`UPDATE items SET qty = ? WHERE id = ?`, 20, 1))

	rows := testutil.ReadAll(t, db, `SELECT qty FROM items WHERE id = 1`)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(20), rows[0][0])
}

func TestExec_MultiStatement(t *testing.T) {
	db := testutil.OpenMemory(t)
	require.NoError(t, db.Exec(`CREATE TABLE a (x); CREATE TABLE b (y); INSERT INTO a VALUES (1)`))

	rows := testutil.ReadAll(t, db, `SELECT x FROM a`)
	require.Len(t, rows, 1)
}

func TestExec_EngineError(t *testing.T) {
	db := testutil.OpenMemory(t)

	err := db.Exec(`SELECT * FROM missing`)
	require.Error(t, err)
	assert.True(t, litebind.IsEngineError(err))

	var ee *litebind.EngineError
	require.ErrorAs(t, err, &ee)
	assert.NotEmpty(t, ee.Message, "engine text must be passed through")
}

func TestBusy_TracksIterators(t *testing.T) {
	db := testutil.OpenMemory(t)
	testutil.SeedItems(t, db)

	rows, err := db.Query(`SELECT id FROM items ORDER BY id`)
	require.NoError(t, err)
	assert.True(t, db.Busy(), "open iterator must mark the handle busy")

	require.True(t, rows.Next())
	assert.True(t, db.Busy(), "partially consumed iterator keeps the handle busy")

	require.True(t, rows.Next())
	require.False(t, rows.Next(), "two seeded rows")
	require.NoError(t, rows.Err())
	assert.False(t, db.Busy(), "exhausted iterator releases the handle")
}

func TestBusy_ExplicitRelease(t *testing.T) {
	db := testutil.OpenMemory(t)
	testutil.SeedItems(t, db)

	rows, err := db.Query(`SELECT id FROM items`)
	require.NoError(t, err)
	require.True(t, db.Busy())

	require.NoError(t, rows.Close())
	assert.False(t, db.Busy())
	require.NoError(t, rows.Close(), "close is idempotent")
}

func TestClose_InvalidatesIterators(t *testing.T) {
	db, err := litebind.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE t (x); INSERT INTO t VALUES (1), (2)`))

	rows, err := db.Query(`SELECT x FROM t`)
	require.NoError(t, err)
	require.True(t, rows.Next())

	require.NoError(t, db.Close(), "close must succeed despite the abandoned iterator")
	assert.False(t, rows.Next())
	assert.True(t, litebind.IsClosed(rows.Err()))
}

func TestSerialize_EmptyDatabase(t *testing.T) {
	db := testutil.OpenMemory(t)

	buf, err := db.Serialize("")
	require.NoError(t, err)
	defer buf.Close()

	assert.Equal(t, 0, buf.Len(), "a database with no schema serializes to an empty buffer")
}

func TestSerialize_AllowedWhileBusy(t *testing.T) {
	db := testutil.OpenMemory(t)
	testutil.SeedItems(t, db)

	rows, err := db.Query(`SELECT id FROM items`)
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, db.Busy())

	buf, err := db.Serialize("")
	require.NoError(t, err, "serialization is a read and is not blocked by busy")
	defer buf.Close()
	assert.Greater(t, buf.Len(), 0)
}

func TestRows_ValueDecoding(t *testing.T) {
	db := testutil.OpenMemory(t)
	require.NoError(t, db.Exec(`CREATE TABLE v (i INTEGER, f REAL, s TEXT, b BLOB, n TEXT)`))
	require.NoError(t, db.Exec(`INSERT INTO v VALUES (?, ?, ?, ?, ?)`, 7, 1.5, "", []byte{0x1, 0x2}, nil))

	rows := testutil.ReadAll(t, db, `SELECT i, f, s, b, n FROM v`)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0][0])
	assert.Equal(t, 1.5, rows[0][1])
	assert.Equal(t, "", rows[0][2], "zero-length text survives as empty string, not NULL")
	assert.Equal(t, []byte{0x1, 0x2}, rows[0][3])
	assert.Nil(t, rows[0][4])
}

func TestRows_Columns(t *testing.T) {
	db := testutil.OpenMemory(t)
	testutil.SeedItems(t, db)

	rows, err := db.Query(`SELECT id, name, qty FROM items`)
	require.NoError(t, err)
	defer rows.Close()

	assert.Equal(t, []string{"id", "name", "qty"}, rows.Columns())
}

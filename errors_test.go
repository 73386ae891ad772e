package litebind_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/litebind"
	"github.com/roach88/litebind/internal/testutil"
)

func TestStateError_CodesAndMessages(t *testing.T) {
	db, err := litebind.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	err = db.Exec(`SELECT 1`)
	var se *litebind.StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, litebind.ErrCodeDatabaseClosed, se.Code)
	assert.Contains(t, se.Error(), "DATABASE_CLOSED")
	assert.Contains(t, se.Error(), "closed")
}

func TestStateError_Busy(t *testing.T) {
	db := testutil.OpenMemory(t)
	testutil.SeedItems(t, db)

	rows, err := db.Query(`SELECT id FROM items`)
	require.NoError(t, err)
	defer rows.Close()

	_, err = db.CreateSession("")
	var se *litebind.StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, litebind.ErrCodeDatabaseBusy, se.Code)
}

func TestErrorPredicates_DisjointClasses(t *testing.T) {
	db := testutil.OpenMemory(t)

	typeErr := db.ApplyChangeset(nil)
	engineErr := db.Exec(`SELECT * FROM missing`)

	assert.True(t, litebind.IsTypeError(typeErr))
	assert.False(t, litebind.IsEngineError(typeErr))
	assert.False(t, litebind.IsClosed(typeErr))

	assert.True(t, litebind.IsEngineError(engineErr))
	assert.False(t, litebind.IsTypeError(engineErr))
}

func TestErrorPredicates_SeeThroughWrapping(t *testing.T) {
	db, err := litebind.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	wrapped := fmt.Errorf("while loading: %w", db.Exec(`SELECT 1`))
	assert.True(t, litebind.IsClosed(wrapped))
}

func TestConnectionError_Unwrap(t *testing.T) {
	_, err := litebind.Open(t.TempDir() + "/missing/dir/app.db")
	require.Error(t, err)

	var ce *litebind.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.NotNil(t, ce.Err)
	assert.Contains(t, ce.Error(), ce.Location)
}

func TestEngineError_PassesMessageThrough(t *testing.T) {
	db := testutil.OpenMemory(t)

	err := db.Exec(`THIS IS NOT SQL`)
	var ee *litebind.EngineError
	require.ErrorAs(t, err, &ee)
	assert.Contains(t, ee.Error(), "syntax error")
	assert.NotZero(t, ee.Code)
}

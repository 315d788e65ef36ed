package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDatabase_ConnectReusesHandle(t *testing.T) {
	conn := NewSQLiteConnector("")
	t.Cleanup(func() { _ = conn.Close() })

	assert.Error(t, conn.Ping())

	first, err := conn.Connect()
	require.NoError(t, err)
	second, err := conn.Connect()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NoError(t, conn.Ping())
	assert.Equal(t, "sqlite", conn.Driver())
}

func TestSQLiteDatabase_MemoryStateIsShared(t *testing.T) {
	conn := NewSQLiteConnector(MemoryPath)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := conn.Connect()
	require.NoError(t, err)

	_, err = db.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO t (id, name) VALUES (1, 'a')")
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM t WHERE id = 1").Scan(&name))
	assert.Equal(t, "a", name)
}

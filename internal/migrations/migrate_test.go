package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestUpIsIdempotent(t *testing.T) {
	database, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate-test.db"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Up(database))
	require.NoError(t, Up(database))

	version, err := Version(database)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	for _, table := range []string{"users", "scenarios"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

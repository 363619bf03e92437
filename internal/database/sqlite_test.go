package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Migrates(t *testing.T) {
	dir := t.TempDir()

	db, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Migrations are idempotent.
	db, err = New(dir)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "audit_logs"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n), table)
		assert.Equal(t, 0, n, table)
	}

	// Scalar writes are not persisted.
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'scalar_settings'").Scan(&n))
	assert.Zero(t, n)
}

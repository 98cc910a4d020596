package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE assets (id TEXT PRIMARY KEY, room_id TEXT, status TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "assets")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "text", colMap["id"])
	assert.Equal(t, "text", colMap["room_id"])

	// PRAGMA table_info yields no rows for a missing table, not an error.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestVerifySchema(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE assets (id TEXT PRIMARY KEY, room_id TEXT, status TEXT)").Error
	require.NoError(t, err)

	problems, err := VerifySchema(db, map[string][]string{
		"assets": {"id", "room_id", "status"},
	})
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = VerifySchema(db, map[string][]string{
		"assets": {"id", "serial_number"},
		"rooms":  {"id"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"table assets: missing column serial_number",
		"table rooms: missing",
	}, problems)
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE room_types (id INTEGER PRIMARY KEY, code TEXT, available_count INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "room_types")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["code"])
	assert.Equal(t, "integer", colMap["available_count"])

	// PRAGMA table_info returns an empty result for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE room_types (id INTEGER PRIMARY KEY, code TEXT)").Error)

	missing, err := MissingColumns(db, "room_types", []string{"code", "rate", "available_count"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rate", "available_count"}, missing)

	missing, err = MissingColumns(db, "processed_event_logs", []string{"receipt_token"})
	require.NoError(t, err)
	assert.Equal(t, []string{"receipt_token"}, missing)
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: DriverSQLite,
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Exec("CREATE TABLE streets (OBJECTID INTEGER PRIMARY KEY, STREET_ID TEXT NOT NULL, ST_NAME TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "streets")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["OBJECTID"].Type)
	assert.True(t, colMap["OBJECTID"].IsPrimaryKey())
	assert.Equal(t, "text", colMap["STREET_ID"].Type)
	assert.Equal(t, "NO", colMap["STREET_ID"].Null)
	assert.Equal(t, "YES", colMap["ST_NAME"].Null)

	pk, ok := PrimaryKey(columns)
	assert.True(t, ok)
	assert.Equal(t, "OBJECTID", pk.Field)

	col, ok := FindColumn(columns, "st_name")
	assert.True(t, ok)
	assert.Equal(t, "ST_NAME", col.Field)

	// PRAGMA table_info returns empty result for non-existent table in SQLite, implies no error but empty columns
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestPrimaryKey_Composite(t *testing.T) {
	columns := []ColumnInfo{
		{Field: "a", Key: "PRI"},
		{Field: "b", Key: "PRI"},
	}
	_, ok := PrimaryKey(columns)
	assert.False(t, ok)
}

package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// IsPrimaryKey reports whether the column is (part of) the primary key.
func (c ColumnInfo) IsPrimaryKey() bool {
	return c.Key == "PRI"
}

// GetTableColumns retrieves the column definitions for a given table.
// Types are lowercased; field names keep the case reported by the database.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	switch db.Dialector.Name() {
	case "sqlite":
		// SQLite uses PRAGMA table_info
		type SQLiteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string `gorm:"column:dflt_value"`
			Pk         int
		}
		var sqliteCols []SQLiteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", strings.ReplaceAll(tableName, "'", "''"))).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			info := ColumnInfo{
				Field:   col.Name,
				Type:    strings.ToLower(col.Type),
				Null:    "YES",
				Default: col.DefaultVal,
			}
			if col.Notnull != 0 {
				info.Null = "NO"
			}
			if col.Pk > 0 {
				info.Key = "PRI"
			}
			columns = append(columns, info)
		}
		return columns, nil

	case "postgres":
		query := `SELECT c.column_name AS field, c.data_type AS type, c.is_nullable AS "null",
	CASE WHEN EXISTS (
		SELECT 1 FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage k
		  ON tc.constraint_name = k.constraint_name AND tc.table_name = k.table_name
		WHERE tc.table_name = c.table_name AND tc.constraint_type = 'PRIMARY KEY' AND k.column_name = c.column_name
	) THEN 'PRI' ELSE '' END AS "key",
	c.column_default AS "default"
FROM information_schema.columns c
WHERE c.table_name = ?
ORDER BY c.ordinal_position`
		if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}

	default:
		// Use Raw SQL for MySQL "SHOW COLUMNS" to get exact type strings.
		err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM %s", QuoteIdent(db, tableName))).Scan(&columns).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
	}

	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// FindColumn returns the column with the given name, compared case-insensitively.
func FindColumn(columns []ColumnInfo, name string) (ColumnInfo, bool) {
	for _, col := range columns {
		if strings.EqualFold(col.Field, name) {
			return col, true
		}
	}
	return ColumnInfo{}, false
}

// PrimaryKey returns the single-column primary key of a table, if any.
func PrimaryKey(columns []ColumnInfo) (ColumnInfo, bool) {
	var found []ColumnInfo
	for _, col := range columns {
		if col.IsPrimaryKey() {
			found = append(found, col)
		}
	}
	if len(found) != 1 {
		return ColumnInfo{}, false
	}
	return found[0], true
}

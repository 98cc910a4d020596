package database

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == "sqlite" {
		// SQLite uses PRAGMA table_info
		type SQLiteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []SQLiteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	// Raw SHOW COLUMNS for MySQL: exact type strings matter more than the
	// Migrator abstraction here.
	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// VerifySchema checks that every required table exists and carries the
// required columns. It returns a sorted list of human-readable problems;
// an empty list means the schema satisfies the requirements.
func VerifySchema(db *gorm.DB, required map[string][]string) ([]string, error) {
	var problems []string

	for table, wantCols := range required {
		columns, err := GetTableColumns(db, table)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			problems = append(problems, fmt.Sprintf("table %s: missing", table))
			continue
		}

		have := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			have[col.Field] = struct{}{}
		}
		for _, want := range wantCols {
			if _, ok := have[strings.ToLower(want)]; !ok {
				problems = append(problems, fmt.Sprintf("table %s: missing column %s", table, want))
			}
		}
	}

	sort.Strings(problems)
	return problems, nil
}

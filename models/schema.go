package models

import (
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// All lists every persisted model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Tag{},
		&BlogPost{},
		&Comment{},
		&Like{},
		&Follow{},
		&UserAnalytics{},
	}
}

// ColumnMismatch lists the columns of one table that no model field maps to
type ColumnMismatch struct {
	Table   string
	Columns []string
}

/*
ColumnMismatchReport compares the live tables with the Go models.

Columns that exist in the database but have no matching field are reported per
table, which catches drift after a manual migration. Tables that have not been
created yet are skipped. Run it by starting the server with
GENERATE_COLUMN_REPORT=true against a gorm backed store.
*/
func ColumnMismatchReport(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch
	migrator := db.Migrator()

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", model, err)
		}
		table := stmt.Schema.Table
		if !migrator.HasTable(table) {
			continue
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
		}

		var missing []string
		for _, column := range columnTypes {
			if !slices.Contains(stmt.Schema.DBNames, column.Name()) {
				missing = append(missing, column.Name())
			}
		}
		report = append(report, ColumnMismatch{Table: table, Columns: missing})
	}

	return report, nil
}

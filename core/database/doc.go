// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL, PostgreSQL and SQLite connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and verifies the
// connection with a ping bounded by the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns reports the columns of a table with their declared types and
// primary key membership. Datasets use it to find the object id field and the
// declared type of the key field before a comparison starts.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "streets")
package database

// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. The inventory feature owns
// the schema through GORM auto-migration; this package only establishes and pools the
// underlying connection.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database

// Package database handles the connection to the product catalog database.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a pooled connection with sane I/O
// timeouts and verifies it with a bounded ping. The catalog tables
// themselves are owned by the external inventory importer; this service
// only reads products and writes price updates and history rows.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database

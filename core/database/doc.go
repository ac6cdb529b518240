// Package database handles database connections and schema inspection.
//
// It wraps GORM to open the inventory database with either the MySQL driver
// (production) or SQLite (local runs and tests), configured from the
// application's configuration.
//
// # Connect
//
// Connect opens the connection, tunes the pool for the chosen driver and pings
// the server before returning.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the health check verify that the
// room_types and processed_event_logs tables carry the columns the store needs.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "room_types", []string{"code"})
package database

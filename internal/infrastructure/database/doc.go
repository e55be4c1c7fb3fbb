// Package database provides SQLite connectivity for the sqlite-backed
// world-state store.
//
// It manages:
//   - Connection setup with WAL mode and busy timeout pragmas
//   - File and directory permissions (0600 / 0750)
//   - Connection pool limits suited to SQLite's single-writer model
//   - Lifecycle (Open / Close / HealthCheck)
//
// All queries use parameterised statements. The schema itself is owned
// by world.SQLiteStore, which creates its single table on first open.
//
// Usage:
//
//	db, err := database.Open(database.Config{Path: cfg.Store.Database.Path})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
package database

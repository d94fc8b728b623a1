// Package database provides the data access layer for the library catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, idempotent schema creation, backups
//	├── errors.go        # StorageError wrapping for every persistence failure
//	└── books/           # Catalog operations: load, insert, remove by title
//
// # Usage
//
//	db, err := database.NewDatabase("./library.db")
//	repo := books.NewRepository(db.DB)
//	all, err := repo.LoadAll()
//
// The connection pool is capped at a single connection so SQLite's
// single-writer rule holds without any locking in callers. Close the
// Database on shutdown.
package database

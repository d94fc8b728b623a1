package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

type Database struct {
	DB   *gorm.DB
	path string
}

// NewDatabase opens the catalog file at dbPath, creating it if needed, and
// ensures the books table exists.
func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithLogLevel(dbPath, "warn")
}

func NewDatabaseWithLogLevel(dbPath, logLevel string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(logLevel)),
	})
	if err != nil {
		return nil, WrapStorageError("open", fmt.Errorf("failed to connect to database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, WrapStorageError("open", err)
	}
	// SQLite allows a single writer; one pooled connection keeps every
	// catalog call serialized on the same handle.
	sqlDB.SetMaxOpenConns(1)

	database := &Database{DB: db, path: dbPath}

	if err := database.Initialize(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

// Initialize creates the books table when it is missing. Safe to call any
// number of times; existing rows are untouched.
func (d *Database) Initialize() error {
	if err := d.DB.AutoMigrate(&entities.Book{}); err != nil {
		return WrapStorageError("initialize", fmt.Errorf("failed to migrate database: %w", err))
	}
	return nil
}

func (d *Database) Path() string {
	return d.path
}

func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return WrapStorageError("ping", err)
	}
	return WrapStorageError("ping", sqlDB.Ping())
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Backup writes a consistent copy of the database to destPath using
// VACUUM INTO. destPath must not exist yet.
func (d *Database) Backup(ctx context.Context, destPath string) error {
	if err := d.DB.WithContext(ctx).Exec("VACUUM INTO ?", destPath).Error; err != nil {
		return WrapStorageError("backup", err)
	}
	return nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

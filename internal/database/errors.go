package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// StorageError wraps any failure reported by the persistence layer.
// Callers are expected to surface it, not recover from it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Locked reports whether the engine refused the call because the file was
// busy or locked by another writer.
func (e *StorageError) Locked() bool {
	var sqliteErr sqlite3.Error
	if errors.As(e.Err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// WrapStorageError returns nil for a nil err.
func WrapStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *StorageError
	if errors.As(err, &existing) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err carries a StorageError.
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

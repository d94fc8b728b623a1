package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
)

// openCatalog opens the library file, creating the books table if needed.
func openCatalog(path string) (*database.Database, *books.Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabaseWithLogLevel(absPath, "silent")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, books.NewRepository(db.DB), nil
}

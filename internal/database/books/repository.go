// Package books provides the catalog operations over the books table.
//
// # Usage
//
//	repo := books.NewRepository(db.DB)
//	book, err := repo.Insert("Dune", "Frank Herbert", "Sci-Fi", "/books/dune.pdf")
//	removed, err := repo.RemoveByTitle("Dune")
//
// Every failure is returned as a *database.StorageError.
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LoadAll returns every stored book in natural storage order.
// An empty table yields an empty, non-nil slice.
func (r *Repository) LoadAll() ([]entities.Book, error) {
	books := []entities.Book{}
	if err := r.db.Find(&books).Error; err != nil {
		return nil, database.WrapStorageError("load books", err)
	}
	return books, nil
}

// Insert appends a new book. Values are stored verbatim and duplicates are allowed.
func (r *Repository) Insert(title, author, genre, fileLink string) (*entities.Book, error) {
	book := &entities.Book{
		Title:    title,
		Author:   author,
		Genre:    genre,
		FileLink: fileLink,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, database.WrapStorageError("insert book", err)
	}
	return book, nil
}

// RemoveByTitle deletes every book whose title matches exactly (case-sensitive)
// and returns how many rows went away. No match is not an error.
func (r *Repository) RemoveByTitle(title string) (int64, error) {
	result := r.db.Where("title = ?", title).Delete(&entities.Book{})
	if result.Error != nil {
		return 0, database.WrapStorageError("remove book", result.Error)
	}
	return result.RowsAffected, nil
}

// Count returns the number of stored books.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, database.WrapStorageError("count books", err)
	}
	return count, nil
}

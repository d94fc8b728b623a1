package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/session"
)

// BooksController exposes the catalog as JSON. Unlike the UI it talks to the
// store directly, with no session snapshot in between.
type BooksController struct {
	catalog session.Catalog
}

func NewBooksController(catalog session.Catalog) *BooksController {
	return &BooksController{
		catalog: catalog,
	}
}

// GetAllBooks returns every stored book.
// GET /api/books
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.catalog.LoadAll()
	if err != nil {
		respondInternalError(c, err, "load books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// AddBook inserts one book; all four fields are required.
// POST /api/books
func (controller *BooksController) AddBook(c *gin.Context) {
	var form session.AddForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}

	if err := form.Validate(); err != nil {
		var validationErr *session.ValidationError
		if errors.As(err, &validationErr) {
			respondValidationError(c, validationErr.Message, validationErr.Fields)
			return
		}
		respondBadRequest(c, err.Error())
		return
	}

	book, err := controller.catalog.Insert(form.Title, form.Author, form.Genre, form.FileLink)
	if err != nil {
		respondInternalError(c, err, "insert book")
		return
	}
	respondCreated(c, book)
}

// RemoveBooksByTitle deletes every book with an exactly matching title.
// Zero matches is still a success.
// DELETE /api/books?title=...
func (controller *BooksController) RemoveBooksByTitle(c *gin.Context) {
	title, ok := c.GetQuery("title")
	if !ok || title == "" {
		respondBadRequest(c, "title query parameter is required")
		return
	}

	removed, err := controller.catalog.RemoveByTitle(title)
	if err != nil {
		respondInternalError(c, err, "remove book")
		return
	}
	respondSuccess(c, "Book '"+title+"' removed", gin.H{"removed": removed})
}

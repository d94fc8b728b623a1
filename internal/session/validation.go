package session

import (
	"errors"
	"strings"
)

// ValidationError is raised before any store call when user input is incomplete.
type ValidationError struct {
	Fields  []string // form fields that failed
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// AddForm is the Add Book submission. Values are kept verbatim.
type AddForm struct {
	Title    string `form:"title" json:"title"`
	Author   string `form:"author" json:"author"`
	Genre    string `form:"genre" json:"genre"`
	FileLink string `form:"file_link" json:"file_link"`
}

// Validate requires all four fields to be non-empty. Whitespace counts as content.
func (f AddForm) Validate() error {
	var missing []string
	if f.Title == "" {
		missing = append(missing, "title")
	}
	if f.Author == "" {
		missing = append(missing, "author")
	}
	if f.Genre == "" {
		missing = append(missing, "genre")
	}
	if f.FileLink == "" {
		missing = append(missing, "file_link")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Message: MsgFillAllFields}
	}
	return nil
}

// MissingFields is a readable list of the failed fields, e.g. "title, genre".
func (e *ValidationError) MissingFields() string {
	return strings.Join(e.Fields, ", ")
}

package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondValidationError sends a 422 with the failing fields.
func respondValidationError(c *gin.Context, message string, fields []string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   message,
		Code:    "validation_failed",
		Details: gin.H{"fields": fields},
	})
}

// respondInternalError logs the error and sends a 500 (503 for a locked
// database file). The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	status, code := storageStatus(err)
	c.JSON(status, ErrorResponse{Error: "internal server error", Code: code})
}

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message, Data: data})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// storageStatus maps a failed store call to an HTTP status and error code.
func storageStatus(err error) (int, string) {
	var storageErr *database.StorageError
	if errors.As(err, &storageErr) {
		if storageErr.Locked() {
			return http.StatusServiceUnavailable, "storage_locked"
		}
		return http.StatusInternalServerError, "storage_error"
	}
	return http.StatusInternalServerError, ""
}

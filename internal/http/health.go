package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// BookCounter reports the catalog size for the health check.
type BookCounter interface {
	Count() (int64, error)
}

type HealthController struct {
	db      Pinger
	books   BookCounter
	version string
}

func NewHealthController(db Pinger, books BookCounter, version string) *HealthController {
	return &HealthController{
		db:      db,
		books:   books,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.books != nil && status == "healthy" {
		if count, err := h.books.Count(); err != nil {
			checks["books"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["books"] = strconv.FormatInt(count, 10)
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

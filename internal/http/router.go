package http

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.SessionLoadSave())
	}

	funcMap := template.FuncMap{
		"fileHref": fileHref,
	}
	tmpl := template.Must(template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(static))

	health := NewHealthController(cfg.Database, cfg.Catalog, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Books API endpoints
	if cfg.Catalog != nil {
		booksController := NewBooksController(cfg.Catalog)
		router.GET("/api/books", booksController.GetAllBooks)
		router.POST("/api/books", booksController.AddBook)
		router.DELETE("/api/books", booksController.RemoveBooksByTitle)
	}

	// UI routes
	if cfg.Catalog != nil && cfg.Sessions != nil {
		uiController := NewUIController(cfg.Catalog, cfg.Sessions, cfg.Version)
		router.GET("/", uiController.LibraryPage)
		router.POST("/menu", uiController.SelectMenu)
		router.POST("/refresh", uiController.Refresh)
		router.POST("/books", uiController.AddBook)
		router.POST("/books/remove", uiController.RemoveBook)
		router.POST("/books/open", uiController.OpenBook)
	}

	return router
}

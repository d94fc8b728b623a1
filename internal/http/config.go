package http

import "github.com/mrlokans/library/internal/sessions"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog  CatalogStore
	Database Pinger

	// Per-visitor session state; required for the UI routes
	Sessions *sessions.SessionManager

	// CSRF protection for UI forms; disabled when empty
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version string
}

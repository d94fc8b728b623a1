package http

import "github.com/mrlokans/library/internal/session"

// CatalogStore is what the UI and JSON API controllers need from the books
// repository. It is satisfied by *books.Repository.
type CatalogStore interface {
	session.Catalog
	Count() (int64, error)
}

// Pinger checks database connectivity for the health endpoint.
type Pinger interface {
	Ping() error
}

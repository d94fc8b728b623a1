// Package sessions keeps each visitor's library session.State between
// requests using scs. The default store is in memory, so nothing survives a
// restart; the sqlite store keeps sessions in the library database file.
package sessions

import (
	"database/sql"
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/session"
)

// Session data keys
const (
	SessionKeyState = "library_state"
	SessionKeyFlash = "flash"
)

func init() {
	// Register types that will be stored in sessions
	gob.Register(session.State{})
	gob.Register(session.Outcome{})
}

// SessionManager wraps scs.SessionManager with library-specific accessors.
type SessionManager struct {
	*scs.SessionManager
	sqliteStore *sqlite3store.SQLite3Store
}

// NewSessionManager creates a configured session manager. sqlDB is only used
// for the sqlite store and may be nil otherwise.
func NewSessionManager(cfg config.Session, sqlDB *sql.DB) (*SessionManager, error) {
	sm := scs.New()
	manager := &SessionManager{SessionManager: sm}

	switch cfg.Store {
	case config.SessionStoreMemory, "":
		// scs defaults to its in-memory store
	case config.SessionStoreSQLite:
		if sqlDB == nil {
			return nil, fmt.Errorf("sqlite session store requires a database")
		}
		// Create sessions table if it doesn't exist
		_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		manager.sqliteStore = sqlite3store.New(sqlDB)
		sm.Store = manager.sqliteStore
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}

	sm.Cookie.Name = "library_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return manager, nil
}

// Close stops the background cleanup of the sqlite store, if any.
func (sm *SessionManager) Close() {
	if sm.sqliteStore != nil {
		sm.sqliteStore.StopCleanup()
	}
}

// LoadState returns the stored state, or a fresh one for a new visitor.
func (sm *SessionManager) LoadState(r *http.Request) session.State {
	state, ok := sm.Get(r.Context(), SessionKeyState).(session.State)
	if !ok {
		return session.NewState()
	}
	return state
}

// SaveState replaces the stored state.
func (sm *SessionManager) SaveState(r *http.Request, state session.State) {
	sm.Put(r.Context(), SessionKeyState, state)
}

// PutFlash stores an acknowledgment for the next page render.
func (sm *SessionManager) PutFlash(r *http.Request, outcome session.Outcome) {
	if outcome.IsZero() {
		return
	}
	sm.Put(r.Context(), SessionKeyFlash, outcome)
}

// PopFlash returns and clears the pending acknowledgment.
func (sm *SessionManager) PopFlash(r *http.Request) session.Outcome {
	outcome, _ := sm.Pop(r.Context(), SessionKeyFlash).(session.Outcome)
	return outcome
}

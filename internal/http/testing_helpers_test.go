package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/sessions"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestCatalog(t *testing.T) (*database.Database, *books.Repository) {
	t.Helper()
	db, err := database.NewDatabaseWithLogLevel(filepath.Join(t.TempDir(), "library.db"), "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, books.NewRepository(db.DB)
}

func setupTestSessions(t *testing.T) *sessions.SessionManager {
	t.Helper()
	sm, err := sessions.NewSessionManager(config.Session{Store: config.SessionStoreMemory, Lifetime: time.Hour}, nil)
	require.NoError(t, err)
	t.Cleanup(sm.Close)
	return sm
}

// browser replays cookies between requests like a single visitor would.
type browser struct {
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(router *gin.Engine) *browser {
	return &browser{router: router, cookies: map[string]*http.Cookie{}}
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		b.cookies[cookie.Name] = cookie
	}
	return w
}

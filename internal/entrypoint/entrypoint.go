package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/sessions"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server Shutdown:", err)
	}

	// Runs after the server drains so no request sees a closed database
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// resolveCSRFSecret decodes a hex secret, falls back to the raw bytes, and
// generates a per-process secret when none is configured.
func resolveCSRFSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	return secret, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Personal Library Manager v%s", version)

	db, err := database.NewDatabaseWithLogLevel(cfg.Database.Path, cfg.Database.LogLevel)
	if err != nil {
		log.Fatalf("Failed to open library database: %v", err)
	}

	catalog := books.NewRepository(db.DB)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := sessions.NewSessionManager(cfg.Session, sqlDB)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	log.Printf("Session store: %s", cfg.Session.Store)

	csrfSecret, err := resolveCSRFSecret(cfg.Session.Secret)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}

	backups := scheduler.NewBackupScheduler(db, cfg.Backup)
	if err := backups.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start backup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:       catalog,
		Database:      db,
		Sessions:      sessionManager,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Session.SecureCookies,
		Version:       version,
	})

	onShutdown := func(ctx context.Context) {
		backups.Stop()
		sessionManager.Close()
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}

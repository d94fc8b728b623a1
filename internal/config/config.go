package config

import (
	"time"

	"github.com/spf13/viper"
)

type SessionStore string

const (
	SessionStoreMemory SessionStore = "memory" // Sessions live only as long as the process (default)
	SessionStoreSQLite SessionStore = "sqlite" // Sessions are kept in the library database file
)

type (
	Config struct {
		HTTP
		Global
		Database
		Session
		Backup
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Session struct {
		Store         SessionStore
		Secret        string // Hex or raw; generated per process when empty
		Lifetime      time.Duration
		SecureCookies bool // Set to true when served over HTTPS
	}
	Backup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
		Dir      string
		Keep     int // Number of backup files to retain
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")

	// Session defaults
	v.SetDefault("session_store", string(SessionStoreMemory))
	v.SetDefault("session_secret", "")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	// Backup defaults
	v.SetDefault("backup_enabled", false)
	v.SetDefault("backup_schedule", "0 3 * * *")
	v.SetDefault("backup_dir", DefaultBackupDir)
	v.SetDefault("backup_keep", 7)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Session: Session{
			Store:         SessionStore(v.GetString("SESSION_STORE")),
			Secret:        v.GetString("SESSION_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Backup: Backup{
			Enabled:  v.GetBool("BACKUP_ENABLED"),
			Schedule: v.GetString("BACKUP_SCHEDULE"),
			Dir:      v.GetString("BACKUP_DIR"),
			Keep:     v.GetInt("BACKUP_KEEP"),
		},
	}
}

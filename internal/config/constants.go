package config

// Default paths for the library database and its backups
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./library.db"

	// DefaultBackupDir is where scheduled and manual backups are written
	DefaultBackupDir = "./backups"
)

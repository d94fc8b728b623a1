package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/scheduler"
)

// BackupCommand writes one backup of the library file right away
type BackupCommand struct {
	DatabasePath string
	Dir          string
	Keep         int
	Out          io.Writer
}

func NewBackupCommand() *BackupCommand {
	return &BackupCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *BackupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.Dir, "dir", config.DefaultBackupDir, "Directory to write the backup into")
	fs.IntVar(&cmd.Keep, "keep", 0, "Prune to this many backups afterwards (0 keeps all)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s backup [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write a consistent copy of the library database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the backup command
func (cmd *BackupCommand) Run() error {
	db, _, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	backups := scheduler.NewBackupScheduler(db, config.Backup{Dir: cmd.Dir, Keep: cmd.Keep})
	dest, err := backups.RunNow(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Backup written to %s\n", dest)
	return nil
}

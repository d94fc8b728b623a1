package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/library/internal/config"
)

// RemoveCommand deletes every book with the given title
type RemoveCommand struct {
	DatabasePath string
	Title        string
	Out          io.Writer
}

func NewRemoveCommand() *RemoveCommand {
	return &RemoveCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *RemoveCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.Title, "title", "", "Exact title to remove (required). Every book with this title is removed")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s remove -title T [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Remove every book whose title matches exactly.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the remove command
func (cmd *RemoveCommand) Run() error {
	if cmd.Title == "" {
		return errors.New("-title is required")
	}

	db, repo, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	removed, err := repo.RemoveByTitle(cmd.Title)
	if err != nil {
		return fmt.Errorf("failed to remove book: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Removed %d book(s) titled '%s'\n", removed, cmd.Title)
	return nil
}

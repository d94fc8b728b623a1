package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/session"
)

// AddCommand inserts one book from the command line
type AddCommand struct {
	DatabasePath string
	Form         session.AddForm
	Out          io.Writer
}

func NewAddCommand() *AddCommand {
	return &AddCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.Form.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Form.Author, "author", "", "Author (required)")
	fs.StringVar(&cmd.Form.Genre, "genre", "", "Genre (required)")
	fs.StringVar(&cmd.Form.FileLink, "link", "", "Local file path or online PDF link (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add -title T -author A -genre G -link L [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the library. All four fields are required.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s add -title Dune -author \"Frank Herbert\" -genre Sci-Fi -link /books/dune.pdf\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the add command
func (cmd *AddCommand) Run() error {
	if err := cmd.Form.Validate(); err != nil {
		return err
	}

	db, repo, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	book, err := repo.Insert(cmd.Form.Title, cmd.Form.Author, cmd.Form.Genre, cmd.Form.FileLink)
	if err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Book '%s' added successfully! (id %d)\n", book.Title, book.ID)
	return nil
}

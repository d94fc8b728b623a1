package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/library/internal/config"
)

// ListCommand prints every book in the catalog
type ListCommand struct {
	DatabasePath string
	Out          io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print every book in the library.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the list command
func (cmd *ListCommand) Run() error {
	db, repo, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	books, err := repo.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}

	if len(books) == 0 {
		fmt.Fprintln(cmd.Out, "No books in the library yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tGENRE\tFILE LINK")
	for _, book := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", book.ID, book.Title, book.Author, book.Genre, book.FileLink)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "\n%d book(s)\n", len(books))
	return nil
}

// Command generate_demo creates a demo library with public domain books.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

const defaultDemoDatabasePath = "./demo/library.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo library at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	for _, book := range publicDomainBooks() {
		if _, err := repo.Insert(book.Title, book.Author, book.Genre, book.FileLink); err != nil {
			log.Fatalf("Failed to save book %s: %v", book.Title, err)
		}
		log.Printf("Saved: %s by %s", book.Title, book.Author)
	}

	log.Println("Demo library generated successfully!")
}

func publicDomainBooks() []entities.Book {
	return []entities.Book{
		{Title: "Meditations", Author: "Marcus Aurelius", Genre: "Philosophy", FileLink: "https://www.gutenberg.org/ebooks/2680"},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Classic", FileLink: "https://www.gutenberg.org/ebooks/1342"},
		{Title: "Frankenstein", Author: "Mary Shelley", Genre: "Fiction", FileLink: "https://www.gutenberg.org/ebooks/84"},
		{Title: "On the Origin of Species", Author: "Charles Darwin", Genre: "Science", FileLink: "https://www.gutenberg.org/ebooks/1228"},
		{Title: "The Art of War", Author: "Sun Tzu", Genre: "Philosophy", FileLink: "./books/art-of-war.pdf"},
	}
}

package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

// fakeCatalog records calls so tests can assert which store operations ran.
type fakeCatalog struct {
	books   []entities.Book
	nextID  uint
	err     error
	loads   int
	inserts int
	removes []string
}

func (f *fakeCatalog) LoadAll() ([]entities.Book, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entities.Book, len(f.books))
	copy(out, f.books)
	return out, nil
}

func (f *fakeCatalog) Insert(title, author, genre, fileLink string) (*entities.Book, error) {
	f.inserts++
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	b := entities.Book{ID: f.nextID, Title: title, Author: author, Genre: genre, FileLink: fileLink}
	f.books = append(f.books, b)
	return &b, nil
}

func (f *fakeCatalog) RemoveByTitle(title string) (int64, error) {
	f.removes = append(f.removes, title)
	if f.err != nil {
		return 0, f.err
	}
	kept := f.books[:0]
	var removed int64
	for _, b := range f.books {
		if b.Title == title {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	f.books = kept
	return removed, nil
}

var dune = AddForm{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", FileLink: "/books/dune.pdf"}

func TestNewState(t *testing.T) {
	state := NewState()
	assert.Equal(t, ViewBooks, state.Menu)
	assert.Empty(t, state.Snapshot)
	assert.Equal(t, MsgViewEmpty, state.Prompt())
}

func TestParseMenu(t *testing.T) {
	for _, m := range MenuOptions {
		parsed, err := ParseMenu(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMenu("Delete Everything")
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	t.Run("changes view without touching the store", func(t *testing.T) {
		store := &fakeCatalog{}
		state, outcome, err := Select(store, NewState(), AddBook)

		require.NoError(t, err)
		assert.Equal(t, AddBook, state.Menu)
		assert.True(t, outcome.IsZero())
		assert.Zero(t, store.loads)
	})

	t.Run("refresh data loads the snapshot", func(t *testing.T) {
		store := &fakeCatalog{}
		_, _ = store.Insert("Dune", "Frank Herbert", "Sci-Fi", "/books/dune.pdf")

		state, outcome, err := Select(store, NewState(), RefreshData)

		require.NoError(t, err)
		assert.Equal(t, RefreshData, state.Menu)
		assert.Equal(t, 1, store.loads)
		assert.Len(t, state.Snapshot, 1)
		assert.Equal(t, Outcome{Kind: OutcomeSuccess, Message: MsgRefreshed}, outcome)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("replaces the snapshot", func(t *testing.T) {
		store := &fakeCatalog{}
		_, _ = store.Insert("Emma", "Jane Austen", "Classic", "/emma.pdf")

		state := NewState()
		state.Snapshot = []entities.Book{{ID: 99, Title: "Old"}}

		next, outcome, err := Refresh(store, state)
		require.NoError(t, err)
		assert.Equal(t, []string{"Emma"}, next.Titles())
		assert.Equal(t, OutcomeSuccess, outcome.Kind)
		assert.Equal(t, []string{"Old"}, state.Titles(), "input state must not change")
	})

	t.Run("storage failure keeps previous state", func(t *testing.T) {
		boom := &database.StorageError{Op: "load books", Err: errors.New("disk unavailable")}
		store := &fakeCatalog{err: boom}

		state := NewState()
		state.Snapshot = []entities.Book{{ID: 1, Title: "Kept"}}

		next, outcome, err := Refresh(store, state)
		require.ErrorIs(t, err, boom)
		assert.True(t, database.IsStorageError(err))
		assert.Equal(t, state, next)
		assert.True(t, outcome.IsZero())
	})

	t.Run("clears a selection that no longer exists", func(t *testing.T) {
		store := &fakeCatalog{}
		state := NewState()
		state.Selected = "Gone"

		next, _, err := Refresh(store, state)
		require.NoError(t, err)
		assert.Empty(t, next.Selected)
	})
}

func TestAdd(t *testing.T) {
	t.Run("inserts and acknowledges by title", func(t *testing.T) {
		store := &fakeCatalog{}

		state, outcome, err := Add(store, NewState(), dune)
		require.NoError(t, err)
		assert.Equal(t, 1, store.inserts)
		assert.Equal(t, OutcomeSuccess, outcome.Kind)
		assert.Contains(t, outcome.Message, "Book 'Dune' added successfully!")
		assert.Empty(t, state.Snapshot, "snapshot must stay stale until refresh")
	})

	t.Run("rejects any empty field without a store call", func(t *testing.T) {
		cases := map[string]AddForm{
			"title":     {Title: "", Author: "X", Genre: "Y", FileLink: "Z"},
			"author":    {Title: "T", Author: "", Genre: "Y", FileLink: "Z"},
			"genre":     {Title: "T", Author: "X", Genre: "", FileLink: "Z"},
			"file_link": {Title: "T", Author: "X", Genre: "Y", FileLink: ""},
		}
		for field, form := range cases {
			t.Run(field, func(t *testing.T) {
				store := &fakeCatalog{}

				_, outcome, err := Add(store, NewState(), form)
				require.Error(t, err)

				var validationErr *ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, []string{field}, validationErr.Fields)
				assert.Equal(t, OutcomeError, outcome.Kind)
				assert.Equal(t, MsgFillAllFields, outcome.Message)
				assert.Zero(t, store.inserts)
			})
		}
	})

	t.Run("reports every missing field", func(t *testing.T) {
		err := AddForm{Author: "X"}.Validate()

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "title, genre, file_link", validationErr.MissingFields())
	})

	t.Run("whitespace counts as content", func(t *testing.T) {
		assert.NoError(t, AddForm{Title: " ", Author: " ", Genre: " ", FileLink: " "}.Validate())
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		boom := &database.StorageError{Op: "insert book", Err: errors.New("locked")}
		store := &fakeCatalog{err: boom}

		_, _, err := Add(store, NewState(), dune)
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsValidationError(err))
	})
}

func TestRemove(t *testing.T) {
	loaded := func(store *fakeCatalog) State {
		state, _, err := Refresh(store, NewState())
		if err != nil {
			panic(err)
		}
		state.Menu = RemoveBook
		return state
	}

	t.Run("empty snapshot prompts for refresh", func(t *testing.T) {
		store := &fakeCatalog{}
		state := NewState()
		state.Menu = RemoveBook

		assert.Equal(t, MsgRemoveEmpty, state.Prompt())

		_, outcome, err := Remove(store, state, "Dune")
		assert.ErrorIs(t, err, ErrEmptySnapshot)
		assert.Equal(t, OutcomeInfo, outcome.Kind)
		assert.Empty(t, store.removes)
	})

	t.Run("removes by title and leaves snapshot stale", func(t *testing.T) {
		store := &fakeCatalog{}
		_, _ = store.Insert("Dune", "Frank Herbert", "Sci-Fi", "/a.pdf")
		_, _ = store.Insert("Dune", "Other", "Sci-Fi", "/b.pdf")
		_, _ = store.Insert("Emma", "Jane Austen", "Classic", "/c.pdf")
		state := loaded(store)

		next, outcome, err := Remove(store, state, "Dune")
		require.NoError(t, err)
		assert.Equal(t, []string{"Dune"}, store.removes)
		assert.Contains(t, outcome.Message, "Book 'Dune' removed successfully!")
		assert.Equal(t, []string{"Dune", "Dune", "Emma"}, next.Titles())

		next, _, err = Refresh(store, next)
		require.NoError(t, err)
		assert.Equal(t, []string{"Emma"}, next.Titles())
	})

	t.Run("title outside the snapshot is rejected", func(t *testing.T) {
		store := &fakeCatalog{}
		_, _ = store.Insert("Emma", "Jane Austen", "Classic", "/c.pdf")
		state := loaded(store)

		_, outcome, err := Remove(store, state, "Dune")
		assert.True(t, IsValidationError(err))
		assert.Equal(t, MsgSelectToRemove, outcome.Message)
		assert.Empty(t, store.removes)
	})
}

func TestOpen(t *testing.T) {
	state := NewState()
	state.Snapshot = []entities.Book{
		{ID: 1, Title: "Dune", FileLink: "/books/dune.pdf"},
		{ID: 2, Title: "Dune", FileLink: "/books/dune-2.pdf"},
		{ID: 3, Title: "Emma", FileLink: "https://example.com/emma.pdf"},
	}

	t.Run("surfaces the first matching link", func(t *testing.T) {
		next, outcome, err := Open(state, "Dune")
		require.NoError(t, err)
		assert.Equal(t, "Dune", next.Selected)
		assert.Equal(t, "/books/dune.pdf", next.OpenLink)
		assert.Equal(t, OutcomeInfo, outcome.Kind)
	})

	t.Run("unknown title", func(t *testing.T) {
		next, _, err := Open(state, "Missing")
		assert.True(t, IsValidationError(err))
		assert.Empty(t, next.OpenLink)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		_, _, err := Open(NewState(), "Dune")
		assert.ErrorIs(t, err, ErrEmptySnapshot)
	})

	t.Run("only from view books", func(t *testing.T) {
		removing := state
		removing.Menu = RemoveBook

		next, outcome, err := Open(removing, "Dune")
		assert.True(t, IsValidationError(err))
		assert.Equal(t, MsgOpenFromView, outcome.Message)
		assert.Empty(t, next.OpenLink)
		assert.Empty(t, next.Selected)
	})

	t.Run("link is cleared by the next interaction", func(t *testing.T) {
		opened, _, err := Open(state, "Emma")
		require.NoError(t, err)
		require.NotEmpty(t, opened.OpenLink)

		next, _, err := Select(&fakeCatalog{}, opened, ViewBooks)
		require.NoError(t, err)
		assert.Empty(t, next.OpenLink)
	})
}

func TestSnapshotStaysStaleUntilRefresh(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	defer db.Close()
	store := books.NewRepository(db.DB)

	state := NewState()

	state, _, err = Add(store, state, dune)
	require.NoError(t, err)
	assert.Empty(t, state.Snapshot, "insert without refresh must not show the book")
	assert.Equal(t, MsgViewEmpty, state.Prompt())

	state, _, err = Refresh(store, state)
	require.NoError(t, err)
	require.Len(t, state.Snapshot, 1)
	assert.Equal(t, "Dune", state.Snapshot[0].Title)
	assert.Equal(t, uint(1), state.Snapshot[0].ID)
	assert.Empty(t, state.Prompt())

	state.Menu = RemoveBook
	state, _, err = Remove(store, state, "Dune")
	require.NoError(t, err)
	assert.Len(t, state.Snapshot, 1, "remove without refresh must still show the book")

	state, _, err = Refresh(store, state)
	require.NoError(t, err)
	assert.Empty(t, state.Snapshot)
}

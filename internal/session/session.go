// Package session holds the interactive library session: a menu selection
// and a point-in-time snapshot of the catalog.
//
// Every transition takes the current State and returns the next one together
// with an Outcome to show the user. Nothing is kept in package state, so the
// caller decides where a State lives between interactions (the web UI keeps it
// in the visitor's session cookie store).
//
// Add and Remove write to the catalog but leave the snapshot alone; only
// Refresh (or selecting Refresh Data) replaces it.
package session

import (
	"errors"
	"fmt"

	"github.com/mrlokans/library/internal/entities"
)

type Menu string

const (
	ViewBooks   Menu = "View Books"
	AddBook     Menu = "Add Book"
	RemoveBook  Menu = "Remove Book"
	RefreshData Menu = "Refresh Data"
)

// MenuOptions lists the sidebar entries in display order.
var MenuOptions = []Menu{ViewBooks, AddBook, RemoveBook, RefreshData}

// ParseMenu maps a sidebar label back to a Menu.
func ParseMenu(label string) (Menu, error) {
	for _, m := range MenuOptions {
		if string(m) == label {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown menu option %q", label)
}

// User-facing messages.
const (
	MsgRefreshed       = "Library data refreshed manually!"
	MsgFillAllFields   = "Please fill all fields."
	MsgViewEmpty       = "No books added yet! Click 'Refresh Data' to update."
	MsgRemoveEmpty     = "No books available to remove. Click 'Refresh Data' to update."
	MsgSelectToRemove  = "Select a book to remove."
	MsgSelectToOpen    = "Select a book to view/download."
	MsgOpenFromView    = "Switch to View Books to open a book."
	msgAddedFormat     = "Book '%s' added successfully! Click 'Refresh Data' to update the list."
	msgRemovedFormat   = "Book '%s' removed successfully! Click 'Refresh Data' to update the list."
	msgOpenReadyFormat = "Link to '%s' is ready."
)

// ErrEmptySnapshot is returned when an action needs snapshot rows but the
// session has not been refreshed yet.
var ErrEmptySnapshot = errors.New("snapshot is empty")

// Catalog is the subset of the books repository the session drives.
type Catalog interface {
	LoadAll() ([]entities.Book, error)
	Insert(title, author, genre, fileLink string) (*entities.Book, error)
	RemoveByTitle(title string) (int64, error)
}

// State is everything one session remembers between interactions.
type State struct {
	Menu     Menu
	Snapshot []entities.Book
	Selected string // title picked in the View Books selector
	OpenLink string // file link surfaced by the last Open action
}

// NewState returns the state of a fresh session: View Books, nothing loaded.
func NewState() State {
	return State{Menu: ViewBooks}
}

// Titles returns the snapshot titles in snapshot order, duplicates included.
func (s State) Titles() []string {
	titles := make([]string, 0, len(s.Snapshot))
	for _, b := range s.Snapshot {
		titles = append(titles, b.Title)
	}
	return titles
}

// Lookup returns the first snapshot book with the given title.
func (s State) Lookup(title string) (entities.Book, bool) {
	for _, b := range s.Snapshot {
		if b.Title == title {
			return b, true
		}
	}
	return entities.Book{}, false
}

// Prompt is the refresh hint for views that need snapshot rows, or "" when
// the current view has what it needs.
func (s State) Prompt() string {
	if len(s.Snapshot) > 0 {
		return ""
	}
	switch s.Menu {
	case ViewBooks:
		return MsgViewEmpty
	case RemoveBook:
		return MsgRemoveEmpty
	}
	return ""
}

type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeInfo    OutcomeKind = "info"
	OutcomeError   OutcomeKind = "error"
)

// Outcome is the acknowledgment shown after an interaction.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

func (o Outcome) IsZero() bool {
	return o.Message == ""
}

// Select switches the menu. Choosing Refresh Data reloads the snapshot.
func Select(store Catalog, state State, menu Menu) (State, Outcome, error) {
	next := state
	next.Menu = menu
	next.OpenLink = ""
	if menu == RefreshData {
		return Refresh(store, next)
	}
	return next, Outcome{}, nil
}

// Refresh replaces the snapshot with the current catalog contents. On a
// storage failure the incoming state is returned untouched.
func Refresh(store Catalog, state State) (State, Outcome, error) {
	books, err := store.LoadAll()
	if err != nil {
		return state, Outcome{}, err
	}
	next := state
	next.Snapshot = books
	next.OpenLink = ""
	if _, ok := next.Lookup(next.Selected); !ok {
		next.Selected = ""
	}
	return next, Outcome{Kind: OutcomeSuccess, Message: MsgRefreshed}, nil
}

// Add validates the form and inserts one book. The snapshot is left stale.
func Add(store Catalog, state State, form AddForm) (State, Outcome, error) {
	next := state
	next.OpenLink = ""
	if err := form.Validate(); err != nil {
		return next, Outcome{Kind: OutcomeError, Message: err.Error()}, err
	}
	if _, err := store.Insert(form.Title, form.Author, form.Genre, form.FileLink); err != nil {
		return state, Outcome{}, err
	}
	return next, Outcome{Kind: OutcomeSuccess, Message: fmt.Sprintf(msgAddedFormat, form.Title)}, nil
}

// Remove deletes every book titled title. The title must come from the
// snapshot, as the UI only offers snapshot titles. The snapshot is left stale.
func Remove(store Catalog, state State, title string) (State, Outcome, error) {
	next := state
	next.OpenLink = ""
	if len(state.Snapshot) == 0 {
		return next, Outcome{Kind: OutcomeInfo, Message: MsgRemoveEmpty}, ErrEmptySnapshot
	}
	if _, ok := state.Lookup(title); !ok {
		err := &ValidationError{Fields: []string{"title"}, Message: MsgSelectToRemove}
		return next, Outcome{Kind: OutcomeError, Message: err.Error()}, err
	}
	if _, err := store.RemoveByTitle(title); err != nil {
		return state, Outcome{}, err
	}
	return next, Outcome{Kind: OutcomeSuccess, Message: fmt.Sprintf(msgRemovedFormat, title)}, nil
}

// Open picks a snapshot book by title and surfaces its file link. It is only
// offered on the View Books panel. The link itself is never fetched.
func Open(state State, title string) (State, Outcome, error) {
	next := state
	next.OpenLink = ""
	if state.Menu != ViewBooks {
		err := &ValidationError{Fields: []string{"menu"}, Message: MsgOpenFromView}
		return next, Outcome{Kind: OutcomeError, Message: err.Error()}, err
	}
	if len(state.Snapshot) == 0 {
		return next, Outcome{Kind: OutcomeInfo, Message: MsgViewEmpty}, ErrEmptySnapshot
	}
	book, ok := state.Lookup(title)
	if !ok {
		err := &ValidationError{Fields: []string{"title"}, Message: MsgSelectToOpen}
		return next, Outcome{Kind: OutcomeError, Message: err.Error()}, err
	}
	next.Selected = book.Title
	next.OpenLink = book.FileLink
	return next, Outcome{Kind: OutcomeInfo, Message: fmt.Sprintf(msgOpenReadyFormat, book.Title)}, nil
}

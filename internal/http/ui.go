package http

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/mrlokans/library/internal/session"
	"github.com/mrlokans/library/internal/sessions"
)

// UIController drives the library session from browser form posts.
// Every action follows the same shape: load the visitor's State, run one
// session transition, save the new State, then redirect back to the page.
type UIController struct {
	catalog  session.Catalog
	sessions *sessions.SessionManager
	version  string
}

func NewUIController(catalog session.Catalog, sm *sessions.SessionManager, version string) *UIController {
	return &UIController{
		catalog:  catalog,
		sessions: sm,
		version:  version,
	}
}

// pageData is what the library template renders.
type pageData struct {
	State     session.State
	Menus     []session.Menu
	Flash     session.Outcome
	Prompt    string
	Form      session.AddForm
	FormError string
	CSRFField template.HTML
	Version   string
}

func (controller *UIController) render(c *gin.Context, status int, state session.State, flash session.Outcome, form session.AddForm, formError string) {
	c.HTML(status, "library", pageData{
		State:     state,
		Menus:     session.MenuOptions,
		Flash:     flash,
		Prompt:    state.Prompt(),
		Form:      form,
		FormError: formError,
		CSRFField: csrf.TemplateField(c.Request),
		Version:   controller.version,
	})
}

// finish saves the new state and flash, then redirects to the library page.
func (controller *UIController) finish(c *gin.Context, state session.State, outcome session.Outcome) {
	controller.sessions.SaveState(c.Request, state)
	controller.sessions.PutFlash(c.Request, outcome)
	c.Redirect(http.StatusSeeOther, "/")
}

// storageFailure renders the error page. The session state is not saved, so
// the visitor keeps whatever they had before the failed call.
func (controller *UIController) storageFailure(c *gin.Context, err error, action string) {
	log.Printf("Library %s failed: %v", action, err)
	status, code := storageStatus(err)
	message := "The library database could not complete the request."
	if code == "storage_locked" {
		message = "The library database is locked by another program. Try again in a moment."
	}
	c.HTML(status, "error", gin.H{
		"Title":   "Storage error",
		"Message": message,
		"Version": controller.version,
	})
}

// LibraryPage renders the sidebar and the panel for the selected menu.
// GET /
func (controller *UIController) LibraryPage(c *gin.Context) {
	state := controller.sessions.LoadState(c.Request)
	flash := controller.sessions.PopFlash(c.Request)
	controller.render(c, http.StatusOK, state, flash, session.AddForm{}, "")
}

// SelectMenu switches the sidebar selection; Refresh Data reloads the snapshot.
// POST /menu
func (controller *UIController) SelectMenu(c *gin.Context) {
	menu, err := session.ParseMenu(c.PostForm("menu"))
	if err != nil {
		c.String(http.StatusBadRequest, "Unknown menu option")
		return
	}

	state := controller.sessions.LoadState(c.Request)
	next, outcome, err := session.Select(controller.catalog, state, menu)
	if err != nil {
		controller.storageFailure(c, err, "refresh")
		return
	}
	controller.finish(c, next, outcome)
}

// Refresh is the sidebar refresh button.
// POST /refresh
func (controller *UIController) Refresh(c *gin.Context) {
	state := controller.sessions.LoadState(c.Request)
	next, outcome, err := session.Refresh(controller.catalog, state)
	if err != nil {
		controller.storageFailure(c, err, "refresh")
		return
	}
	controller.finish(c, next, outcome)
}

// AddBook inserts a book when all four fields are filled. Validation errors
// re-render the form inline with the submitted values.
// POST /books
func (controller *UIController) AddBook(c *gin.Context) {
	form := session.AddForm{
		Title:    c.PostForm("title"),
		Author:   c.PostForm("author"),
		Genre:    c.PostForm("genre"),
		FileLink: c.PostForm("file_link"),
	}

	state := controller.sessions.LoadState(c.Request)
	next, outcome, err := session.Add(controller.catalog, state, form)
	switch {
	case session.IsValidationError(err):
		controller.sessions.SaveState(c.Request, next)
		controller.render(c, http.StatusUnprocessableEntity, next, session.Outcome{}, form, outcome.Message)
		return
	case err != nil:
		controller.storageFailure(c, err, "add")
		return
	}
	controller.finish(c, next, outcome)
}

// RemoveBook deletes every book with the selected title, without confirmation.
// POST /books/remove
func (controller *UIController) RemoveBook(c *gin.Context) {
	state := controller.sessions.LoadState(c.Request)
	next, outcome, err := session.Remove(controller.catalog, state, c.PostForm("title"))
	if err != nil && !errors.Is(err, session.ErrEmptySnapshot) && !session.IsValidationError(err) {
		controller.storageFailure(c, err, "remove")
		return
	}
	controller.finish(c, next, outcome)
}

// OpenBook surfaces the selected book's file link on the View Books panel.
// POST /books/open
func (controller *UIController) OpenBook(c *gin.Context) {
	state := controller.sessions.LoadState(c.Request)
	next, outcome, err := session.Open(state, c.PostForm("title"))
	if err != nil && !errors.Is(err, session.ErrEmptySnapshot) && !session.IsValidationError(err) {
		controller.storageFailure(c, err, "open")
		return
	}
	controller.finish(c, next, outcome)
}

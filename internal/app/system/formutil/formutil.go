// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// This package provides a Base struct that can be embedded in form data structs
// to handle the common fields, and helper functions to populate them.
//
// Example usage:
//
//	type newSubjectData struct {
//		formutil.Base
//		Name        string
//		Departments []Option
//	}
//
//	data := newSubjectData{Name: in.Name}
//	formutil.SetBase(&data.Base, r, "New Subject", "/dashboard")
//	data.SetFieldErrors(res.Fields)
//	templates.Render(w, r, "subject_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/schooldesk/internal/app/system/authz"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	BackURL     string
	CurrentPath string
	Error       template.HTML

	// FieldErrors maps an input's name to its message.
	FieldErrors map[string]string
}

// SetBase populates the common Base fields from the request context.
// It extracts user info from authz.UserCtx and sets navigation fields.
// IsLoggedIn reflects whether a user is actually present.
//
// Parameters:
//   - b: pointer to the Base struct to populate
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, _, ok := authz.UserCtx(r)
	b.Title = title
	b.IsLoggedIn = ok
	b.Role = role
	b.UserName = uname
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
}

// SetError sets the error message on a Base struct.
// This is a convenience method for setting Error as template.HTML.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}

// SetFieldErrors replaces the per-field messages. A nil map clears them.
func (b *Base) SetFieldErrors(fields map[string]string) {
	b.FieldErrors = fields
}

// FieldError returns the message for an input, or "". Templates call it as
// {{.FieldError "code"}}.
func (b Base) FieldError(name string) string {
	return b.FieldErrors[name]
}

// HasErrors reports whether a form-level or field error is set.
func (b Base) HasErrors() bool {
	return b.Error != "" || len(b.FieldErrors) > 0
}

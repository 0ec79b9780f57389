// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

func currentUser(r *http.Request) (signed bool, role, name string) {
	u, ok := auth.CurrentUser(r)
	if ok && u != nil {
		return true, u.Role, u.Name
	}
	return false, "", ""
}

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	signed, role, name := currentUser(r)
	if backURL == "" {
		backURL = "/login"
	}

	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "error_unauthorized", pageData{
		Title:      "Sign in required",
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    "Please sign in to continue.",
		BackURL:    backURL,
	})
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderError(w, r, http.StatusForbidden, "Access denied", msg, backURL)
}

// RenderError shows the generic error page with the given status.
func RenderError(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	title := "Something went wrong"
	if status == http.StatusBadRequest {
		title = "Bad request"
	}
	renderError(w, r, status, title, msg, backURL)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	signed, role, name := currentUser(r)
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	w.WriteHeader(status)
	templates.Render(w, r, "error_forbidden", pageData{
		Title:      title,
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    backURL,
	})
}

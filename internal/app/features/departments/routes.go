// internal/app/features/departments/routes.go
package departments

import (
	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts department lookups under "/departments".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/options", h.ServeOptions)
	})

	return r
}

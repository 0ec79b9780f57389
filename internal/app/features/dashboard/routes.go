// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard feature under whatever mount point
// the top-level router chooses (e.g., "/dashboard").
//
// Staff only: admins and teachers.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin, models.RoleTeacher))
		// Final path will be /dashboard when mounted at "/dashboard".
		pr.Get("/", h.ServeDashboard)
		pr.Get("/summary.json", h.ServeSummaryJSON)
		pr.Get("/export.xlsx", h.ServeExport)
	})

	return r
}

// internal/app/features/dashboard/page.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/schooldesk/internal/app/system/authz"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeDashboard renders the metrics dashboard.
// GET /dashboard
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, uname, _, signedIn := authz.UserCtx(r)
	if !signedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	rep := h.build(r.Context())
	data := newDashboardData(baseDashboardData{
		Title:       "Dashboard",
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    uname,
		CurrentPath: httpnav.CurrentPath(r),

		CanManageCatalog: authz.CanManageCatalog(r),
	}, rep, h.PageSize)

	h.Log.Debug("dashboard served", zap.String("user", uname), zap.Int("notes", len(data.Notes)))

	templates.Render(w, r, "dashboard", data)
}

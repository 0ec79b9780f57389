// internal/app/features/logout/handler.go
package logout

import (
	"errors"
	"net/http"

	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles POST /logout (GET is accepted too).
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.SessionMgr.GetSession(r); err != nil {
		// Session decode failed. Log and continue - we'll still clear the cookie.
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			h.Log.Debug("stale session cookie during logout", zap.Error(err))
		} else {
			h.Log.Warn("session decode failed during logout", zap.Error(err))
		}
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

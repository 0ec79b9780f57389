// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/schooldesk/internal/app/features/errors"
	userstore "github.com/dalemusser/schooldesk/internal/app/store/users"
	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"github.com/dalemusser/schooldesk/internal/app/system/authutil"
	"github.com/dalemusser/schooldesk/internal/app/system/normalize"
	"github.com/dalemusser/schooldesk/internal/app/system/ratelimit"
	"github.com/dalemusser/schooldesk/internal/app/system/status"
	"github.com/dalemusser/schooldesk/internal/app/system/timeouts"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultReturn = "/dashboard"

// msgBadCredentials is shown for every failed attempt so responses do not
// reveal which emails exist.
const msgBadCredentials = "Invalid email or password."

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter // nil disables throttling
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		Limiter:    ratelimit.NewLoginLimiter(),
		ErrLog:     errLog,
		Log:        logger,
	}
}

type loginFormData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Error      string
	Email      string
	ReturnURL  string
}

// safeReturn accepts only same-site absolute paths.
func safeReturn(ret string) string {
	ret = normalize.QueryParam(ret)
	if ret == "" || ret[0] != '/' || (len(ret) > 1 && (ret[1] == '/' || ret[1] == '\\')) {
		return defaultReturn
	}
	return ret
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data loginFormData) {
	data.Title = "Sign in"
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "login", data)
}

// ServeLogin renders the sign-in form.
// GET /login
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok && u != nil {
		http.Redirect(w, r, safeReturn(r.URL.Query().Get("return")), http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, loginFormData{ReturnURL: safeReturn(r.URL.Query().Get("return"))})
}

// HandleLoginPost checks the email and password and starts a session.
// POST /login
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form submission.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	ret := safeReturn(r.FormValue("return"))

	fail := func(status int, msg string) {
		h.render(w, r, status, loginFormData{Error: msg, Email: email, ReturnURL: ret})
	}

	if email == "" || password == "" {
		fail(http.StatusUnprocessableEntity, "Email and password are required.")
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login: rate limited", zap.String("email", email), zap.String("ip", ratelimit.ClientIP(r)))
			fail(http.StatusTooManyRequests, reason)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Info("login: unknown email", zap.String("email", email))
		fail(http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login: user lookup failed", err, "Sign-in is unavailable right now.", "/login")
		return
	}

	if !canSignIn(u, password) {
		h.Log.Info("login: rejected", zap.String("user_id", u.ID.Hex()))
		fail(http.StatusUnauthorized, msgBadCredentials)
		return
	}

	// A cookie signed with an old key only means a fresh session.
	if _, err := h.SessionMgr.GetSession(r); err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			h.Log.Warn("session cookie invalid, using fresh session", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		} else {
			h.Log.Error("session store error during login, using fresh session", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		}
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "login: save session", err, "Sign-in is unavailable right now.", "/login")
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}
	h.Log.Info("login: success", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// canSignIn reports whether u is active and password matches its hash.
func canSignIn(u *models.User, password string) bool {
	if u.Status == status.Disabled {
		return false
	}
	if u.PasswordHash == nil || *u.PasswordHash == "" {
		return false
	}
	return authutil.CheckPassword(password, *u.PasswordHash)
}

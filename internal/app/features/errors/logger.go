// internal/app/features/errors/logger.go
package errors

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure once with request context and renders the
// matching user-facing response. HTML callers get the error page; callers
// that asked for JSON get {"error": userMsg}.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger. A nil logger discards logs.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// LogServerError logs at Error and responds 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, e.fields(r, err)...)
	e.respond(w, r, http.StatusInternalServerError, userMsg, backURL)
}

// LogBadRequest logs at Warn and responds 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	e.respond(w, r, http.StatusBadRequest, userMsg, backURL)
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u, ok := auth.CurrentUser(r); ok {
		fs = append(fs, zap.String("user_id", u.ID))
	}
	return fs
}

func (e *ErrorLogger) respond(w http.ResponseWriter, r *http.Request, status int, userMsg, backURL string) {
	if WantsJSON(r) {
		WriteJSON(w, status, map[string]string{"error": userMsg})
		return
	}
	RenderError(w, r, status, userMsg, backURL)
}

// WantsJSON reports whether the caller asked for a JSON response.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.URL.Path, "/api/")
}

// WriteJSON writes v as the JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

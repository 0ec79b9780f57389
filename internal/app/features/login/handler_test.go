package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/schooldesk/internal/app/features/errors"
	"github.com/dalemusser/schooldesk/internal/app/features/login"
	userstore "github.com/dalemusser/schooldesk/internal/app/store/users"
	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"github.com/dalemusser/schooldesk/internal/app/system/authutil"
	"github.com/dalemusser/schooldesk/internal/app/system/ratelimit"
	"github.com/dalemusser/schooldesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testPassword = "correct-horse-9"

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only-32b", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	return login.NewHandler(db, sessionMgr, errLog, logger), testutil.NewFixtures(t, db), db
}

func setPassword(t *testing.T, db *mongo.Database, fx *testutil.Fixtures, email string, disabled bool) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var id primitive.ObjectID
	if disabled {
		id = fx.CreateDisabledUser(ctx, "Gone User", email).ID
	} else {
		id = fx.CreateAdmin(ctx, "Test Admin", email).ID
	}
	hash, err := authutil.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := userstore.New(db).SetPasswordHash(ctx, id, hash); err != nil {
		t.Fatalf("set hash: %v", err)
	}
}

func post(h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Failed attempts re-render the form; templates are not booted here.
	func() {
		defer func() { _ = recover() }()
		h.HandleLoginPost(rec, req)
	}()
	return rec
}

func TestHandleLoginPost_Success(t *testing.T) {
	h, fx, db := newTestHandler(t)
	setPassword(t, db, fx, "admin@example.com", false)

	rec := post(h, url.Values{"email": {"  Admin@Example.com "}, "password": {testPassword}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location: got %q, want %q", loc, "/dashboard")
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "test-session=") {
		t.Errorf("expected session cookie, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	h, fx, db := newTestHandler(t)
	setPassword(t, db, fx, "admin@example.com", false)

	tests := []struct {
		ret  string
		want string
	}{
		{"/subjects/new", "/subjects/new"},
		{"//evil.example.com", "/dashboard"},
		{"https://evil.example.com", "/dashboard"},
		{"", "/dashboard"},
	}
	for _, tt := range tests {
		rec := post(h, url.Values{"email": {"admin@example.com"}, "password": {testPassword}, "return": {tt.ret}})
		if loc := rec.Header().Get("Location"); loc != tt.want {
			t.Errorf("return %q: Location = %q, want %q", tt.ret, loc, tt.want)
		}
	}
}

func TestHandleLoginPost_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		disabled bool
		form     url.Values
		want     int
	}{
		{"wrong password", false, url.Values{"email": {"admin@example.com"}, "password": {"nope-nope"}}, http.StatusUnauthorized},
		{"unknown email", false, url.Values{"email": {"who@example.com"}, "password": {testPassword}}, http.StatusUnauthorized},
		{"disabled account", true, url.Values{"email": {"admin@example.com"}, "password": {testPassword}}, http.StatusUnauthorized},
		{"missing fields", false, url.Values{"email": {""}}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fx, db := newTestHandler(t)
			setPassword(t, db, fx, "admin@example.com", tt.disabled)

			rec := post(h, tt.form)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if rec.Header().Get("Set-Cookie") != "" {
				t.Error("no session should be written on failure")
			}
		})
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	h, fx, db := newTestHandler(t)
	h.Limiter = ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)
	setPassword(t, db, fx, "admin@example.com", false)

	bad := url.Values{"email": {"admin@example.com"}, "password": {"nope-nope"}}
	for i := 0; i < 2; i++ {
		if rec := post(h, bad); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, rec.Code)
		}
	}

	// The correct password is still refused once the account is throttled.
	rec := post(h, url.Values{"email": {"admin@example.com"}, "password": {testPassword}})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Error("no session should be written when throttled")
	}
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/login?return=/subjects/new", testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/subjects/new" {
		t.Errorf("Location = %q", loc)
	}
}

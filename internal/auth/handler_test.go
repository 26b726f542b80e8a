package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fleetdesk/fleetdesk/internal/auth"
	"github.com/fleetdesk/fleetdesk/internal/observability"
	"github.com/fleetdesk/fleetdesk/internal/shared"
	"github.com/fleetdesk/fleetdesk/jobs"
	_ "github.com/fleetdesk/fleetdesk/testing"
)

type captureAudit struct {
	events []jobs.LoginAuditPayload
}

func (c *captureAudit) EnqueueLoginAudit(ctx context.Context, payload jobs.LoginAuditPayload) error {
	c.events = append(c.events, payload)
	return nil
}

func newAuthHandler(t *testing.T) (*auth.Handler, *shared.SessionManager, *captureAudit) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	directory, err := auth.NewDirectory()
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	audit := &captureAudit{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := auth.NewHandler(logger, auth.NewService(directory), sessionManager, csrfManager, audit, observability.NewMetrics())
	return handler, sessionManager, audit
}

func doLogin(t *testing.T, handler *auth.Handler, sessionManager *shared.SessionManager, body string) (*httptest.ResponseRecorder, *shared.Session, []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)
	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)

	// Commit against a fresh recorder; the production middleware commits
	// before the handler writes, a recorder snapshots headers on first write.
	cookieRes := httptest.NewRecorder()
	if err := sessionManager.Commit(ctx, cookieRes, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	return res, sess, cookieRes.Result().Cookies()
}

func TestLoginAdminLandsOnCars(t *testing.T) {
	handler, sessionManager, audit := newAuthHandler(t)

	res, sess, _ := doLogin(t, handler, sessionManager, `{"email":"admin@example.com","password":"password"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp struct {
		Actor struct {
			ID         string `json:"id"`
			Role       string `json:"role"`
			BusinessID string `json:"businessId"`
		} `json:"actor"`
		Token      string `json:"token"`
		RedirectTo string `json:"redirectTo"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Actor.Role != "admin" {
		t.Fatalf("expected admin role, got %q", resp.Actor.Role)
	}
	if resp.Actor.BusinessID != "business-001" {
		t.Fatalf("expected business-001, got %q", resp.Actor.BusinessID)
	}
	if resp.RedirectTo != "/cars" {
		t.Fatalf("expected redirect to /cars, got %q", resp.RedirectTo)
	}
	if !strings.HasPrefix(resp.Token, "mock-token-") {
		t.Fatalf("expected mock token, got %q", resp.Token)
	}
	if !sess.Authenticated() {
		t.Fatal("expected session to be authenticated")
	}
	if len(audit.events) != 1 || audit.events[0].Event != "login" {
		t.Fatalf("expected one login audit event, got %+v", audit.events)
	}
}

func TestLoginSuperAdminLandsOnDashboard(t *testing.T) {
	handler, sessionManager, _ := newAuthHandler(t)

	res, _, _ := doLogin(t, handler, sessionManager, `{"email":"superadmin@example.com","password":"password"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		RedirectTo string `json:"redirectTo"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RedirectTo != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", resp.RedirectTo)
	}
}

func TestLoginHonorsFromWhenAuthorized(t *testing.T) {
	handler, sessionManager, _ := newAuthHandler(t)

	res, _, _ := doLogin(t, handler, sessionManager, `{"email":"employee1@example.com","password":"password","from":"/bookings"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		RedirectTo string `json:"redirectTo"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RedirectTo != "/bookings" {
		t.Fatalf("expected redirect to /bookings, got %q", resp.RedirectTo)
	}
}

func TestLoginIgnoresFromWhenForbidden(t *testing.T) {
	handler, sessionManager, _ := newAuthHandler(t)

	// /users is SuperAdmin territory; the employee falls back to their
	// default landing route.
	res, _, _ := doLogin(t, handler, sessionManager, `{"email":"employee1@example.com","password":"password","from":"/users"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		RedirectTo string `json:"redirectTo"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RedirectTo != "/cars" {
		t.Fatalf("expected redirect to /cars, got %q", resp.RedirectTo)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	handler, sessionManager, audit := newAuthHandler(t)

	res, sess, _ := doLogin(t, handler, sessionManager, `{"email":"admin@example.com","password":"wrongpass"}`)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if sess.Authenticated() {
		t.Fatal("expected session to stay unauthenticated")
	}
	if len(audit.events) != 0 {
		t.Fatalf("expected no audit events, got %+v", audit.events)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	handler, sessionManager, _ := newAuthHandler(t)

	res, _, _ := doLogin(t, handler, sessionManager, `{"email":"nobody@example.com","password":"password"}`)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestSessionRestoreAfterLogin(t *testing.T) {
	handler, sessionManager, _ := newAuthHandler(t)

	res, _, cookies := doLogin(t, handler, sessionManager, `{"email":"admin@example.com","password":"password"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("login failed: %d", res.Code)
	}

	// Replay the session cookie the way a reloaded client would.
	restoreReq := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	for _, c := range cookies {
		restoreReq.AddCookie(c)
	}
	sess, err := sessionManager.Load(context.Background(), restoreReq)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(restoreReq.Context(), sess)
	restoreReq = restoreReq.WithContext(ctx)

	restoreRes := httptest.NewRecorder()
	handler.ShowSessionForTest(restoreRes, restoreReq)

	var resp struct {
		Authenticated bool `json:"authenticated"`
		Actor         *struct {
			Email string `json:"email"`
		} `json:"actor"`
	}
	if err := json.Unmarshal(restoreRes.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Authenticated {
		t.Fatal("expected restored session to be authenticated")
	}
	if resp.Actor == nil || resp.Actor.Email != "admin@example.com" {
		t.Fatalf("expected restored actor, got %+v", resp.Actor)
	}
}

func TestLogoutClearsSessionAndAudits(t *testing.T) {
	handler, sessionManager, audit := newAuthHandler(t)

	res, _, cookies := doLogin(t, handler, sessionManager, `{"email":"admin@example.com","password":"password"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("login failed: %d", res.Code)
	}

	logoutReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	for _, c := range cookies {
		logoutReq.AddCookie(c)
	}
	sess, err := sessionManager.Load(context.Background(), logoutReq)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(logoutReq.Context(), sess)
	logoutReq = logoutReq.WithContext(ctx)

	logoutRes := httptest.NewRecorder()
	handler.HandleLogoutForTest(logoutRes, logoutReq)

	if logoutRes.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", logoutRes.Code)
	}
	if sess.Authenticated() {
		t.Fatal("expected session to be cleared")
	}
	if len(audit.events) != 2 || audit.events[1].Event != "logout" {
		t.Fatalf("expected logout audit event, got %+v", audit.events)
	}
}

package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/shared"
	_ "github.com/fleetdesk/fleetdesk/testing"
)

func newManager(t *testing.T) (*shared.SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return shared.NewSessionManager(client, "test_session", "secret", time.Hour, false), mr
}

func requestWithCookie(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: id})
	return req
}

func TestActorRoundTrip(t *testing.T) {
	manager, _ := newManager(t)
	ctx := context.Background()

	sess, err := manager.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	actor := authz.Actor{ID: "4", Email: "admin@example.com", FirstName: "Admin", LastName: "User", Role: authz.RoleAdmin, BusinessID: "business-001"}
	sess.SetActor(actor, "mock-token-abc")
	if err := manager.Commit(ctx, httptest.NewRecorder(), nil, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	restored, err := manager.Load(ctx, requestWithCookie(sess.ID))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := restored.Actor()
	if got == nil {
		t.Fatal("expected restored actor")
	}
	if got.ID != "4" || got.Role != authz.RoleAdmin || got.BusinessID != "business-001" {
		t.Fatalf("restored actor mismatch: %+v", got)
	}
	if restored.Token() != "mock-token-abc" {
		t.Fatalf("expected token to survive reload, got %q", restored.Token())
	}
	if restored.IssuedAt().IsZero() {
		t.Fatal("expected issuedAt to survive reload")
	}
}

func TestCorruptPayloadRecoversUnauthenticated(t *testing.T) {
	manager, mr := newManager(t)
	ctx := context.Background()

	mr.Set("session:broken-id", "{not json at all")

	sess, err := manager.Load(ctx, requestWithCookie("broken-id"))
	if err != nil {
		t.Fatalf("load should not fail on corrupt payload: %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("corrupt session must come back unauthenticated")
	}
	if sess.ID != "broken-id" {
		t.Fatalf("expected session to keep its ID, got %q", sess.ID)
	}
}

func TestUnknownRoleYieldsNoActor(t *testing.T) {
	manager, mr := newManager(t)
	ctx := context.Background()

	mr.Set("session:stale-id", `{"values":{},"actor":{"actorId":"9","email":"x@example.com","role":"superuser","token":"t"},"flashes":null}`)

	sess, err := manager.Load(ctx, requestWithCookie("stale-id"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Actor() != nil {
		t.Fatal("unknown role must not restore an actor")
	}
	if sess.Authenticated() {
		t.Fatal("unknown role must report unauthenticated")
	}
}

func TestClearActorKeepsSession(t *testing.T) {
	manager, _ := newManager(t)
	ctx := context.Background()

	sess, err := manager.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetActor(authz.Actor{ID: "2", Role: authz.RoleEmployee, BusinessID: "business-001"}, "tok")
	sess.ClearActor()
	if err := manager.Commit(ctx, httptest.NewRecorder(), nil, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	restored, err := manager.Load(ctx, requestWithCookie(sess.ID))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if restored.Authenticated() {
		t.Fatal("cleared actor must not come back")
	}
}

func TestCommitSurfacesStoreFailure(t *testing.T) {
	manager, mr := newManager(t)
	ctx := context.Background()

	sess, err := manager.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetActor(authz.Actor{ID: "4", Role: authz.RoleAdmin, BusinessID: "business-001"}, "tok")

	mr.Close()
	if err := manager.Commit(ctx, httptest.NewRecorder(), nil, sess); err == nil {
		t.Fatal("expected commit to report the store failure")
	}
}

func TestDestroyRemovesRecord(t *testing.T) {
	manager, mr := newManager(t)
	ctx := context.Background()

	sess, err := manager.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetActor(authz.Actor{ID: "1", Role: authz.RoleSuperAdmin}, "tok")
	if err := manager.Commit(ctx, httptest.NewRecorder(), nil, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	manager.Destroy(sess)
	if err := manager.Commit(ctx, httptest.NewRecorder(), nil, sess); err != nil {
		t.Fatalf("commit destroy: %v", err)
	}
	if mr.Exists("session:" + sess.ID) {
		t.Fatal("destroyed session record must be deleted")
	}
}

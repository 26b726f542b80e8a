package calendar

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/rental/bookings"
	"github.com/fleetdesk/fleetdesk/internal/shared"
	_ "github.com/fleetdesk/fleetdesk/testing"
)

type fixedRepo struct {
	records []bookings.Booking
}

func (r *fixedRepo) List(ctx context.Context) ([]bookings.Booking, error) { return r.records, nil }
func (r *fixedRepo) Get(ctx context.Context, id string) (bookings.Booking, error) {
	return bookings.Booking{}, shared.ErrNotFound
}
func (r *fixedRepo) Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	return b, nil
}
func (r *fixedRepo) Update(ctx context.Context, id string, b bookings.Booking) (bookings.Booking, error) {
	return b, nil
}
func (r *fixedRepo) Delete(ctx context.Context, id string) error { return nil }

func day(d int) time.Time {
	return time.Date(2026, time.July, d, 0, 0, 0, 0, time.UTC)
}

func calendarRequest(t *testing.T, handler *Handler, actor authz.Actor, target string) *httptest.ResponseRecorder {
	t.Helper()
	mr := miniredis.RunT(t)
	manager := shared.NewSessionManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test_session", "secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	sess, err := manager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	sess.SetActor(actor, "tok")
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	router := chi.NewRouter()
	handler.MountRoutes(router)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestMonthBucketsSpanStays(t *testing.T) {
	repo := &fixedRepo{records: []bookings.Booking{
		{
			ID:             "b-1",
			ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-001"},
			CarID:          "c-1", ClientID: "cl-1",
			StartDate: day(3), EndDate: day(6),
			Status: bookings.StatusConfirmed,
		},
		{
			ID:             "b-2",
			ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-002"},
			CarID:          "c-2", ClientID: "cl-2",
			StartDate: day(10), EndDate: day(11),
			Status: bookings.StatusPending,
		},
	}}
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), bookings.NewService(repo))

	res := calendarRequest(t, handler, authz.Actor{ID: "1", Role: authz.RoleSuperAdmin}, "/?month=2026-07")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp struct {
		Month string `json:"month"`
		Days  []struct {
			Date     string             `json:"date"`
			Bookings []bookings.Booking `json:"bookings"`
		} `json:"days"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Month != "2026-07" {
		t.Fatalf("expected month 2026-07, got %q", resp.Month)
	}
	// A July 3rd to 6th stay covers three nights, plus one day for the
	// second booking.
	if len(resp.Days) != 4 {
		t.Fatalf("expected 4 busy days, got %d", len(resp.Days))
	}
	if resp.Days[0].Date != "2026-07-03" || resp.Days[2].Date != "2026-07-05" {
		t.Fatalf("unexpected bucket dates: %+v", resp.Days)
	}
	if resp.Days[3].Date != "2026-07-10" || resp.Days[3].Bookings[0].ID != "b-2" {
		t.Fatalf("unexpected final bucket: %+v", resp.Days[3])
	}
}

func TestMonthScopedActorSeesOwnBookingsOnly(t *testing.T) {
	repo := &fixedRepo{records: []bookings.Booking{
		{ID: "mine", ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-001"}, StartDate: day(3), EndDate: day(4)},
		{ID: "theirs", ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-002"}, StartDate: day(3), EndDate: day(4)},
	}}
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), bookings.NewService(repo))

	res := calendarRequest(t, handler, authz.Actor{ID: "2", Role: authz.RoleEmployee, BusinessID: "business-001"}, "/?month=2026-07")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		Days []struct {
			Bookings []bookings.Booking `json:"bookings"`
		} `json:"days"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Days) != 1 || len(resp.Days[0].Bookings) != 1 {
		t.Fatalf("expected one scoped booking, got %+v", resp.Days)
	}
	if resp.Days[0].Bookings[0].ID != "mine" {
		t.Fatalf("expected own booking, got %q", resp.Days[0].Bookings[0].ID)
	}
}

func TestMonthRejectsBadFormat(t *testing.T) {
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), bookings.NewService(&fixedRepo{}))

	res := calendarRequest(t, handler, authz.Actor{ID: "1", Role: authz.RoleSuperAdmin}, "/?month=July-2026")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

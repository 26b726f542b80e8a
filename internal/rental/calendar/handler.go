package calendar

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fleetdesk/fleetdesk/internal/platform/httpx"
	"github.com/fleetdesk/fleetdesk/internal/rental/bookings"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

// Handler serves the month calendar feed. It is a read-only projection of
// the actor's visible bookings; per-day buckets drive the grid on screen.
type Handler struct {
	logger   *slog.Logger
	bookings *bookings.Service
}

func NewHandler(logger *slog.Logger, svc *bookings.Service) *Handler {
	return &Handler{logger: logger, bookings: svc}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.month)
}

type dayBucket struct {
	Date     string             `json:"date"`
	Bookings []bookings.Booking `json:"bookings"`
}

func (h *Handler) month(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())

	from := monthStart(time.Now().UTC())
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "month must be YYYY-MM")
			return
		}
		from = parsed
	}
	to := from.AddDate(0, 1, 0)

	window, err := h.bookings.Between(r.Context(), actor, from, to)
	if err != nil {
		h.logger.Error("calendar feed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	buckets := make([]dayBucket, 0, 31)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		next := day.AddDate(0, 0, 1)
		var hits []bookings.Booking
		for _, b := range window {
			if b.StartDate.Before(next) && b.EndDate.After(day) {
				hits = append(hits, b)
			}
		}
		if len(hits) > 0 {
			buckets = append(buckets, dayBucket{Date: day.Format("2006-01-02"), Bookings: hits})
		}
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"month": from.Format("2006-01"),
		"days":  buckets,
	})
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

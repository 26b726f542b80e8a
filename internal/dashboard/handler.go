package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/fleetdesk/fleetdesk/internal/platform/httpx"
	"github.com/fleetdesk/fleetdesk/internal/shared"
	"github.com/fleetdesk/fleetdesk/jobs"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	rdb     *redis.Client
}

func NewHandler(logger *slog.Logger, service *Service, rdb *redis.Client) *Handler {
	return &Handler{logger: logger, service: service, rdb: rdb}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/activity", h.activity)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	summary, err := h.service.Summary(r.Context(), actor)
	if err != nil {
		h.logger.Error("dashboard summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

// activity returns the most recent login and logout events recorded by the
// audit worker.
func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	raw, err := h.rdb.LRange(r.Context(), jobs.AuditRecentKey, 0, int64(limit-1)).Result()
	if err != nil {
		h.logger.Error("read audit feed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	events := make([]jobs.LoginAuditPayload, 0, len(raw))
	for _, entry := range raw {
		var event jobs.LoginAuditPayload
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"events": events})
}

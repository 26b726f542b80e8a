package faqs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fleetdesk/fleetdesk/internal/platform/httpx"
	rentalshared "github.com/fleetdesk/fleetdesk/internal/rental/shared"
)

// Handler serves the FAQ settings screen. There is no service layer; FAQ
// entries carry no ownership, the route table keeps non-SuperAdmins out.
type Handler struct {
	logger    *slog.Logger
	repo      Repository
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo, validator: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type faqForm struct {
	Question  string `json:"question" validate:"required,max=256"`
	Answer    string `json:"answer" validate:"required,max=2048"`
	Category  string `json:"category" validate:"max=64"`
	Position  int    `json:"position" validate:"gte=0"`
	Published bool   `json:"published"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list faqs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	filters := rentalshared.FromQuery(r)
	matched := make([]FAQ, 0, len(all))
	for _, f := range all {
		if filters.Matches(f.Question, f.Answer, f.Category) {
			matched = append(matched, f)
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"faqs": matched})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	faq, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, faq)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	created, err := h.repo.Create(r.Context(), FAQ{
		Question:  form.Question,
		Answer:    form.Answer,
		Category:  form.Category,
		Position:  form.Position,
		Published: form.Published,
	})
	if err != nil {
		h.logger.Error("create faq", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	updated, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), FAQ{
		Question:  form.Question,
		Answer:    form.Answer,
		Category:  form.Category,
		Position:  form.Position,
		Published: form.Published,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request) (faqForm, bool) {
	var form faqForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return faqForm{}, false
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return faqForm{}, false
	}
	return form, true
}
